// Package criteria matches entity attributes against DAO list parameters.
package criteria

import (
	"github.com/viant/leveling/service/dao"
)

// Matches reports whether the attribute values of an entity satisfy every
// parameter. An entity attribute matches when any of its values equals any
// parameter value. Parameters naming unknown attributes are ignored.
func Matches(attributes map[string][]string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil {
			continue
		}
		values, ok := attributes[parameter.Name]
		if !ok {
			continue
		}
		if !anyEqual(values, parameter.Values()) {
			return false
		}
	}
	return true
}

func anyEqual(values, candidates []string) bool {
	for _, value := range values {
		for _, candidate := range candidates {
			if value == candidate {
				return true
			}
		}
	}
	return false
}
