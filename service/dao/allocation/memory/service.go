// Package memory provides an in-memory allocation DAO.
package memory

import (
	"github.com/viant/leveling/service/allocation"
	"github.com/viant/leveling/service/dao"
	"github.com/viant/leveling/service/dao/criteria"
	"github.com/viant/leveling/service/dao/store"
)

// Service stores allocations by id. List accepts dao.TaskID and
// dao.ResourceID parameters.
type Service struct {
	*store.MemoryStore[allocation.Generic]
}

var _ dao.Service[string, allocation.Generic] = (*Service)(nil)

// New creates an empty allocation DAO.
func New() *Service {
	return &Service{MemoryStore: store.NewMemoryStore[allocation.Generic](
		func(g *allocation.Generic) string { return g.ID },
		func(g *allocation.Generic, parameters []*dao.Parameter) bool {
			return criteria.Matches(attributes(g), parameters)
		},
	)}
}

func attributes(g *allocation.Generic) map[string][]string {
	return map[string][]string{
		dao.TaskID:     {g.TaskID()},
		dao.ResourceID: g.ResourceIDs(),
	}
}
