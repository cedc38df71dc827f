package plan

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Quantity is a decimal read from a YAML scalar (8, 7.5, "7.5").
type Quantity struct {
	decimal.Decimal
}

// Q creates a quantity.
func Q(value string) Quantity {
	return Quantity{Decimal: decimal.RequireFromString(value)}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (q *Quantity) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected number", node.Line)
	}
	value, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid number %q", node.Line, node.Value)
	}
	q.Decimal = value
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (q Quantity) MarshalYAML() (interface{}, error) {
	return q.Decimal.String(), nil
}
