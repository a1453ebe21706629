package document

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/MacroPower/kluars/pkg/kluarserrors"
)

var (
	_ json.Marshaler = Value{}
	_ yaml.Marshaler = Value{}
)

// MarshalJSON encodes v as JSON. Integral numbers are written without a
// fractional part, so they decode as integers on the server side.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return nil, fmt.Errorf("%w: %v cannot be encoded as JSON", kluarserrors.ErrShape, v.n)
		}

		return []byte(formatNumber(v.n)), nil
	case KindString:
		return json.Marshal(v.s)
	case KindList:
		return json.Marshal(v.list)
	case KindMapping:
		return v.m.om.MarshalJSON()
	default:
		return nil, fmt.Errorf("%w: unknown kind %s", kluarserrors.ErrShape, v.kind)
	}
}

// MarshalYAML returns the YAML node for v, keeping mapping order.
func (v Value) MarshalYAML() (any, error) {
	return v.Node(), nil
}

// Node builds a [yaml.Node] tree for v.
func (v Value) Node() *yaml.Node {
	switch v.kind {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case KindNumber:
		return numberNode(v.n)
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}
	case KindList:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.list {
			n.Content = append(n.Content, item.Node())
		}

		return n
	case KindMapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		v.m.Range(func(k string, item Value) bool {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				item.Node(),
			)

			return true
		})

		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func numberNode(n float64) *yaml.Node {
	switch {
	case math.IsNaN(n):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: ".nan"}
	case math.IsInf(n, 1):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: ".inf"}
	case math.IsInf(n, -1):
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: "-.inf"}
	}

	if i, ok := integral(n); ok {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(i, 10)}
	}

	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(n, 'g', -1, 64)}
}
