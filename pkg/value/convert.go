package value

import (
	"encoding/json"
	"fmt"
	"math"
)

// FromInterface converts a decoded JSON or YAML document into a Value.
// Integral numbers stay Int; map keys that are not strings are formatted
// with %v.
func FromInterface(in any) (Value, error) {
	switch x := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return Text(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return fromUint(x)
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Missing(), fmt.Errorf("invalid number %q: %w", x.String(), err)
		}
		return Float(f), nil
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			v, err := FromInterface(item)
			if err != nil {
				return Missing(), fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = v
		}
		return Value{kind: KindList, list: items}, nil
	case map[string]any:
		entries := make(map[string]Value, len(x))
		for k, item := range x {
			v, err := FromInterface(item)
			if err != nil {
				return Missing(), fmt.Errorf("%s: %w", k, err)
			}
			entries[k] = v
		}
		return Value{kind: KindMap, m: entries}, nil
	case map[any]any:
		entries := make(map[string]Value, len(x))
		for k, item := range x {
			key := fmt.Sprintf("%v", k)
			if _, dup := entries[key]; dup {
				return Missing(), fmt.Errorf("duplicate key %q", key)
			}
			v, err := FromInterface(item)
			if err != nil {
				return Missing(), fmt.Errorf("%s: %w", key, err)
			}
			entries[key] = v
		}
		return Value{kind: KindMap, m: entries}, nil
	}
	return Missing(), fmt.Errorf("unsupported value type %T", in)
}

func fromUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Float(float64(u)), nil
	}
	return Int(int64(u)), nil
}
