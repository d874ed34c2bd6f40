package config

import (
	"fmt"
	"sort"
)

// Kind discriminates the Value tagged union
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindList
	KindMap
)

// String returns the kind name for error messages
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a closed tagged union over the option value shapes a checker
// section may carry: scalars, lists and nested mappings. Checker options
// are heterogeneous but never open-ended, so the union stays closed.
type Value struct {
	kind    Kind
	str     string
	num     int
	boolean bool
	list    []Value
	mapping map[string]Value
}

// StringValue creates a string Value
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// IntValue creates an int Value
func IntValue(i int) Value { return Value{kind: KindInt, num: i} }

// BoolValue creates a bool Value
func BoolValue(b bool) Value { return Value{kind: KindBool, boolean: b} }

// ListValue creates a list Value
func ListValue(items ...Value) Value { return Value{kind: KindList, list: items} }

// MapValue creates a map Value
func MapValue(m map[string]Value) Value { return Value{kind: KindMap, mapping: m} }

// Kind returns the union discriminant
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string payload when the kind is string
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsInt returns the int payload when the kind is int
func (v Value) AsInt() (int, bool) {
	return v.num, v.kind == KindInt
}

// AsBool returns the bool payload when the kind is bool
func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// AsList returns the list payload when the kind is list
func (v Value) AsList() ([]Value, bool) {
	return v.list, v.kind == KindList
}

// AsMap returns the map payload when the kind is map
func (v Value) AsMap() (map[string]Value, bool) {
	return v.mapping, v.kind == KindMap
}

// Equal reports deep equality of two values
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindInt:
		return v.num == other.num
	case KindBool:
		return v.boolean == other.boolean
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.mapping) != len(other.mapping) {
			return false
		}
		for k, val := range v.mapping {
			o, ok := other.mapping[k]
			if !ok || !val.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

// ToInterface converts the Value back to the generic form used by
// serialization. Map keys come out in the natural map form; yaml encoding
// sorts them, keeping the canonical serialization deterministic.
func (v Value) ToInterface() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindBool:
		return v.boolean
	case KindList:
		out := make([]interface{}, len(v.list))
		for i, item := range v.list {
			out[i] = item.ToInterface()
		}
		return out
	case KindMap:
		out := make(map[string]interface{}, len(v.mapping))
		for k, item := range v.mapping {
			out[k] = item.ToInterface()
		}
		return out
	}
	return nil
}

// ValueFromInterface converts a decoded document value into the closed
// union. Integral floats collapse to int (yaml decoders hand back float64
// for some numeric forms); anything else is rejected as an invalid option.
func ValueFromInterface(raw interface{}) (Value, error) {
	switch val := raw.(type) {
	case string:
		return StringValue(val), nil
	case bool:
		return BoolValue(val), nil
	case int:
		return IntValue(val), nil
	case int64:
		return IntValue(int(val)), nil
	case uint64:
		return IntValue(int(val)), nil
	case float64:
		if val == float64(int(val)) {
			return IntValue(int(val)), nil
		}
		return Value{}, fmt.Errorf("non-integral number %v is not a valid option value", val)
	case []interface{}:
		items := make([]Value, 0, len(val))
		for _, item := range val {
			converted, err := ValueFromInterface(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, converted)
		}
		return ListValue(items...), nil
	case map[string]interface{}:
		m := make(map[string]Value, len(val))
		for k, item := range val {
			converted, err := ValueFromInterface(item)
			if err != nil {
				return Value{}, err
			}
			m[k] = converted
		}
		return MapValue(m), nil
	case nil:
		return Value{}, fmt.Errorf("null is not a valid option value")
	default:
		return Value{}, fmt.Errorf("unsupported option value type %T", raw)
	}
}

// Options is the per-checker option bag
type Options map[string]Value

// OptionsFromInterface converts a decoded options mapping
func OptionsFromInterface(raw interface{}) (Options, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("options must be a mapping, got %T", raw)
	}
	opts := make(Options, len(m))
	for k, v := range m {
		converted, err := ValueFromInterface(v)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", k, err)
		}
		opts[k] = converted
	}
	return opts, nil
}

// String returns the string option for key
func (o Options) String(key string) (string, bool) {
	v, ok := o[key]
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Int returns the int option for key
func (o Options) Int(key string) (int, bool) {
	v, ok := o[key]
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

// Bool returns the bool option for key
func (o Options) Bool(key string) (bool, bool) {
	v, ok := o[key]
	if !ok {
		return false, false
	}
	return v.AsBool()
}

// StringList returns the option for key as a list of strings.
// Non-string elements are skipped.
func (o Options) StringList(key string) ([]string, bool) {
	v, ok := o[key]
	if !ok {
		return nil, false
	}
	list, ok := v.AsList()
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.AsString(); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// Has reports whether key is present
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Keys returns the option keys in sorted order
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy with its own top-level map
func (o Options) Clone() Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Equal reports deep equality of two option bags
func (o Options) Equal(other Options) bool {
	if len(o) != len(other) {
		return false
	}
	for k, v := range o {
		ov, ok := other[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// ToInterface converts the bag to the generic serialization form
func (o Options) ToInterface() map[string]interface{} {
	out := make(map[string]interface{}, len(o))
	for k, v := range o {
		out[k] = v.ToInterface()
	}
	return out
}
