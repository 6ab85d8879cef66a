// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliparse

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// FlagType is the value type of a flag.
type FlagType int

const (
	TypeBool FlagType = iota + 1
	TypeString
	TypeInteger
	TypeFloat
	TypeStringList
	TypeIntegerList
)

// String returns the human readable name used in help text and in the
// Expected field of InvalidFlagValueError.
func (t FlagType) String() string {
	switch t {
	case TypeBool:
		return "boolean"
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeStringList:
		return "string list"
	case TypeIntegerList:
		return "integer list"
	default:
		return fmt.Sprintf("FlagType(%d)", int(t))
	}
}

// IsList reports whether values of this type accumulate across repeats.
func (t FlagType) IsList() bool {
	return t == TypeStringList || t == TypeIntegerList
}

// Valid reports whether t is one of the declared flag types.
func (t FlagType) Valid() bool {
	return t >= TypeBool && t <= TypeIntegerList
}

var flagTypeNames = map[string]FlagType{
	"bool":         TypeBool,
	"boolean":      TypeBool,
	"string":       TypeString,
	"str":          TypeString,
	"int":          TypeInteger,
	"integer":      TypeInteger,
	"float":        TypeFloat,
	"number":       TypeFloat,
	"string-list":  TypeStringList,
	"string list":  TypeStringList,
	"strings":      TypeStringList,
	"[]string":     TypeStringList,
	"integer-list": TypeIntegerList,
	"integer list": TypeIntegerList,
	"int-list":     TypeIntegerList,
	"ints":         TypeIntegerList,
	"[]int":        TypeIntegerList,
}

// ParseFlagType maps a type name as written in a command file ("bool",
// "string", "int", "float", "string-list", "int-list" and a few synonyms) to
// a FlagType. Matching is case-insensitive. An empty name means string.
func ParseFlagType(name string) (FlagType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return TypeString, nil
	}
	if t, ok := flagTypeNames[name]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("unknown flag type %q (valid: bool, string, int, float, string-list, int-list)", name)
}

// FlagValue is an immutable typed flag value. The zero FlagValue is invalid;
// build values with the constructors below.
type FlagValue struct {
	typ  FlagType
	b    bool
	s    string
	i    int64
	f    float64
	strs []string
	ints []int64
}

func BoolValue(b bool) FlagValue { return FlagValue{typ: TypeBool, b: b} }
func StringValue(s string) FlagValue { return FlagValue{typ: TypeString, s: s} }
func IntegerValue(i int64) FlagValue { return FlagValue{typ: TypeInteger, i: i} }
func FloatValue(f float64) FlagValue { return FlagValue{typ: TypeFloat, f: f} }
func StringListValue(v ...string) FlagValue {
	return FlagValue{typ: TypeStringList, strs: append([]string{}, v...)}
}
func IntegerListValue(v ...int64) FlagValue {
	return FlagValue{typ: TypeIntegerList, ints: append([]int64{}, v...)}
}

// Type returns the variant of v.
func (v FlagValue) Type() FlagType { return v.typ }

// IsZero reports whether v was never constructed.
func (v FlagValue) IsZero() bool { return v.typ == 0 }

func (v FlagValue) AsBool() (bool, bool) { return v.b, v.typ == TypeBool }
func (v FlagValue) AsString() (string, bool) { return v.s, v.typ == TypeString }
func (v FlagValue) AsInteger() (int64, bool) { return v.i, v.typ == TypeInteger }
func (v FlagValue) AsFloat() (float64, bool) { return v.f, v.typ == TypeFloat }

// AsStringList returns a copy of the list.
func (v FlagValue) AsStringList() ([]string, bool) {
	if v.typ != TypeStringList {
		return nil, false
	}
	return append([]string{}, v.strs...), true
}

// AsIntegerList returns a copy of the list.
func (v FlagValue) AsIntegerList() ([]int64, bool) {
	if v.typ != TypeIntegerList {
		return nil, false
	}
	return append([]int64{}, v.ints...), true
}

// Len returns the number of elements of a list value and 1 for scalars.
func (v FlagValue) Len() int {
	switch v.typ {
	case TypeStringList:
		return len(v.strs)
	case TypeIntegerList:
		return len(v.ints)
	case 0:
		return 0
	}
	return 1
}

// Equal reports whether v and o hold the same variant and contents.
func (v FlagValue) Equal(o FlagValue) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeBool:
		return v.b == o.b
	case TypeString:
		return v.s == o.s
	case TypeInteger:
		return v.i == o.i
	case TypeFloat:
		return v.f == o.f
	case TypeStringList:
		return slices.Equal(v.strs, o.strs)
	case TypeIntegerList:
		return slices.Equal(v.ints, o.ints)
	}
	return true
}

// Interface returns the plain Go value held by v: bool, string, int64,
// float64, []string or []int64. It returns nil for the zero FlagValue.
func (v FlagValue) Interface() any {
	switch v.typ {
	case TypeBool:
		return v.b
	case TypeString:
		return v.s
	case TypeInteger:
		return v.i
	case TypeFloat:
		return v.f
	case TypeStringList:
		return append([]string{}, v.strs...)
	case TypeIntegerList:
		return append([]int64{}, v.ints...)
	}
	return nil
}

// String formats v the way it is shown in help text. Lists are comma joined.
func (v FlagValue) String() string {
	switch v.typ {
	case TypeBool:
		return strconv.FormatBool(v.b)
	case TypeString:
		return v.s
	case TypeInteger:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeStringList:
		return strings.Join(v.strs, ",")
	case TypeIntegerList:
		parts := make([]string, len(v.ints))
		for i, n := range v.ints {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, ",")
	}
	return ""
}

func (v FlagValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// MarshalYAML implements yaml.Marshaler.
func (v FlagValue) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// CombineLists appends next to existing, preserving order and duplicates.
// Both values must be lists of the same element type.
func CombineLists(existing, next FlagValue) (FlagValue, error) {
	switch {
	case existing.typ == TypeStringList && next.typ == TypeStringList:
		out := make([]string, 0, len(existing.strs)+len(next.strs))
		out = append(out, existing.strs...)
		out = append(out, next.strs...)
		return FlagValue{typ: TypeStringList, strs: out}, nil
	case existing.typ == TypeIntegerList && next.typ == TypeIntegerList:
		out := make([]int64, 0, len(existing.ints)+len(next.ints))
		out = append(out, existing.ints...)
		out = append(out, next.ints...)
		return FlagValue{typ: TypeIntegerList, ints: out}, nil
	}
	return FlagValue{}, &InternalError{
		Message: fmt.Sprintf("cannot combine %s with %s", existing.typ, next.typ),
	}
}

// ValueOf converts a plain Go value, as produced by TOML, YAML or JSON
// decoders, into a FlagValue of type t. Strings are coerced with
// ParseDefault so "3" is accepted for an integer flag.
func ValueOf(t FlagType, raw any) (FlagValue, error) {
	if s, ok := raw.(string); ok {
		return ParseDefault(t, s)
	}
	switch t {
	case TypeBool:
		if b, ok := raw.(bool); ok {
			return BoolValue(b), nil
		}
	case TypeString:
		switch raw.(type) {
		case bool, int, int64, float64:
			return StringValue(fmt.Sprint(raw)), nil
		}
	case TypeInteger:
		if n, ok := toInt64(raw); ok {
			return IntegerValue(n), nil
		}
	case TypeFloat:
		switch n := raw.(type) {
		case float64:
			return FloatValue(n), nil
		case float32:
			return FloatValue(float64(n)), nil
		}
		if n, ok := toInt64(raw); ok {
			return FloatValue(float64(n)), nil
		}
	case TypeStringList:
		items, ok := toSlice(raw)
		if !ok {
			break
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return FlagValue{}, fmt.Errorf("%s default: element %v is not a string", t, item)
			}
			out = append(out, s)
		}
		return StringListValue(out...), nil
	case TypeIntegerList:
		items, ok := toSlice(raw)
		if !ok {
			if n, ok := toInt64(raw); ok {
				return IntegerListValue(n), nil
			}
			break
		}
		out := make([]int64, 0, len(items))
		for _, item := range items {
			n, ok := toInt64(item)
			if !ok {
				return FlagValue{}, fmt.Errorf("%s default: element %v is not an integer", t, item)
			}
			out = append(out, n)
		}
		return IntegerListValue(out...), nil
	}
	return FlagValue{}, fmt.Errorf("%s default: unsupported value %v (%T)", t, raw, raw)
}

// ParseDefault coerces the textual form of a default value. Unlike
// Flag.ParseValue it does not check possible values, and list types accept a
// comma separated list for both element types.
func ParseDefault(t FlagType, text string) (FlagValue, error) {
	switch t {
	case TypeBool:
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return FlagValue{}, fmt.Errorf("invalid boolean default %q", text)
		}
		return BoolValue(b), nil
	case TypeString:
		return StringValue(text), nil
	case TypeInteger:
		n, ok := parseInteger(strings.TrimSpace(text))
		if !ok {
			return FlagValue{}, fmt.Errorf("invalid integer default %q", text)
		}
		return IntegerValue(n), nil
	case TypeFloat:
		f, ok := parseFloat(strings.TrimSpace(text))
		if !ok {
			return FlagValue{}, fmt.Errorf("invalid float default %q", text)
		}
		return FloatValue(f), nil
	case TypeStringList:
		if text == "" {
			return StringListValue(), nil
		}
		parts := strings.Split(text, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return StringListValue(parts...), nil
	case TypeIntegerList:
		if strings.TrimSpace(text) == "" {
			return IntegerListValue(), nil
		}
		ints, ok := parseIntegerList(text)
		if !ok {
			return FlagValue{}, fmt.Errorf("invalid integer list default %q", text)
		}
		return IntegerListValue(ints...), nil
	}
	return FlagValue{}, fmt.Errorf("unknown flag type %s", t)
}

func toInt64(raw any) (int64, bool) {
	switch n := raw.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case uint64:
		if n > 1<<63-1 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func toSlice(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []int64:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, true
	}
	return nil, false
}
