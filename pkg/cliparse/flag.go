// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliparse

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Flag describes a named, typed option of a Command.
type Flag struct {
	// Name is the canonical name, used as --name and as the key in
	// ParsedArgs.Flags.
	Name string
	// Short is an optional single-character alias (-c). Zero means none.
	Short       rune
	Type        FlagType
	Description string
	Required    bool
	// Default is installed when the flag is not given. A flag must not be
	// both Required and defaulted.
	Default *FlagValue
	// PossibleValues restricts String and StringList flags to a closed set.
	PossibleValues []string
}

// NewFlag returns a flag with the given name and type and no other settings.
func NewFlag(name string, t FlagType) *Flag {
	return &Flag{Name: name, Type: t}
}

func (f *Flag) WithShort(short rune) *Flag {
	f.Short = short
	return f
}

func (f *Flag) WithDescription(desc string) *Flag {
	f.Description = desc
	return f
}

func (f *Flag) WithRequired(required bool) *Flag {
	f.Required = required
	return f
}

func (f *Flag) WithDefault(v FlagValue) *Flag {
	f.Default = &v
	return f
}

func (f *Flag) WithPossibleValues(values ...string) *Flag {
	f.PossibleValues = append([]string(nil), values...)
	return f
}

// HasShort reports whether the flag declares a short alias.
func (f *Flag) HasShort() bool {
	return f.Short != 0
}

// ParseValue coerces a single value token according to the flag's type.
//
//   - Bool: "true" or "false"; the empty string is false.
//   - Integer: optional leading '-', then decimal digits only.
//   - Float: decimal real number with optional leading '-', fraction and exponent.
//   - String, StringList: checked against PossibleValues when set.
//   - IntegerList: one integer, or a comma separated list of integers. Each
//     integer may be surrounded by whitespace.
//
// List types return a list value holding the token's elements; accumulating
// repeats is the caller's job (see CombineLists).
func (f *Flag) ParseValue(token string) (FlagValue, error) {
	switch f.Type {
	case TypeBool:
		switch token {
		case "true":
			return BoolValue(true), nil
		case "false", "":
			return BoolValue(false), nil
		}
		return FlagValue{}, f.invalid(token, TypeBool.String())
	case TypeString:
		if err := f.checkPossible(token); err != nil {
			return FlagValue{}, err
		}
		return StringValue(token), nil
	case TypeInteger:
		n, ok := parseInteger(token)
		if !ok {
			return FlagValue{}, f.invalid(token, TypeInteger.String())
		}
		return IntegerValue(n), nil
	case TypeFloat:
		v, ok := parseFloat(token)
		if !ok {
			return FlagValue{}, f.invalid(token, TypeFloat.String())
		}
		return FloatValue(v), nil
	case TypeStringList:
		if err := f.checkPossible(token); err != nil {
			return FlagValue{}, err
		}
		return StringListValue(token), nil
	case TypeIntegerList:
		if !strings.Contains(token, ",") {
			n, ok := parseInteger(strings.TrimSpace(token))
			if !ok {
				return FlagValue{}, f.invalid(token, TypeInteger.String())
			}
			return IntegerListValue(n), nil
		}
		ints, ok := parseIntegerList(token)
		if !ok {
			return FlagValue{}, f.invalid(token, "comma separated integers")
		}
		return IntegerListValue(ints...), nil
	}
	return FlagValue{}, &InternalError{Message: fmt.Sprintf("flag --%s has unknown type %s", f.Name, f.Type)}
}

// ParseValues coerces a group of value tokens given to the flag at once.
// List types parse every token and concatenate the results; scalar types
// accept exactly one token.
func (f *Flag) ParseValues(tokens []string) (FlagValue, error) {
	if len(tokens) == 0 {
		return FlagValue{}, &FlagValueMissingError{Flag: f.Name}
	}
	if !f.Type.IsList() {
		if len(tokens) > 1 {
			return FlagValue{}, f.invalid(strings.Join(tokens, ", "), "single "+f.Type.String())
		}
		return f.ParseValue(tokens[0])
	}
	var acc FlagValue
	for i, tok := range tokens {
		v, err := f.ParseValue(tok)
		if err != nil {
			return FlagValue{}, err
		}
		if i == 0 {
			acc = v
			continue
		}
		if acc, err = CombineLists(acc, v); err != nil {
			return FlagValue{}, err
		}
	}
	return acc, nil
}

func (f *Flag) checkPossible(token string) error {
	if len(f.PossibleValues) == 0 || slices.Contains(f.PossibleValues, token) {
		return nil
	}
	return f.invalid(token, fmt.Sprintf("one of %q", strings.Join(f.PossibleValues, ", ")))
}

func (f *Flag) invalid(value, expected string) error {
	return &InvalidFlagValueError{Flag: f.Name, Value: value, Expected: expected}
}

// parseInteger accepts an optional leading '-' followed by one or more ASCII
// digits. Leading '+', underscores and base prefixes are rejected.
func parseInteger(s string) (int64, bool) {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" {
		return 0, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

var floatPattern = regexp.MustCompile(`^-?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][-+]?[0-9]+)?$`)

// parseFloat accepts decimal real numbers. Infinities, NaN, hex floats and
// values that overflow float64 are rejected.
func parseFloat(s string) (float64, bool) {
	if !floatPattern.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseIntegerList parses comma separated integers. Each segment is trimmed
// of surrounding whitespace; an empty segment fails the whole list.
func parseIntegerList(s string) ([]int64, bool) {
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, part := range parts {
		n, ok := parseInteger(strings.TrimSpace(part))
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}
