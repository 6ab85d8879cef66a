// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliparse

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Validate checks cmd and all of its descendants for definitions Parse
// cannot handle consistently. It returns the first problem found as a
// *ConfigurationError. Parse does not call Validate; run it once after
// building a tree.
func Validate(cmd *Command) error {
	if cmd == nil {
		return &ConfigurationError{Message: "nil command"}
	}
	if err := checkName(cmd.Name); err != nil {
		return &ConfigurationError{Command: cmd.Name, Message: "command " + err.Error()}
	}

	shorts := make(map[rune]string)
	for _, key := range slices.Sorted(maps.Keys(cmd.Flags)) {
		f := cmd.Flags[key]
		if err := validateFlag(key, f); err != nil {
			return &ConfigurationError{Command: cmd.Name, Message: err.Error()}
		}
		if !f.HasShort() {
			continue
		}
		if prev, ok := shorts[f.Short]; ok {
			return &ConfigurationError{
				Command: cmd.Name,
				Message: fmt.Sprintf("short flag -%c used by both --%s and --%s", f.Short, prev, f.Name),
			}
		}
		shorts[f.Short] = f.Name
	}

	for _, p := range cmd.Positionals {
		if p.Name == "" {
			return &ConfigurationError{Command: cmd.Name, Message: "positional argument has an empty name"}
		}
	}

	for _, key := range slices.Sorted(maps.Keys(cmd.Subcommands)) {
		sub := cmd.Subcommands[key]
		if sub == nil {
			return &ConfigurationError{Command: cmd.Name, Message: fmt.Sprintf("subcommand %q is nil", key)}
		}
		if sub.Name != key {
			return &ConfigurationError{
				Command: cmd.Name,
				Message: fmt.Sprintf("subcommand registered as %q is named %q", key, sub.Name),
			}
		}
		if err := Validate(sub); err != nil {
			return err
		}
	}
	return nil
}

func validateFlag(key string, f *Flag) error {
	if f == nil {
		return fmt.Errorf("flag %q is nil", key)
	}
	if f.Name != key {
		return fmt.Errorf("flag registered as %q is named %q", key, f.Name)
	}
	if err := checkName(f.Name); err != nil {
		return fmt.Errorf("flag %w", err)
	}
	if !f.Type.Valid() {
		return fmt.Errorf("flag --%s has unknown type %s", f.Name, f.Type)
	}
	if f.Short == '-' || f.Short == ' ' {
		return fmt.Errorf("flag --%s has invalid short alias %q", f.Name, f.Short)
	}
	if f.Required && f.Default != nil {
		return fmt.Errorf("flag --%s cannot be both required and have a default", f.Name)
	}
	if f.Default != nil && f.Default.Type() != f.Type {
		return fmt.Errorf("flag --%s is %s but its default is %s", f.Name, f.Type, f.Default.Type())
	}
	if len(f.PossibleValues) > 0 && f.Type != TypeString && f.Type != TypeStringList {
		return fmt.Errorf("flag --%s is %s and cannot restrict possible values", f.Name, f.Type)
	}
	return nil
}

func checkName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("name is empty")
	case strings.HasPrefix(name, "-"):
		return fmt.Errorf("name %q starts with '-'", name)
	case strings.ContainsAny(name, " \t\n"):
		return fmt.Errorf("name %q contains whitespace", name)
	}
	return nil
}
