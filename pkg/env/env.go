// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env renders parse results as shell variable assignments.
package env

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yeetrun/cliparse/pkg/cliparse"
)

// Write writes an environment file with the given name for parsed.
func Write(name, prefix string, parsed *cliparse.ParsedArgs) error {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := Marshal(f, prefix, parsed); err != nil {
		return fmt.Errorf("failed to marshal env: %v", err)
	}
	return f.Close()
}

// Marshal writes parsed to w as NAME='value' lines sorted by name, suitable
// for eval in a POSIX shell. Flags become PREFIX_FLAG_<NAME>, with list
// values joined by spaces. The command, subcommand path, positionals and
// help state are written as PREFIX_COMMAND, PREFIX_SUBCOMMAND, PREFIX_PATH,
// PREFIX_ARGC, PREFIX_ARG_<i>, PREFIX_ARGS and PREFIX_HELP. Two flags whose
// names map to the same variable, such as dry-run and dry_run, are an error
// and nothing is written.
func Marshal(w io.Writer, prefix string, parsed *cliparse.ParsedArgs) error {
	vars := map[string]string{
		"COMMAND":    parsed.Command,
		"SUBCOMMAND": parsed.Subcommand,
		"PATH":       strings.Join(parsed.Path, " "),
		"ARGS":       strings.Join(parsed.Positionals, " "),
		"ARGC":       strconv.Itoa(len(parsed.Positionals)),
		"HELP":       "0",
	}
	if parsed.HelpRequested {
		vars["HELP"] = "1"
	}
	for i, arg := range parsed.Positionals {
		vars["ARG_"+strconv.Itoa(i)] = arg
	}
	owners := make(map[string]string)
	for _, name := range slices.Sorted(maps.Keys(parsed.Flags)) {
		key := "FLAG_" + VarName(name)
		if other, ok := owners[key]; ok {
			return fmt.Errorf("flags --%s and --%s both map to %s", other, name, join(prefix, key))
		}
		owners[key] = name
		vars[key] = flagString(parsed.Flags[name])
	}

	lines := make([]string, 0, len(vars))
	for k, v := range vars {
		lines = append(lines, fmt.Sprintf("%s=%s", join(prefix, k), Quote(v)))
	}
	slices.Sort(lines)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return VarName(prefix) + "_" + name
}

func flagString(v cliparse.FlagValue) string {
	if strs, ok := v.AsStringList(); ok {
		return strings.Join(strs, " ")
	}
	if ints, ok := v.AsIntegerList(); ok {
		parts := make([]string, len(ints))
		for i, n := range ints {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, " ")
	}
	return v.String()
}

// VarName converts name into a shell variable name: upper case, with every
// character other than letters, digits and '_' replaced by '_'.
func VarName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, name)
}

// Quote single-quotes s for a POSIX shell.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
