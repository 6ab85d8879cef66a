// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliparse

import (
	"fmt"
	"strings"

	"github.com/yeetrun/cliparse/pkg/tui"
)

// HelpConfig carries the application metadata shown in the help header.
type HelpConfig struct {
	Name        string
	Version     string
	Description string
}

// GenerateHelp renders help text for cmd. path is the chain of subcommand
// names leading from the application root to cmd; it is empty for the root.
func GenerateHelp(config HelpConfig, cmd *Command, path []string, c tui.Colorizer) string {
	var b strings.Builder

	// Header
	header := config.Name
	if config.Version != "" {
		header += " v" + config.Version
	}
	b.WriteString(c.Header(header))
	b.WriteString("\n")
	desc := cmd.Description
	if len(path) == 0 && config.Description != "" {
		desc = config.Description
	}
	if desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Usage
	b.WriteString(c.Section("USAGE:"))
	b.WriteString("\n")
	b.WriteString("    ")
	b.WriteString(usageLine(config.Name, cmd, path))
	b.WriteString("\n\n")

	if cmd.HasPositionals() {
		b.WriteString(c.Section("ARGUMENTS:"))
		b.WriteString("\n")
		for _, arg := range cmd.Positionals {
			line := fmt.Sprintf("    %-20s", strings.ToUpper(arg.Name))
			if arg.Description != "" {
				line += " " + arg.Description
			}
			if !arg.Required {
				line += " (optional)"
			}
			b.WriteString(strings.TrimRight(line, " "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if cmd.HasSubcommands() {
		b.WriteString(c.Section("COMMANDS:"))
		b.WriteString("\n")
		for _, sub := range cmd.SortedSubcommands() {
			b.WriteString(fmt.Sprintf("    %s %s\n", c.Name(fmt.Sprintf("%-12s", sub.Name)), sub.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString(c.Section("OPTIONS:"))
	b.WriteString("\n")
	for _, f := range cmd.SortedFlags() {
		b.WriteString(flagLine(f))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("%-28s %s\n", fmt.Sprintf("    %s, %s", helpFlagShort, helpFlagLong), "Show this help message"))

	if cmd.HasSubcommands() {
		b.WriteString("\n")
		b.WriteString(c.Dim(fmt.Sprintf("Run '%s COMMAND --help' for more information on a specific command.", commandPath(config.Name, path))))
		b.WriteString("\n")
	}
	return b.String()
}

func usageLine(name string, cmd *Command, path []string) string {
	usage := commandPath(name, path)
	if cmd.HasSubcommands() {
		usage += " COMMAND"
	}
	if cmd.HasFlags() {
		usage += " [OPTIONS]"
	}
	for _, arg := range cmd.Positionals {
		if arg.Required {
			usage += fmt.Sprintf(" <%s>", strings.ToUpper(arg.Name))
		} else {
			usage += fmt.Sprintf(" [%s]", strings.ToUpper(arg.Name))
		}
	}
	return usage
}

func commandPath(name string, path []string) string {
	return strings.Join(append([]string{name}, path...), " ")
}

func flagLine(f *Flag) string {
	var flagStr string
	if f.HasShort() {
		flagStr = fmt.Sprintf("    -%c, --%s", f.Short, f.Name)
	} else {
		flagStr = fmt.Sprintf("        --%s", f.Name)
	}
	if hint := typeHint(f.Type); hint != "" {
		flagStr += " " + hint
	}

	var b strings.Builder
	if f.Description != "" {
		b.WriteString(fmt.Sprintf("%-28s %s", flagStr, f.Description))
	} else {
		b.WriteString(flagStr)
	}
	if f.Required {
		b.WriteString(" (required)")
	}
	if len(f.PossibleValues) > 0 {
		b.WriteString(fmt.Sprintf(" [possible values: %s]", strings.Join(f.PossibleValues, ", ")))
	}
	if f.Default != nil {
		b.WriteString(fmt.Sprintf(" (default: %s)", f.Default))
	}
	return b.String()
}

func typeHint(t FlagType) string {
	switch t {
	case TypeBool:
		return ""
	case TypeStringList:
		return "<string>..."
	case TypeIntegerList:
		return "<integer>..."
	}
	return "<" + t.String() + ">"
}
