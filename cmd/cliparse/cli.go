// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/shayne/yargs"
	"github.com/yeetrun/cliparse/pkg/cliparse"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatEnv  = "env"

	defaultPrefix = "CLIPARSE"
)

var outputFormats = []string{formatJSON, formatYAML, formatEnv}

type globalFlagsParsed struct {
	File    string `flag:"file" short:"f" help:"Command file to load (CLIPARSE_FILE)"`
	Format  string `flag:"format" help:"Output format (json|yaml|env)"`
	Prefix  string `flag:"prefix" help:"Variable prefix for env output"`
	Info    bool   `flag:"info" help:"Print a summary of the command tree and exit"`
	Check   bool   `flag:"check" help:"Validate the command file and exit"`
	NoColor bool   `flag:"no-color" help:"Disable colored output"`
	Verbose bool   `flag:"verbose" short:"v" help:"Log diagnostics to stderr"`
	Help    bool   `flag:"help" short:"h" help:"Show help"`
}

// commandLine is our own invocation split from the tokens handed to the
// loaded command tree.
type commandLine struct {
	Flags  globalFlagsParsed
	Tokens []string
	// Inline holds the spellings of our flags ("--file", "-v") that were
	// given without a "--" separator. Any of them the tree root also declares
	// makes the invocation ambiguous.
	Inline []string
}

// parseGlobalFlags splits args into this program's own flags and the tokens
// handed to the loaded command tree. With a "--", everything before it is
// ours and everything after it is a token. Without one, our flags are only
// recognized up to the first argument that is not one of them; that
// argument and the rest are tokens. A lone -h or --help is always ours.
func parseGlobalFlags(args []string) (commandLine, error) {
	var cl commandLine
	own, tokens, split := cutDoubleDash(args)
	if !split {
		n, inline := leadingOwnFlags(args)
		own, tokens, cl.Inline = args[:n], args[n:], inline
	}
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](own, yargs.KnownFlagsOptions{})
	if err != nil {
		return commandLine{}, err
	}
	if len(result.RemainingArgs) > 0 {
		return commandLine{}, fmt.Errorf("unexpected arguments before --: %s", strings.Join(result.RemainingArgs, " "))
	}
	flags := result.Flags
	if flags.Format == "" {
		flags.Format = formatJSON
	}
	flags.Format = strings.ToLower(flags.Format)
	if !slices.Contains(outputFormats, flags.Format) {
		return commandLine{}, fmt.Errorf("invalid --format %q (valid: %s)", flags.Format, strings.Join(outputFormats, ", "))
	}
	if flags.Prefix == "" {
		flags.Prefix = defaultPrefix
	}
	if tokens == nil {
		tokens = []string{}
	}
	cl.Flags, cl.Tokens = flags, tokens
	return cl, nil
}

type ownFlag struct {
	name       string
	takesValue bool
}

// ownFlagSpellings maps "--name" and "-s" for every field of
// globalFlagsParsed to its flag.
func ownFlagSpellings() map[string]ownFlag {
	out := make(map[string]ownFlag)
	t := reflect.TypeFor[globalFlagsParsed]()
	for i := range t.NumField() {
		field := t.Field(i)
		f := ownFlag{name: field.Tag.Get("flag"), takesValue: field.Type.Kind() != reflect.Bool}
		out["--"+f.name] = f
		if short := field.Tag.Get("short"); short != "" {
			out["-"+short] = f
		}
	}
	return out
}

// leadingOwnFlags returns how many leading args are our flags (with their
// values) and the flag spellings seen. A value is taken from the next arg
// unless it starts with '-', as yargs does.
func leadingOwnFlags(args []string) (int, []string) {
	spellings := ownFlagSpellings()
	var seen []string
	i := 0
	for i < len(args) {
		spelling, hasValue := args[i], false
		if strings.HasPrefix(spelling, "--") {
			spelling, _, hasValue = strings.Cut(spelling, "=")
		}
		f, ok := spellings[spelling]
		if !ok || (f.name == "help" && len(args) > 1) {
			break
		}
		seen = append(seen, spelling)
		i++
		if f.takesValue && !hasValue && i < len(args) && !strings.HasPrefix(args[i], "-") {
			i++
		}
	}
	return i, seen
}

// checkInlineFlags fails if a flag in inline is also declared by root, in
// which case it is unclear whether the flag was meant for us or for the tree.
func checkInlineFlags(root *cliparse.Command, inline []string) error {
	for _, spelling := range inline {
		var declared bool
		if name, ok := strings.CutPrefix(spelling, "--"); ok {
			_, declared = root.Flags[name]
		} else {
			r, _ := utf8.DecodeRuneInString(spelling[1:])
			_, declared = root.FlagByShort(r)
		}
		if declared {
			return fmt.Errorf("%s is also a flag of %s; pass %s arguments after \"--\"", spelling, root.Name, root.Name)
		}
	}
	return nil
}

func cutDoubleDash(args []string) (before, after []string, found bool) {
	i := slices.Index(args, "--")
	if i < 0 {
		return args, nil, false
	}
	return args[:i], args[i+1:], true
}

func usage() string {
	var b strings.Builder
	b.WriteString("cliparse - parse a command line against a declared command tree\n\n")
	b.WriteString("USAGE:\n")
	b.WriteString("    cliparse [OPTIONS] -- [TOKENS...]\n")
	b.WriteString("    cliparse [OPTIONS] [TOKENS...]\n\n")
	b.WriteString("Without \"--\", options are only read before the first token. An option\n")
	b.WriteString("the command tree also declares is rejected unless tokens follow \"--\".\n\n")
	b.WriteString("OPTIONS:\n")
	for _, line := range [][2]string{
		{"    -f, --file <path>", "Command file to load (CLIPARSE_FILE, default: nearest cliparse.toml/.yaml/.yml)"},
		{"        --format <format>", "Output format: json, yaml or env (default: json)"},
		{"        --prefix <prefix>", "Variable prefix for env output (default: CLIPARSE)"},
		{"        --info", "Print a summary of the command tree and exit"},
		{"        --check", "Validate the command file and exit"},
		{"        --no-color", "Disable colored output"},
		{"    -v, --verbose", "Log diagnostics to stderr"},
		{"    -h, --help", "Show this help message"},
	} {
		b.WriteString(fmt.Sprintf("%-28s %s\n", line[0], line[1]))
	}
	b.WriteString("\nEXAMPLES:\n")
	b.WriteString("    cliparse -- hello --name Ana\n")
	b.WriteString("    eval \"$(cliparse --format env -- \"$@\")\"\n")
	b.WriteString("\nExit status is 0 on success or help, 2 on a parse error and 1 otherwise.\n")
	return b.String()
}
