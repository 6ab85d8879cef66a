// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliparse

// ParsedArgs is the result of a successful Parse.
type ParsedArgs struct {
	// Command is the name of the command Parse was called with.
	Command string `json:"command" yaml:"command"`
	// Subcommand is the immediate child matched under Command, if any.
	// Deeper matches are only visible through Path.
	Subcommand string `json:"subcommand,omitempty" yaml:"subcommand,omitempty"`
	// Path is the full chain of matched subcommand names below Command.
	Path []string `json:"path,omitempty" yaml:"path,omitempty"`
	// Flags holds every flag set on the command line or by a default,
	// merged across all matched commands. Unset flags have no entry.
	Flags map[string]FlagValue `json:"flags" yaml:"flags"`
	// Positionals holds positional tokens in order, parent frames first.
	Positionals   []string `json:"positionals" yaml:"positionals"`
	HelpRequested bool     `json:"help_requested" yaml:"help_requested"`
}

func newParsedArgs(command string) *ParsedArgs {
	return &ParsedArgs{
		Command:     command,
		Flags:       make(map[string]FlagValue),
		Positionals: []string{},
	}
}

// Flag returns the value recorded for name.
func (p *ParsedArgs) Flag(name string) (FlagValue, bool) {
	v, ok := p.Flags[name]
	return v, ok
}

// HasFlag reports whether name was set on the command line or defaulted.
func (p *ParsedArgs) HasFlag(name string) bool {
	_, ok := p.Flags[name]
	return ok
}

// Arg returns the i-th positional token.
func (p *ParsedArgs) Arg(i int) (string, bool) {
	if i < 0 || i >= len(p.Positionals) {
		return "", false
	}
	return p.Positionals[i], true
}

// Args returns a copy of the positional tokens.
func (p *ParsedArgs) Args() []string {
	return append([]string{}, p.Positionals...)
}

// Bool reports whether name holds Bool(true). Unset and non-boolean flags
// read as false.
func (p *ParsedArgs) Bool(name string) bool {
	b, _ := p.Flags[name].AsBool()
	return b
}

// String returns the string value of name, or "" if unset or not a string.
func (p *ParsedArgs) String(name string) string {
	s, _ := p.Flags[name].AsString()
	return s
}

// Integer returns the integer value of name and whether it was present.
func (p *ParsedArgs) Integer(name string) (int64, bool) {
	return p.Flags[name].AsInteger()
}

// Float returns the float value of name and whether it was present.
func (p *ParsedArgs) Float(name string) (float64, bool) {
	return p.Flags[name].AsFloat()
}

func (p *ParsedArgs) StringList(name string) []string {
	v, _ := p.Flags[name].AsStringList()
	return v
}

func (p *ParsedArgs) IntegerList(name string) []int64 {
	v, _ := p.Flags[name].AsIntegerList()
	return v
}
