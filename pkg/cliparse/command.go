// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliparse

import (
	"maps"
	"slices"
	"strings"
)

// Command is a node of the command tree. A tree is assembled once, usually
// with NewCommand and the With/Add methods, and then only read: it may be
// shared by any number of concurrent Parse calls.
type Command struct {
	Name        string
	Description string
	// Flags is keyed by Flag.Name.
	Flags map[string]*Flag
	// Subcommands is keyed by Command.Name.
	Subcommands map[string]*Command
	// Positionals are the ordered positional slots. Only the total and
	// required counts are enforced.
	Positionals []PositionalArg
	// ShowHelpOnEmpty makes Parse report a help request when called with no
	// tokens at all.
	ShowHelpOnEmpty bool
}

// PositionalArg is a named slot for a non-flag token.
type PositionalArg struct {
	Name        string
	Description string
	Required    bool
}

// NewPositional returns a required positional slot.
func NewPositional(name string) PositionalArg {
	return PositionalArg{Name: name, Required: true}
}

// NewCommand returns an empty command named name.
func NewCommand(name string) *Command {
	return &Command{
		Name:        name,
		Flags:       make(map[string]*Flag),
		Subcommands: make(map[string]*Command),
	}
}

func (c *Command) WithDescription(desc string) *Command {
	c.Description = desc
	return c
}

// AddFlag registers f, replacing any flag of the same name.
func (c *Command) AddFlag(f *Flag) *Command {
	if c.Flags == nil {
		c.Flags = make(map[string]*Flag)
	}
	c.Flags[f.Name] = f
	return c
}

// AddSubcommand registers sub, replacing any subcommand of the same name.
func (c *Command) AddSubcommand(sub *Command) *Command {
	if c.Subcommands == nil {
		c.Subcommands = make(map[string]*Command)
	}
	c.Subcommands[sub.Name] = sub
	return c
}

func (c *Command) AddPositional(arg PositionalArg) *Command {
	c.Positionals = append(c.Positionals, arg)
	return c
}

func (c *Command) WithShowHelpOnEmpty(show bool) *Command {
	c.ShowHelpOnEmpty = show
	return c
}

// Flag returns the flag called name. A one-character name that is not a
// flag name falls back to the flag with that short alias.
func (c *Command) Flag(name string) (*Flag, bool) {
	if f, ok := c.Flags[name]; ok {
		return f, true
	}
	if r := []rune(name); len(r) == 1 {
		return c.FlagByShort(r[0])
	}
	return nil, false
}

// FlagByShort returns the flag whose short alias is r.
func (c *Command) FlagByShort(r rune) (*Flag, bool) {
	for _, f := range c.Flags {
		if f.Short != 0 && f.Short == r {
			return f, true
		}
	}
	return nil, false
}

// Subcommand returns the direct child called name.
func (c *Command) Subcommand(name string) (*Command, bool) {
	sub, ok := c.Subcommands[name]
	return sub, ok && sub != nil
}

// Find walks path from c and returns the deepest command reached along with
// the number of path elements consumed.
func (c *Command) Find(path []string) (*Command, int) {
	cur := c
	for i, name := range path {
		next, ok := cur.Subcommand(name)
		if !ok {
			return cur, i
		}
		cur = next
	}
	return cur, len(path)
}

// SortedFlags returns the flags ordered by name.
func (c *Command) SortedFlags() []*Flag {
	out := slices.Collect(maps.Values(c.Flags))
	slices.SortFunc(out, func(a, b *Flag) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// SortedSubcommands returns the direct children ordered by name.
func (c *Command) SortedSubcommands() []*Command {
	out := slices.Collect(maps.Values(c.Subcommands))
	slices.SortFunc(out, func(a, b *Command) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (c *Command) HasFlags() bool { return len(c.Flags) > 0 }
func (c *Command) HasSubcommands() bool { return len(c.Subcommands) > 0 }
func (c *Command) HasPositionals() bool { return len(c.Positionals) > 0 }

// RequiredPositionalCount returns how many positional slots are required.
func (c *Command) RequiredPositionalCount() int {
	n := 0
	for _, p := range c.Positionals {
		if p.Required {
			n++
		}
	}
	return n
}
