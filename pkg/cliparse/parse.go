// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliparse

import (
	"maps"
	"strings"
	"unicode/utf8"
)

// Help tokens. They are recognized before any other classification, at every
// subcommand depth.
const (
	helpFlagLong  = "--help"
	helpFlagShort = "-h"
)

// Parse converts tokens, usually os.Args[1:], into a ParsedArgs using cmd
// as the root of the command tree.
//
// Tokens are read left to right:
//   - "--help" or "-h" stops parsing and sets HelpRequested.
//   - "--name" sets the flag called name (exact match).
//   - "-c" (exactly two characters) sets the flag whose short alias is c.
//   - A boolean flag is set to true by its presence; any other flag takes
//     the next token as its value, whatever it looks like.
//   - A token naming a subcommand hands every remaining token to that
//     subcommand, whose flags and positionals are merged into the result.
//   - Any other token is a positional argument if cmd declares positional
//     slots, and a CommandNotFoundError otherwise.
//
// After the tokens are consumed the positional count is checked, defaults
// are installed and required flags enforced, separately for every command
// in the matched chain. All failures are returned as the typed errors in
// errors.go; Parse never prints and never panics on user input.
func Parse(cmd *Command, tokens []string) (*ParsedArgs, error) {
	if cmd == nil {
		return nil, &InternalError{Message: "nil command"}
	}
	return parseCommand(cmd, tokens)
}

func parseCommand(cmd *Command, tokens []string) (*ParsedArgs, error) {
	parsed := newParsedArgs(cmd.Name)

	if len(tokens) == 0 && cmd.ShowHelpOnEmpty {
		parsed.HelpRequested = true
		return parsed, nil
	}

	own := 0 // positional tokens consumed by this frame
	for i := 0; i < len(tokens); {
		tok := tokens[i]

		if tok == helpFlagLong || tok == helpFlagShort {
			parsed.HelpRequested = true
			return parsed, nil
		}

		if strings.HasPrefix(tok, "--") {
			name := tok[2:]
			f, ok := cmd.Flags[name]
			if !ok || f == nil {
				return nil, &UnknownFlagError{Flag: name}
			}
			n, err := consumeFlag(f, tokens[i+1:], parsed)
			if err != nil {
				return nil, err
			}
			i += n
			continue
		}

		if isShortFlag(tok) {
			r, _ := utf8.DecodeRuneInString(tok[1:])
			f, ok := cmd.FlagByShort(r)
			if !ok {
				return nil, &UnknownFlagError{Flag: string(r)}
			}
			n, err := consumeFlag(f, tokens[i+1:], parsed)
			if err != nil {
				return nil, err
			}
			i += n
			continue
		}

		if sub, ok := cmd.Subcommand(tok); ok {
			child, err := parseCommand(sub, tokens[i+1:])
			if err != nil {
				return nil, err
			}
			mergeChild(parsed, tok, child)
			if parsed.HelpRequested {
				return parsed, nil
			}
			break
		}

		if !cmd.HasPositionals() {
			return nil, &CommandNotFoundError{Command: tok}
		}
		parsed.Positionals = append(parsed.Positionals, tok)
		own++
		i++
	}

	if cmd.HasPositionals() {
		if err := checkPositionals(cmd, own); err != nil {
			return nil, err
		}
	}
	if err := applyDefaults(cmd, parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

// isShortFlag reports whether tok is a dash followed by exactly one
// character.
func isShortFlag(tok string) bool {
	return len(tok) > 1 && tok[0] == '-' && tok[1] != '-' && utf8.RuneCountInString(tok) == 2
}

// consumeFlag records f using the tokens that follow it and returns the
// number of tokens consumed, counting the flag token itself.
func consumeFlag(f *Flag, rest []string, parsed *ParsedArgs) (int, error) {
	if f.Type == TypeBool {
		parsed.Flags[f.Name] = BoolValue(true)
		return 1, nil
	}
	if len(rest) == 0 {
		return 0, &FlagValueMissingError{Flag: f.Name}
	}
	v, err := f.ParseValue(rest[0])
	if err != nil {
		return 0, err
	}
	if f.Type.IsList() {
		if existing, ok := parsed.Flags[f.Name]; ok {
			if v, err = CombineLists(existing, v); err != nil {
				return 0, err
			}
		}
	}
	parsed.Flags[f.Name] = v
	return 2, nil
}

// mergeChild folds a subcommand result into its parent. Child flag values
// win over parent values of the same name.
func mergeChild(parsed *ParsedArgs, name string, child *ParsedArgs) {
	parsed.Subcommand = name
	parsed.Path = append([]string{name}, child.Path...)
	maps.Copy(parsed.Flags, child.Flags)
	parsed.Positionals = append(parsed.Positionals, child.Positionals...)
	parsed.HelpRequested = child.HelpRequested
}

func checkPositionals(cmd *Command, received int) error {
	if required := cmd.RequiredPositionalCount(); received < required {
		return &NotEnoughArgumentsError{Expected: required, Received: received}
	}
	if total := len(cmd.Positionals); received > total {
		return &TooManyArgumentsError{Max: total, Received: received}
	}
	return nil
}

// applyDefaults installs defaults for flags of cmd that were not set and
// fails on the first unset required flag, in flag name order.
func applyDefaults(cmd *Command, parsed *ParsedArgs) error {
	for _, f := range cmd.SortedFlags() {
		if _, ok := parsed.Flags[f.Name]; ok {
			continue
		}
		switch {
		case f.Default != nil:
			parsed.Flags[f.Name] = *f.Default
		case f.Required:
			return &RequiredFlagError{Flag: f.Name}
		}
	}
	return nil
}
