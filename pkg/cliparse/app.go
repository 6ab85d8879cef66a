// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliparse

import (
	"fmt"
	"io"
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/cliparse/pkg/tui"
)

// App bundles a root command with the metadata shown in help output.
// The root command carries the application name and its flags act as
// global flags: they are accepted before the first subcommand name.
type App struct {
	Name        string
	Version     string
	Description string
	Root        *Command
}

func NewApp(name, version string) *App {
	return &App{
		Name:    name,
		Version: version,
		Root:    NewCommand(name),
	}
}

func (a *App) WithDescription(desc string) *App {
	a.Description = desc
	a.Root.Description = desc
	return a
}

func (a *App) AddCommand(cmd *Command) *App {
	a.Root.AddSubcommand(cmd)
	return a
}

func (a *App) AddGlobalFlag(f *Flag) *App {
	a.Root.AddFlag(f)
	return a
}

func (a *App) WithShowHelpOnEmpty(show bool) *App {
	a.Root.WithShowHelpOnEmpty(show)
	return a
}

// Parse parses tokens against the root command.
func (a *App) Parse(tokens []string) (*ParsedArgs, error) {
	return Parse(a.Root, tokens)
}

// Validate checks that Version is a semantic version and that the command
// tree passes Validate.
func (a *App) Validate() error {
	if _, err := semver.NewVersion(a.Version); err != nil {
		return &ConfigurationError{
			Command: a.Name,
			Message: fmt.Sprintf("invalid version %q: %v", a.Version, err),
		}
	}
	return Validate(a.Root)
}

// Resolve returns the deepest command matched by parsed.
func (a *App) Resolve(parsed *ParsedArgs) *Command {
	cmd, _ := a.Root.Find(parsed.Path)
	return cmd
}

// Help renders help text for the command matched by parsed.
func (a *App) Help(parsed *ParsedArgs, c tui.Colorizer) string {
	cmd, n := a.Root.Find(parsed.Path)
	return GenerateHelp(a.helpConfig(), cmd, parsed.Path[:n], c)
}

func (a *App) helpConfig() HelpConfig {
	return HelpConfig{
		Name:        a.Name,
		Version:     a.displayVersion(),
		Description: a.Description,
	}
}

// displayVersion returns Version in canonical semver form when it parses,
// and verbatim otherwise.
func (a *App) displayVersion() string {
	v, err := semver.NewVersion(a.Version)
	if err != nil {
		return a.Version
	}
	return v.String()
}

// Run parses tokens and reports the outcome to the user. Help text goes to
// stdout when requested; errors go to stderr, followed by a pointer to
// --help for mistyped commands and flags. The parse result is returned
// unchanged so the caller can dispatch on it or pick an exit code.
func (a *App) Run(tokens []string, stdout, stderr io.Writer) (*ParsedArgs, error) {
	parsed, err := a.Parse(tokens)
	if err != nil {
		c := tui.ForWriter(stderr)
		fmt.Fprintf(stderr, "%s %v\n", c.Error("error:"), err)
		if WantsHelpHint(err) {
			fmt.Fprintf(stderr, "%s\n", c.Info(fmt.Sprintf("Try '%s --help' for more information.", a.Name)))
		}
		return nil, err
	}
	if parsed.HelpRequested {
		fmt.Fprint(stdout, a.Help(parsed, tui.ForWriter(stdout)))
	}
	return parsed, nil
}

// AppInfo summarizes an App's command tree.
type AppInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"version" yaml:"version"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Commands    []string `json:"commands" yaml:"commands"`
	GlobalFlags int      `json:"global_flags" yaml:"global_flags"`
}

// Info lists every command path below the root ("calc", "calc add", ...)
// in sorted order.
func (a *App) Info() AppInfo {
	commands := []string{}
	var walk func(cmd *Command, prefix string)
	walk = func(cmd *Command, prefix string) {
		for _, sub := range cmd.SortedSubcommands() {
			name := sub.Name
			if prefix != "" {
				name = prefix + " " + sub.Name
			}
			commands = append(commands, name)
			walk(sub, name)
		}
	}
	walk(a.Root, "")
	slices.Sort(commands)
	return AppInfo{
		Name:        a.Name,
		Version:     a.Version,
		Description: a.Description,
		Commands:    commands,
		GlobalFlags: len(a.Root.Flags),
	}
}

// Render writes a short plain-text summary of i to w.
func (i AppInfo) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s v%s\n", i.Name, i.Version); err != nil {
		return err
	}
	if i.Description != "" {
		if _, err := fmt.Fprintln(w, i.Description); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Commands: %d\n", len(i.Commands)); err != nil {
		return err
	}
	for _, cmd := range i.Commands {
		if _, err := fmt.Fprintf(w, "  - %s\n", cmd); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Global flags: %d\n", i.GlobalFlags)
	return err
}
