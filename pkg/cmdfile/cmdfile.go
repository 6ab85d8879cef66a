// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdfile loads command trees declared in TOML or YAML files.
//
// A file looks like this (TOML shown, YAML uses the same keys):
//
//	[app]
//	name = "calc"
//	version = "1.0.0"
//
//	[[flags]]
//	name = "verbose"
//	short = "v"
//	type = "bool"
//
//	[[commands]]
//	name = "add"
//	description = "Add numbers"
//
//	[[commands.flags]]
//	name = "numbers"
//	type = "int-list"
//	required = true
package cmdfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/cliparse/pkg/cliparse"
	"gopkg.in/yaml.v3"
)

// FileNames are the names Find looks for, in order of preference.
var FileNames = []string{"cliparse.toml", "cliparse.yaml", "cliparse.yml"}

const defaultVersion = "0.0.0"

// Format is the encoding of a command file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a Format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported command file extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
}

type File struct {
	App      AppDef       `toml:"app" yaml:"app"`
	Flags    []FlagDef    `toml:"flags,omitempty" yaml:"flags,omitempty"`
	Args     []ArgDef     `toml:"args,omitempty" yaml:"args,omitempty"`
	Commands []CommandDef `toml:"commands,omitempty" yaml:"commands,omitempty"`
}

type AppDef struct {
	Name            string `toml:"name" yaml:"name"`
	Version         string `toml:"version,omitempty" yaml:"version,omitempty"`
	Description     string `toml:"description,omitempty" yaml:"description,omitempty"`
	ShowHelpOnEmpty bool   `toml:"show_help_on_empty,omitempty" yaml:"show_help_on_empty,omitempty"`
}

type CommandDef struct {
	Name            string       `toml:"name" yaml:"name"`
	Description     string       `toml:"description,omitempty" yaml:"description,omitempty"`
	ShowHelpOnEmpty bool         `toml:"show_help_on_empty,omitempty" yaml:"show_help_on_empty,omitempty"`
	Flags           []FlagDef    `toml:"flags,omitempty" yaml:"flags,omitempty"`
	Args            []ArgDef     `toml:"args,omitempty" yaml:"args,omitempty"`
	Commands        []CommandDef `toml:"commands,omitempty" yaml:"commands,omitempty"`
}

// FlagDef declares a flag. Type accepts the names understood by
// cliparse.ParseFlagType and defaults to string. Default may be written
// either as a native value (3, true, ["a", "b"]) or as text ("3").
type FlagDef struct {
	Name           string   `toml:"name" yaml:"name"`
	Short          string   `toml:"short,omitempty" yaml:"short,omitempty"`
	Type           string   `toml:"type,omitempty" yaml:"type,omitempty"`
	Description    string   `toml:"description,omitempty" yaml:"description,omitempty"`
	Required       bool     `toml:"required,omitempty" yaml:"required,omitempty"`
	Default        any      `toml:"default,omitempty" yaml:"default,omitempty"`
	PossibleValues []string `toml:"possible_values,omitempty" yaml:"possible_values,omitempty"`
}

// ArgDef declares a positional argument. Arguments are required unless
// Required is explicitly false.
type ArgDef struct {
	Name        string `toml:"name" yaml:"name"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty"`
	Required    *bool  `toml:"required,omitempty" yaml:"required,omitempty"`
}

// Load reads and decodes the command file at path. The format is chosen
// by extension.
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

// Decode decodes a command file. Unknown keys are rejected.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown command file format %q", format)
	}
	return &f, nil
}

// Find walks up from startDir and returns the path of the first command
// file it finds. It returns an error wrapping os.ErrNotExist if there is
// none.
func Find(startDir string) (string, error) {
	dir := filepath.Clean(startDir)
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			} else if !os.IsNotExist(err) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("no %s found in %s or its parents: %w", strings.Join(FileNames, ", "), startDir, os.ErrNotExist)
}

// LoadFromDir finds the nearest command file above startDir and loads it.
// It returns the path it loaded along with the file.
func LoadFromDir(startDir string) (*File, string, error) {
	path, err := Find(startDir)
	if err != nil {
		return nil, "", err
	}
	f, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}

// Build converts f into a validated application.
func (f *File) Build() (*cliparse.App, error) {
	if f.App.Name == "" {
		return nil, errors.New("app.name is required")
	}
	version := f.App.Version
	if version == "" {
		version = defaultVersion
	}
	app := cliparse.NewApp(f.App.Name, version).
		WithDescription(f.App.Description).
		WithShowHelpOnEmpty(f.App.ShowHelpOnEmpty)
	if err := fill(app.Root, f.Flags, f.Args, f.Commands); err != nil {
		return nil, err
	}
	if err := app.Validate(); err != nil {
		return nil, err
	}
	return app, nil
}

func fill(cmd *cliparse.Command, flags []FlagDef, args []ArgDef, commands []CommandDef) error {
	for _, def := range flags {
		if _, dup := cmd.Flags[def.Name]; dup {
			return fmt.Errorf("command %q: duplicate flag %q", cmd.Name, def.Name)
		}
		flag, err := def.build()
		if err != nil {
			return fmt.Errorf("command %q: flag %q: %w", cmd.Name, def.Name, err)
		}
		cmd.AddFlag(flag)
	}
	for _, def := range args {
		cmd.AddPositional(def.build())
	}
	for _, def := range commands {
		if _, dup := cmd.Subcommands[def.Name]; dup {
			return fmt.Errorf("command %q: duplicate subcommand %q", cmd.Name, def.Name)
		}
		sub := cliparse.NewCommand(def.Name).
			WithDescription(def.Description).
			WithShowHelpOnEmpty(def.ShowHelpOnEmpty)
		if err := fill(sub, def.Flags, def.Args, def.Commands); err != nil {
			return err
		}
		cmd.AddSubcommand(sub)
	}
	return nil
}

func (d FlagDef) build() (*cliparse.Flag, error) {
	typ, err := cliparse.ParseFlagType(d.Type)
	if err != nil {
		return nil, err
	}
	flag := cliparse.NewFlag(d.Name, typ).
		WithDescription(d.Description).
		WithRequired(d.Required)
	if d.Short != "" {
		r, size := utf8.DecodeRuneInString(d.Short)
		if size != len(d.Short) {
			return nil, fmt.Errorf("short must be a single character, got %q", d.Short)
		}
		flag.WithShort(r)
	}
	if len(d.PossibleValues) > 0 {
		flag.WithPossibleValues(d.PossibleValues...)
	}
	if d.Default != nil {
		v, err := cliparse.ValueOf(typ, d.Default)
		if err != nil {
			return nil, err
		}
		flag.WithDefault(v)
	}
	return flag, nil
}

func (d ArgDef) build() cliparse.PositionalArg {
	arg := cliparse.NewPositional(d.Name)
	arg.Description = d.Description
	if d.Required != nil {
		arg.Required = *d.Required
	}
	return arg
}
