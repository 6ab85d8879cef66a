// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const testFile = `
[app]
name = "calc"
version = "1.0.0"
description = "Simple calculator"

[[flags]]
name = "debug"
short = "d"
type = "bool"

[[commands]]
name = "add"
description = "Add numbers"

[[commands.flags]]
name = "numbers"
type = "int-list"
required = true
`

func writeTestFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cliparse.toml")
	if err := os.WriteFile(path, []byte(testFile), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseGlobalFlags(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantFile   string
		wantFormat string
		wantHelp   bool
		wantTokens []string
		wantInline []string
		wantErr    bool
	}{
		{
			name:       "split on double dash",
			args:       []string{"--file", "x.toml", "--", "add", "--file", "y"},
			wantFile:   "x.toml",
			wantFormat: "json",
			wantTokens: []string{"add", "--file", "y"},
		},
		{
			name:       "no double dash",
			args:       []string{"-f", "x.toml", "--format", "ENV", "add", "--numbers", "1"},
			wantFile:   "x.toml",
			wantFormat: "env",
			wantTokens: []string{"add", "--numbers", "1"},
			wantInline: []string{"-f", "--format"},
		},
		{
			name:       "own flags after first token belong to the tree",
			args:       []string{"--file=x.toml", "add", "--format", "yaml", "-v", "-h"},
			wantFile:   "x.toml",
			wantFormat: "json",
			wantTokens: []string{"add", "--format", "yaml", "-v", "-h"},
			wantInline: []string{"--file"},
		},
		{
			name:       "help after own flags belongs to the tree",
			args:       []string{"-f", "x.toml", "-h"},
			wantFile:   "x.toml",
			wantFormat: "json",
			wantTokens: []string{"-h"},
			wantInline: []string{"-f"},
		},
		{
			name:       "lone help",
			args:       []string{"-h"},
			wantFormat: "json",
			wantHelp:   true,
			wantTokens: []string{},
			wantInline: []string{"-h"},
		},
		{
			name:       "empty tokens",
			args:       []string{"--"},
			wantFormat: "json",
			wantTokens: []string{},
		},
		{
			name:    "stray argument before double dash",
			args:    []string{"add", "--", "x"},
			wantErr: true,
		},
		{
			name:    "bad format",
			args:    []string{"--format", "xml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl, err := parseGlobalFlags(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseGlobalFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cl.Flags.File != tt.wantFile {
				t.Errorf("File = %q, want %q", cl.Flags.File, tt.wantFile)
			}
			if cl.Flags.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", cl.Flags.Format, tt.wantFormat)
			}
			if cl.Flags.Help != tt.wantHelp {
				t.Errorf("Help = %v, want %v", cl.Flags.Help, tt.wantHelp)
			}
			if cl.Flags.Prefix != defaultPrefix {
				t.Errorf("Prefix = %q, want %q", cl.Flags.Prefix, defaultPrefix)
			}
			if !reflect.DeepEqual(cl.Tokens, tt.wantTokens) {
				t.Errorf("tokens = %q, want %q", cl.Tokens, tt.wantTokens)
			}
			if !reflect.DeepEqual(cl.Inline, tt.wantInline) {
				t.Errorf("inline = %q, want %q", cl.Inline, tt.wantInline)
			}
		})
	}
}

const sharedFlagsFile = `
[app]
name = "deploy"
version = "1.0.0"

[[flags]]
name = "verbose"
short = "v"
type = "bool"

[[flags]]
name = "format"
type = "string"
`

func TestRunTreeSharesOwnFlagNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cliparse.toml")
	if err := os.WriteFile(path, []byte(sharedFlagsFile), 0o644); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "short flag before tokens is ambiguous",
			args:       []string{"--file", path, "-v"},
			wantCode:   exitParseError,
			wantStderr: `-v is also a flag of deploy; pass deploy arguments after "--"`,
		},
		{
			name:       "long flag before tokens is ambiguous",
			args:       []string{"--file", path, "--format", "yaml"},
			wantCode:   exitParseError,
			wantStderr: "--format is also a flag of deploy",
		},
		{
			name:       "after double dash",
			args:       []string{"--file", path, "--", "-v", "--format", "yaml"},
			wantCode:   exitOK,
			wantStdout: `"verbose": true`,
		},
		{
			name:       "help goes to the tree",
			args:       []string{"--no-color", "--file", path, "-h"},
			wantCode:   exitOK,
			wantStdout: "deploy v1.0.0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != tt.wantCode {
				t.Fatalf("run() = %d, want %d (stdout %q, stderr %q)", code, tt.wantCode, stdout.String(), stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout.String(), tt.wantStdout)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunSubcommandHelpWithoutDoubleDash(t *testing.T) {
	path := writeTestFile(t)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--no-color", "--file", path, "add", "-h"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("run() = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "calc add [OPTIONS]") {
		t.Errorf("stdout = %q, want help for calc add", stdout.String())
	}
}

func TestRunJSON(t *testing.T) {
	path := writeTestFile(t)
	var stdout, stderr bytes.Buffer
	code := run([]string{"--file", path, "--", "-d", "add", "--numbers", "1,2", "--numbers", "3"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() = %d, stderr = %s", code, stderr.String())
	}

	var got struct {
		Command    string         `json:"command"`
		Subcommand string         `json:"subcommand"`
		Path       []string       `json:"path"`
		Flags      map[string]any `json:"flags"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if got.Command != "calc" || got.Subcommand != "add" {
		t.Errorf("command, subcommand = %q, %q", got.Command, got.Subcommand)
	}
	if want := []any{1.0, 2.0, 3.0}; !reflect.DeepEqual(got.Flags["numbers"], want) {
		t.Errorf("numbers = %v, want %v", got.Flags["numbers"], want)
	}
	if got.Flags["debug"] != true {
		t.Errorf("debug = %v, want true", got.Flags["debug"])
	}
}

func TestRunEnv(t *testing.T) {
	path := writeTestFile(t)
	t.Setenv("CLIPARSE_FILE", path)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--format", "env", "--prefix", "c", "--", "add", "--numbers", "4"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() = %d, stderr = %s", code, stderr.String())
	}
	for _, want := range []string{"C_FLAG_NUMBERS='4'\n", "C_SUBCOMMAND='add'\n", "C_HELP='0'\n"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout = %q, want it to contain %q", stdout.String(), want)
		}
	}
}

func TestRunYAML(t *testing.T) {
	path := writeTestFile(t)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-f", path, "--format", "yaml", "--", "add", "--numbers", "5"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("run() = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "subcommand: add\n") {
		t.Errorf("stdout = %q, want yaml with subcommand", stdout.String())
	}
}

func TestRunHelpAndErrors(t *testing.T) {
	path := writeTestFile(t)
	tests := []struct {
		name       string
		tokens     []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "tree help",
			tokens:     []string{"--help"},
			wantCode:   exitOK,
			wantStdout: "calc v1.0.0",
		},
		{
			name:       "subcommand help",
			tokens:     []string{"add", "-h"},
			wantCode:   exitOK,
			wantStdout: "calc add [OPTIONS]",
		},
		{
			name:       "missing required",
			tokens:     []string{"add"},
			wantCode:   exitParseError,
			wantStderr: "required flag not provided: --numbers",
		},
		{
			name:       "unknown command",
			tokens:     []string{"sub"},
			wantCode:   exitParseError,
			wantStderr: "Try 'calc --help'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append([]string{"--no-color", "--file", path, "--"}, tt.tokens...)
			if code := run(args, &stdout, &stderr); code != tt.wantCode {
				t.Fatalf("run() = %d, want %d (stderr %q)", code, tt.wantCode, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout.String(), tt.wantStdout)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunInfoAndCheck(t *testing.T) {
	path := writeTestFile(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--file", path, "--check"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("run(--check) = %d, stderr = %s", code, stderr.String())
	}
	if stdout.String() != "calc: ok\n" {
		t.Errorf("--check output = %q", stdout.String())
	}

	stdout.Reset()
	if code := run([]string{"--file", path, "--info", "--format", "env"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("run(--info) = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "  - add\n") {
		t.Errorf("--info output = %q", stdout.String())
	}
}

func TestRunBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cliparse.yaml")
	if err := os.WriteFile(path, []byte("app:\n  name: x\n  version: nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--file", path, "--check"}, &stdout, &stderr); code != exitFailure {
		t.Errorf("run() = %d, want %d", code, exitFailure)
	}
	if !strings.Contains(stderr.String(), "invalid version") {
		t.Errorf("stderr = %q, want invalid version", stderr.String())
	}
}

func TestUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--help"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("run(--help) = %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "cliparse - ") {
		t.Errorf("usage = %q", stdout.String())
	}
}
