// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestNewColorizer(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		noColor string
		term    string
		want    bool
	}{
		{name: "disabled", enabled: false, term: "xterm-256color", want: false},
		{name: "enabled", enabled: true, term: "xterm-256color", want: true},
		{name: "no color", enabled: true, noColor: "1", term: "xterm-256color", want: false},
		{name: "dumb term", enabled: true, term: "dumb", want: false},
		{name: "empty term", enabled: true, term: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("TERM", tt.term)
			if got := NewColorizer(tt.enabled).Enabled; got != tt.want {
				t.Errorf("NewColorizer(%v).Enabled = %v, want %v", tt.enabled, got, tt.want)
			}
		})
	}
}

func TestColorizerWrap(t *testing.T) {
	off := Colorizer{}
	if got := off.Error("boom"); got != "boom" {
		t.Errorf("disabled Error = %q, want %q", got, "boom")
	}

	on := Colorizer{Enabled: true}
	got := on.Error("boom")
	if !strings.Contains(got, "boom") || !strings.HasPrefix(got, "\x1b[") {
		t.Errorf("enabled Error = %q, want ANSI wrapped text", got)
	}
	if got := on.Wrap("plain"); got != "plain" {
		t.Errorf("Wrap without attributes = %q, want %q", got, "plain")
	}
}

func TestForWriter(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "xterm")

	if ForWriter(&bytes.Buffer{}).Enabled {
		t.Error("ForWriter(buffer) enabled, want disabled")
	}

	old := isTerminalFn
	t.Cleanup(func() { isTerminalFn = old })

	isTerminalFn = func(int) bool { return true }
	if !ForWriter(os.Stdout).Enabled {
		t.Error("ForWriter(tty) disabled, want enabled")
	}
	isTerminalFn = func(int) bool { return false }
	if ForWriter(os.Stdout).Enabled {
		t.Error("ForWriter(non-tty) enabled, want disabled")
	}
}
