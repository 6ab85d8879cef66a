// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Styles used by help and error rendering.
var (
	StyleError   = []color.Attribute{color.FgRed, color.Bold}
	StyleInfo    = []color.Attribute{color.FgBlue, color.Bold}
	StyleHeader  = []color.Attribute{color.FgCyan}
	StyleSection = []color.Attribute{color.FgYellow, color.Bold}
	StyleName    = []color.Attribute{color.FgGreen}
	StyleDim     = []color.Attribute{color.FgHiBlack}
)

var isTerminalFn = term.IsTerminal

// Colorizer applies ANSI styles when Enabled. The zero value never colors.
type Colorizer struct {
	Enabled bool
}

// NewColorizer returns a Colorizer that colors only if enabled is true and
// the environment allows it (NO_COLOR unset, TERM set and not "dumb").
func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	termName := os.Getenv("TERM")
	if termName == "" || termName == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// ForWriter returns a Colorizer that is enabled when w is a terminal.
func ForWriter(w io.Writer) Colorizer {
	f, ok := w.(*os.File)
	if !ok {
		return Colorizer{}
	}
	return NewColorizer(isTerminalFn(int(f.Fd())))
}

// Wrap styles text with attrs.
func (c Colorizer) Wrap(text string, attrs ...color.Attribute) string {
	if !c.Enabled || len(attrs) == 0 {
		return text
	}
	p := color.New(attrs...)
	p.EnableColor()
	return p.Sprint(text)
}

func (c Colorizer) Error(text string) string   { return c.Wrap(text, StyleError...) }
func (c Colorizer) Info(text string) string    { return c.Wrap(text, StyleInfo...) }
func (c Colorizer) Header(text string) string  { return c.Wrap(text, StyleHeader...) }
func (c Colorizer) Section(text string) string { return c.Wrap(text, StyleSection...) }
func (c Colorizer) Name(text string) string    { return c.Wrap(text, StyleName...) }
func (c Colorizer) Dim(text string) string     { return c.Wrap(text, StyleDim...) }
