// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/yeetrun/cliparse/pkg/cliparse"
)

func newApp() *cliparse.App {
	return cliparse.NewApp("basic", "1.0.0").
		WithDescription("Basic example of the cliparse library").
		AddCommand(cliparse.NewCommand("hello").
			WithDescription("Greets the user").
			AddFlag(cliparse.NewFlag("name", cliparse.TypeString).
				WithShort('n').
				WithDescription("Name of the person to greet").
				WithRequired(true)).
			AddFlag(cliparse.NewFlag("times", cliparse.TypeInteger).
				WithShort('t').
				WithDescription("How many times to repeat the greeting").
				WithDefault(cliparse.IntegerValue(1))).
			AddFlag(cliparse.NewFlag("greeting", cliparse.TypeString).
				WithShort('g').
				WithDescription("Greeting to use").
				WithPossibleValues("hi", "hello", "hola").
				WithDefault(cliparse.StringValue("hello")))).
		AddCommand(cliparse.NewCommand("calc").
			WithDescription("Simple calculator").
			WithShowHelpOnEmpty(true).
			AddSubcommand(cliparse.NewCommand("add").
				WithDescription("Adds numbers").
				AddFlag(cliparse.NewFlag("numbers", cliparse.TypeIntegerList).
					WithDescription("Numbers to add").
					WithRequired(true))).
			AddSubcommand(cliparse.NewCommand("multiply").
				WithDescription("Multiplies numbers").
				AddFlag(cliparse.NewFlag("numbers", cliparse.TypeIntegerList).
					WithDescription("Numbers to multiply").
					WithRequired(true))))
}

func main() {
	app := newApp()
	if err := app.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	parsed, err := app.Run(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	if parsed.HelpRequested {
		return
	}
	for _, line := range handle(parsed) {
		color.Green("%s", line)
	}
}

func handle(parsed *cliparse.ParsedArgs) []string {
	switch strings.Join(parsed.Path, " ") {
	case "hello":
		return hello(parsed)
	case "calc add":
		sum := int64(0)
		for _, n := range parsed.IntegerList("numbers") {
			sum += n
		}
		return []string{fmt.Sprintf("Sum: %d", sum)}
	case "calc multiply":
		product := int64(1)
		for _, n := range parsed.IntegerList("numbers") {
			product *= n
		}
		return []string{fmt.Sprintf("Product: %d", product)}
	}
	return []string{"No command given. Use --help to see the available commands."}
}

func hello(parsed *cliparse.ParsedArgs) []string {
	name := parsed.String("name")
	greeting := parsed.String("greeting")
	times, _ := parsed.Integer("times")

	var out []string
	for i := int64(1); i <= times; i++ {
		msg := fmt.Sprintf("%s, %s!", greeting, name)
		if times > 1 {
			msg = fmt.Sprintf("(%d/%d) %s", i, times, msg)
		}
		out = append(out, msg)
	}
	return out
}
