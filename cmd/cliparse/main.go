// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command cliparse parses a command line against a command tree declared in
// a TOML or YAML file and prints the result as JSON, YAML or shell
// variables. It lets shell scripts use typed flags, subcommands and
// generated help without writing a parser.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/yeetrun/cliparse/pkg/cliparse"
	"github.com/yeetrun/cliparse/pkg/cmdfile"
	"github.com/yeetrun/cliparse/pkg/env"
	"github.com/yeetrun/cliparse/pkg/tui"
	"gopkg.in/yaml.v3"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitParseError = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cl, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	flags, tokens := cl.Flags, cl.Tokens
	if flags.Help {
		fmt.Fprint(stdout, usage())
		return exitOK
	}
	if flags.Verbose {
		log.SetOutput(stderr)
		log.SetFlags(0)
		log.SetPrefix("cliparse: ")
	} else {
		log.SetOutput(io.Discard)
	}

	app, err := loadApp(flags.File)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	if flags.Check {
		fmt.Fprintf(stdout, "%s: ok\n", app.Name)
		return exitOK
	}
	if flags.Info {
		if err := writeInfo(stdout, flags.Format, app.Info()); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFailure
		}
		return exitOK
	}

	if err := checkInlineFlags(app.Root, cl.Inline); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitParseError
	}
	log.Printf("parsing %d tokens: %q", len(tokens), tokens)
	parsed, err := app.Parse(tokens)
	if err != nil {
		printParseError(stderr, colorizer(stderr, flags.NoColor), app.Name, err)
		return exitParseError
	}
	if parsed.HelpRequested {
		log.Printf("help requested for %q", parsed.Path)
		fmt.Fprint(stdout, app.Help(parsed, colorizer(stdout, flags.NoColor)))
		return exitOK
	}
	if err := writeParsed(stdout, flags.Format, flags.Prefix, parsed); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

// loadApp loads the command file named by path, CLIPARSE_FILE, or the
// nearest one above the working directory, in that order.
func loadApp(path string) (*cliparse.App, error) {
	if path == "" {
		path = os.Getenv("CLIPARSE_FILE")
	}
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		found, err := cmdfile.Find(cwd)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("no command file found; pass --file or set CLIPARSE_FILE")
			}
			return nil, err
		}
		path = found
	}
	log.Printf("loading %s", path)
	f, err := cmdfile.Load(path)
	if err != nil {
		return nil, err
	}
	app, err := f.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return app, nil
}

func colorizer(w io.Writer, noColor bool) tui.Colorizer {
	if noColor {
		return tui.Colorizer{}
	}
	return tui.ForWriter(w)
}

func printParseError(w io.Writer, c tui.Colorizer, name string, err error) {
	fmt.Fprintf(w, "%s %v\n", c.Error("error:"), err)
	if cliparse.WantsHelpHint(err) {
		fmt.Fprintln(w, c.Info(fmt.Sprintf("Try '%s --help' for more information.", name)))
	}
	log.Printf("parse failed: %s", cliparse.Kind(err))
}

func writeParsed(w io.Writer, format, prefix string, parsed *cliparse.ParsedArgs) error {
	switch format {
	case formatEnv:
		return env.Marshal(w, prefix, parsed)
	case formatYAML:
		return writeYAML(w, parsed)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(parsed)
	}
}

func writeInfo(w io.Writer, format string, info cliparse.AppInfo) error {
	switch format {
	case formatEnv:
		return info.Render(w)
	case formatYAML:
		return writeYAML(w, info)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
}

func writeYAML(w io.Writer, v any) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
