// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cliparse parses command lines against a declared tree of commands,
// typed flags and positional arguments.
//
// A tree is built once and then shared by any number of Parse calls:
//   - Commands nest to any depth; a subcommand name consumes every token
//     after it.
//   - Flags are typed (boolean, string, integer, float, string list and
//     integer list) and are coerced while parsing.
//   - List flags accumulate when repeated.
//   - Defaults and required flags are enforced per command.
//   - "--help" and "-h" win over every other token at any depth.
//
// # Building a Tree
//
//	app := cliparse.NewApp("calc", "1.0.0").
//	    WithDescription("Simple calculator").
//	    AddGlobalFlag(cliparse.NewFlag("verbose", cliparse.TypeBool).WithShort('v')).
//	    AddCommand(cliparse.NewCommand("add").
//	        WithDescription("Add numbers").
//	        AddFlag(cliparse.NewFlag("numbers", cliparse.TypeIntegerList).WithRequired(true)))
//
//	if err := app.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Parsing
//
//	parsed, err := app.Parse(os.Args[1:])
//	if err != nil {
//	    var unknown *cliparse.UnknownFlagError
//	    if errors.As(err, &unknown) {
//	        // ...
//	    }
//	    os.Exit(2)
//	}
//	if parsed.HelpRequested {
//	    fmt.Print(app.Help(parsed, tui.ForWriter(os.Stdout)))
//	    return
//	}
//	sum := int64(0)
//	for _, n := range parsed.IntegerList("numbers") {
//	    sum += n
//	}
//
// App.Run does the help and error printing shown above in one call.
//
// # Tokens
//
// "--name" selects a flag by exact name and "-c" by its one-character alias.
// Bundled short flags ("-abc") are treated like any other bare word, and
// "--name=value" is looked up as a flag called "name=value". A boolean flag
// is true when present and unset when absent. Every other flag consumes the
// following token as its value, even if that token starts with a dash.
//
// # Errors
//
// Every failure is one of the typed errors in this package, each of which
// unwraps to a sentinel such as ErrUnknownFlag. Kind names the failure kind.
package cliparse
