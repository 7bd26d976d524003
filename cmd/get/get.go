/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package get provides the get command for confetti.
package get

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/confetti/ast"
	"bennypowers.dev/confetti/config"
	"bennypowers.dev/confetti/fs"
	"bennypowers.dev/confetti/load"
	"bennypowers.dev/confetti/printer"
)

// Cmd is the get cobra command.
var Cmd = &cobra.Command{
	Use:   "get <path> [file]",
	Short: "Print the value of a directive",
	Long: `Look up a directive by dot-separated path and print its arguments, one
per line. Directives with a block print in canonical form instead. The
file defaults to "-" (stdin).

Examples:
  confetti get server.port app.conf
  confetti get user < app.conf`,
	Args: cobra.RangeArgs(1, 2),
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("all", false, "Print every match instead of the first")
}

func run(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")

	path := strings.Split(args[0], ".")
	file := "-"
	if len(args) == 2 {
		file = args[1]
	}

	filesystem := fs.NewOSFileSystem()
	cfg := config.ApplyViper(config.LoadOrDefault(filesystem, "."), viper.GetViper())

	doc, err := load.File(file, load.Options{
		FS:     filesystem,
		Parser: cfg.OptionsForFile(file),
	})
	if err != nil {
		return err
	}

	matches := lookup(doc.Directives, path)
	if len(matches) == 0 {
		return fmt.Errorf("no directive at path %q", args[0])
	}
	if !all {
		matches = matches[:1]
	}

	for _, d := range matches {
		if d.HasBlock || len(d.Children) > 0 {
			fmt.Print(printer.PrintDirective(d, printer.Options{Indent: cfg.Indent}))
			continue
		}
		for _, arg := range d.Arguments {
			fmt.Println(arg.Value)
		}
	}
	return nil
}

// lookup walks the tree matching each path segment against directive names.
func lookup(ds []*ast.Directive, path []string) []*ast.Directive {
	if len(path) == 0 {
		return nil
	}
	var matches []*ast.Directive
	for _, d := range ds {
		if d.Name.Value != path[0] {
			continue
		}
		if len(path) == 1 {
			matches = append(matches, d)
			continue
		}
		matches = append(matches, lookup(d.Children, path[1:])...)
	}
	return matches
}
