/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package check provides the check command for confetti.
package check

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/confetti/config"
	"bennypowers.dev/confetti/fs"
	"bennypowers.dev/confetti/lexer"
	"bennypowers.dev/confetti/load"
	"bennypowers.dev/confetti/parser"
)

// Cmd is the check cobra command.
var Cmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Check configuration files for syntax errors",
	Long: `Parse Confetti configuration files and report syntax errors with their
positions. With no files, the files listed in the project config are
checked. The path "-" reads from stdin.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("quiet", false, "Only output errors")
}

func run(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")

	filesystem := fs.NewOSFileSystem()
	cfg := config.ApplyViper(config.LoadOrDefault(filesystem, "."), viper.GetViper())

	files := args
	if len(files) == 0 {
		expanded, err := cfg.ExpandFiles(filesystem, ".")
		if err != nil {
			return fmt.Errorf("error expanding config files: %w", err)
		}
		files = expanded
	}
	if len(files) == 0 {
		return fmt.Errorf("no files specified and no files found in config")
	}

	hasErrors := false
	for _, file := range files {
		doc, err := load.File(file, load.Options{
			FS:     filesystem,
			Parser: cfg.OptionsForFile(file),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", file, describe(err))
			hasErrors = true
			continue
		}
		if !quiet {
			fmt.Printf("%s: %d directive(s)\n", file, doc.Len())
		}
	}

	if hasErrors {
		return fmt.Errorf("check failed")
	}
	if !quiet {
		fmt.Println("All files valid.")
	}
	return nil
}

// describe renders an error with its source position when one is known.
func describe(err error) string {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return fmt.Sprintf("%s: %s", lexErr.Pos, lexErr.Msg)
	}
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		return fmt.Sprintf("%s: %s", parseErr.Pos, parseErr.Msg)
	}
	var limitErr *parser.LimitError
	if errors.As(err, &limitErr) {
		return fmt.Sprintf("%s: %s limit of %d exceeded", limitErr.Pos, limitErr.What, limitErr.Limit)
	}
	return err.Error()
}
