/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package format provides the fmt command for confetti.
package format

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/confetti/config"
	"bennypowers.dev/confetti/fs"
	"bennypowers.dev/confetti/internal/logger"
	"bennypowers.dev/confetti/load"
	"bennypowers.dev/confetti/parser"
	"bennypowers.dev/confetti/printer"
)

// Cmd is the fmt cobra command.
var Cmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Rewrite configuration files in canonical form",
	Long: `Rewrite Confetti configuration files in canonical form: one directive
per line, semicolon terminators, and consistent indentation. Comments are
not preserved. With no files, the files listed in the project config are
formatted. The path "-" reads from stdin and writes to stdout.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("check", false, "Report files that are not canonical without rewriting them")
	Cmd.Flags().String("indent", "", "Indentation string (default two spaces)")
	Cmd.Flags().Bool("quiet", false, "Only output errors")
}

func run(cmd *cobra.Command, args []string) error {
	checkOnly, _ := cmd.Flags().GetBool("check")
	indent, _ := cmd.Flags().GetString("indent")
	quiet, _ := cmd.Flags().GetBool("quiet")
	if quiet {
		logger.SetOutput(io.Discard)
	}

	filesystem := fs.NewOSFileSystem()
	cfg := config.ApplyViper(config.LoadOrDefault(filesystem, "."), viper.GetViper())
	if indent != "" {
		cfg.Indent = indent
	}

	files, err := resolveFiles(args, cfg, filesystem)
	if err != nil {
		return err
	}

	printerOpts := cfg.PrinterOptions()

	var unformatted, failed int
	for _, file := range files {
		opts := load.Options{
			FS:      filesystem,
			Parser:  cfg.OptionsForFile(file),
			Printer: printerOpts,
		}

		if file == "-" {
			doc, err := load.File(file, opts)
			if err != nil {
				return err
			}
			return load.Save("-", doc, opts)
		}

		if checkOnly {
			changed, err := wouldChange(file, opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
				failed++
				continue
			}
			if changed {
				fmt.Println(file)
				unformatted++
			}
			continue
		}

		changed, err := load.Format(file, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
			failed++
			continue
		}
		if changed && !quiet {
			fmt.Println(file)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	if checkOnly && unformatted > 0 {
		return fmt.Errorf("%d file(s) not formatted", unformatted)
	}
	return nil
}

// wouldChange reports whether formatting would rewrite the file, without
// touching it.
func wouldChange(file string, opts load.Options) (bool, error) {
	data, err := opts.FS.ReadFile(file)
	if err != nil {
		return false, err
	}
	doc, err := parser.Parse(data, opts.Parser)
	if err != nil {
		return false, err
	}
	formatted := []byte(printer.Print(doc, opts.Printer))
	return !bytes.Equal(data, formatted), nil
}

// resolveFiles falls back to the project config's file list when no
// arguments were given.
func resolveFiles(args []string, cfg *config.Config, filesystem fs.FileSystem) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	expanded, err := cfg.ExpandFiles(filesystem, ".")
	if err != nil {
		return nil, fmt.Errorf("error expanding config files: %w", err)
	}
	if len(expanded) == 0 {
		return nil, fmt.Errorf("no files specified and no files found in config")
	}
	return expanded, nil
}
