/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package convert provides the convert command for confetti.
package convert

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/confetti/config"
	convertlib "bennypowers.dev/confetti/convert"
	"bennypowers.dev/confetti/fs"
	"bennypowers.dev/confetti/load"
)

// Cmd is the convert cobra command.
var Cmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a configuration file to JSON or YAML",
	Long: `Parse a Confetti configuration file and render its directive tree as
JSON or YAML. A directive without a block becomes null, a string, or a
list of strings; a directive with a block becomes a nested object with
its arguments under "$args". The file defaults to "-" (stdin).

Examples:
  confetti convert app.conf
  confetti convert --format yaml -o app.yaml app.conf`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	Cmd.Flags().StringP("format", "f", "json", "Output format: "+strings.Join(convertlib.ValidFormats(), ", "))
}

func run(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	formatFlag, _ := cmd.Flags().GetString("format")

	format, err := convertlib.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	file := "-"
	if len(args) == 1 {
		file = args[0]
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

	out, err := convertlib.FormatDocument(doc, convertlib.Options{
		Format: format,
		Indent: cfg.Indent,
	})
	if err != nil {
		return err
	}

	if output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := filesystem.WriteFile(output, out, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", output, err)
	}
	return nil
}
