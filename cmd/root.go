/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for confetti.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/confetti/cmd/check"
	"bennypowers.dev/confetti/cmd/convert"
	"bennypowers.dev/confetti/cmd/format"
	"bennypowers.dev/confetti/cmd/get"
	"bennypowers.dev/confetti/cmd/version"
)

var rootCmd = &cobra.Command{
	Use:   "confetti",
	Short: "Parse, format, and query Confetti configuration files",
	Long: `confetti parses Confetti configuration files, a minimalist directive
language with arguments, nested blocks, and optional extensions.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Bool("c-comments", false, "Enable // and /* */ comments")
	pf.Bool("triple-quotes", false, "Enable \"\"\"...\"\"\" multi-line strings")
	pf.Bool("expression-arguments", false, "Enable parenthesized expression arguments")
	pf.Bool("bidi", false, "Permit Unicode bidirectional formatting characters")
	pf.String("punctuators", "", "Characters lexed as standalone arguments")
	pf.Int("max-depth", 0, "Maximum directive nesting depth (0 = default)")
	pf.Int("max-directives", 0, "Maximum total directive count (0 = unlimited)")
	pf.Int("max-arguments", 0, "Maximum arguments per directive (0 = unlimited)")

	for _, name := range []string{
		"c-comments", "triple-quotes", "expression-arguments", "bidi",
		"punctuators", "max-depth", "max-directives", "max-arguments",
	} {
		cobra.CheckErr(viper.BindPFlag(name, pf.Lookup(name)))
	}

	rootCmd.AddCommand(format.Cmd)
	rootCmd.AddCommand(check.Cmd)
	rootCmd.AddCommand(get.Cmd)
	rootCmd.AddCommand(convert.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
