/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for the confetti CLI.
package config

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/confetti/parser"
	"bennypowers.dev/confetti/printer"
)

// Config represents the confetti project configuration.
type Config struct {
	// Indent is the indentation string used when formatting. Defaults to
	// two spaces.
	Indent string `yaml:"indent" json:"indent"`

	// Extensions enables the optional language extensions.
	Extensions Extensions `yaml:"extensions" json:"extensions"`

	// Punctuators are characters lexed as standalone arguments even when
	// not surrounded by whitespace.
	Punctuators string `yaml:"punctuators" json:"punctuators"`

	// MaxDepth bounds directive nesting. Zero means the parser default.
	MaxDepth int `yaml:"maxDepth" json:"maxDepth"`

	// MaxDirectives bounds the total directive count. Zero means no limit.
	MaxDirectives int `yaml:"maxDirectives" json:"maxDirectives"`

	// MaxArguments bounds arguments per directive. Zero means no limit.
	MaxArguments int `yaml:"maxArguments" json:"maxArguments"`

	// Files specifies the configuration files commands operate on when no
	// paths are given (supports globs).
	Files []FileSpec `yaml:"files" json:"files"`
}

// Extensions toggles the optional language extensions. All default to off,
// matching the base language.
type Extensions struct {
	// CComments enables `//` line comments and `/* */` block comments.
	CComments bool `yaml:"cComments" json:"cComments"`

	// TripleQuotes enables `"""..."""` multi-line strings.
	TripleQuotes bool `yaml:"tripleQuotes" json:"tripleQuotes"`

	// ExpressionArguments enables parenthesized expression arguments.
	ExpressionArguments bool `yaml:"expressionArguments" json:"expressionArguments"`

	// Bidi permits Unicode bidirectional formatting characters.
	Bidi bool `yaml:"bidi" json:"bidi"`
}

// FileSpec represents a file entry. It can be specified as a simple string
// path or as an object with per-file overrides.
type FileSpec struct {
	// Path is the file path (supports globs).
	Path string `yaml:"path" json:"path"`

	// Punctuators overrides the global punctuator set for this file.
	Punctuators string `yaml:"punctuators" json:"punctuators"`
}

// UnmarshalYAML handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Path = node.Value
		return nil
	}

	type rawFileSpec FileSpec
	return node.Decode((*rawFileSpec)(f))
}

// UnmarshalJSON handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Path = s
		return nil
	}

	type rawFileSpec FileSpec
	return json.Unmarshal(data, (*rawFileSpec)(f))
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Indent: printer.DefaultIndent,
	}
}

// ParserOptions returns parser.Options with the configuration applied.
func (c *Config) ParserOptions() parser.Options {
	opts := parser.Default()
	opts.AllowCComments = c.Extensions.CComments
	opts.AllowTripleQuotes = c.Extensions.TripleQuotes
	opts.AllowExpressionArguments = c.Extensions.ExpressionArguments
	opts.AllowBidi = c.Extensions.Bidi
	opts.Punctuators = c.Punctuators
	if c.MaxDepth > 0 {
		opts.MaxDepth = c.MaxDepth
	}
	opts.MaxDirectives = c.MaxDirectives
	opts.MaxArguments = c.MaxArguments
	return opts
}

// OptionsForFile returns parser.Options with file-level overrides applied on
// top of the global configuration.
func (c *Config) OptionsForFile(path string) parser.Options {
	opts := c.ParserOptions()
	for _, spec := range c.Files {
		if spec.Path == path {
			if spec.Punctuators != "" {
				opts.Punctuators = spec.Punctuators
			}
			break
		}
	}
	return opts
}

// PrinterOptions returns printer.Options with the configuration applied.
func (c *Config) PrinterOptions() printer.Options {
	return printer.Options{
		Indent:       c.Indent,
		TripleQuotes: c.Extensions.TripleQuotes,
	}
}

// FilePaths returns the list of file paths from all FileSpecs.
func (c *Config) FilePaths() []string {
	paths := make([]string, 0, len(c.Files))
	for _, spec := range c.Files {
		paths = append(paths, spec.Path)
	}
	return paths
}
