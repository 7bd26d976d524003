/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package convert

import (
	"fmt"
	"strings"

	"bennypowers.dev/confetti/ast"
	"bennypowers.dev/confetti/convert/formatter"
	"bennypowers.dev/confetti/convert/formatter/jsonout"
	"bennypowers.dev/confetti/convert/formatter/yamlout"
)

// Format represents an output format for document conversion.
type Format string

const (
	// FormatJSON outputs indented JSON (default).
	FormatJSON Format = "json"

	// FormatYAML outputs YAML.
	FormatYAML Format = "yaml"
)

// ValidFormats returns all valid format strings.
func ValidFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format: %s (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// Options configures document conversion.
type Options struct {
	// Format specifies the output format (default FormatJSON).
	Format Format

	// Indent is the indentation string for the output.
	Indent string
}

// FormatDocument converts a document to the specified output format.
func FormatDocument(doc *ast.Document, opts Options) ([]byte, error) {
	var f formatter.Formatter
	switch opts.Format {
	case FormatJSON, "":
		f = jsonout.New()
	case FormatYAML:
		f = yamlout.New()
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}

	return f.Format(Tree(doc), formatter.Options{Indent: opts.Indent})
}
