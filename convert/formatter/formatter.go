/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package formatter defines the interface output formatters implement.
package formatter

// Options configures formatter output.
type Options struct {
	// Indent is the indentation string for formats that support it.
	Indent string
}

// Formatter renders the generic tree produced by convert.Tree.
type Formatter interface {
	// Format renders v to the output format.
	Format(v map[string]any, opts Options) ([]byte, error)
}
