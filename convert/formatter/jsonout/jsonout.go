/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package jsonout renders the generic tree as indented JSON.
package jsonout

import (
	"bytes"
	"encoding/json"

	"bennypowers.dev/confetti/convert/formatter"
)

// Formatter renders JSON output.
type Formatter struct{}

// New creates a JSON formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format implements formatter.Formatter.
func (f *Formatter) Format(v map[string]any, opts formatter.Options) ([]byte, error) {
	indent := opts.Indent
	if indent == "" {
		indent = "  "
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
