/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package yamlout renders the generic tree as YAML.
package yamlout

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/confetti/convert/formatter"
)

// Formatter renders YAML output.
type Formatter struct{}

// New creates a YAML formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format implements formatter.Formatter.
func (f *Formatter) Format(v map[string]any, opts formatter.Options) ([]byte, error) {
	indent := len(opts.Indent)
	if indent == 0 {
		indent = 2
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
