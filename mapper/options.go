/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mapper

import (
	"github.com/iancoleman/strcase"

	"bennypowers.dev/confetti/parser"
)

// Naming is the policy that translates a Go field identifier into the
// directive name expected in configuration text. A `conf:"name"` tag
// overrides the policy per field.
type Naming int

const (
	// KebabCase translates MaxPoolSize to max-pool-size. The default.
	KebabCase Naming = iota

	// SnakeCase translates MaxPoolSize to max_pool_size.
	SnakeCase

	// CamelCase translates MaxPoolSize to maxPoolSize.
	CamelCase

	// AsDeclared uses the field identifier unchanged.
	AsDeclared
)

// Translate applies the policy to a field identifier.
func (n Naming) Translate(field string) string {
	switch n {
	case SnakeCase:
		return strcase.ToSnake(field)
	case CamelCase:
		return strcase.ToLowerCamel(field)
	case AsDeclared:
		return field
	default:
		return strcase.ToKebab(field)
	}
}

// Options configures mapping and the text round-trip it implies.
type Options struct {
	// Naming is the field-name translation policy.
	Naming Naming

	// Strict makes unknown child directives an UnknownFieldError instead
	// of ignoring them.
	Strict bool

	// Indent is the indentation used when rendering to text.
	Indent string

	// Parser is applied when round-tripping through text.
	Parser parser.Options
}

// DefaultOptions returns kebab-case naming, two-space indent, and the
// default parser options.
func DefaultOptions() Options {
	return Options{
		Naming: KebabCase,
		Indent: "  ",
		Parser: parser.Default(),
	}
}
