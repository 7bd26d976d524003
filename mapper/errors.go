/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mapper

import "fmt"

// MissingFieldError reports a required field with no corresponding child
// directive or argument.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// ConversionError reports a value that failed conversion for a field.
type ConversionError struct {
	Field string
	Value string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("field %q: cannot convert %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// UnknownFieldError reports a directive that matches no struct field.
// Only returned in strict mode; unknown directives are ignored by default
// for forward compatibility.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Name)
}

// SerializeError reports a value that cannot be rendered to configuration
// text.
type SerializeError struct {
	Field string
	Err   error
}

func (e *SerializeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("serialize: %v", e.Err)
	}
	return fmt.Sprintf("serialize field %q: %v", e.Field, e.Err)
}

func (e *SerializeError) Unwrap() error {
	return e.Err
}
