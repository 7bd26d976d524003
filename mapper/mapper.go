/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mapper converts between directive trees and Go structs.
//
// Scalar fields map to a child directive holding a single argument, nested
// structs map to child directives with their own blocks, pointers encode
// optionality (an absent directive, never a literal token), and slices map
// to repeated arguments or repeated child directives. Conversion of leaf
// values goes through the Converter registry, encoding.TextMarshaler and
// TextUnmarshaler, or the built-in handling for strings, integers, floats
// and booleans.
package mapper

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"bennypowers.dev/confetti/ast"
	"bennypowers.dev/confetti/parser"
	"bennypowers.dev/confetti/printer"
)

// Unmarshal parses data and maps the first top-level directive into v,
// which must be a non-nil pointer to a struct.
func Unmarshal(data []byte, v any, opts Options) error {
	doc, err := parser.Parse(data, opts.Parser)
	if err != nil {
		return err
	}
	if len(doc.Directives) == 0 {
		return errors.New("no directives in document")
	}
	return FromDirective(doc.Directives[0], v, opts)
}

// Marshal maps v into a single-directive document named after v's type and
// renders it.
func Marshal(v any, opts Options) ([]byte, error) {
	d, err := ToDirective(v, "", opts)
	if err != nil {
		return nil, err
	}
	text := printer.Print(&ast.Document{Directives: []*ast.Directive{d}}, printer.Options{
		Indent:       opts.Indent,
		TripleQuotes: opts.Parser.AllowTripleQuotes,
	})
	return []byte(text), nil
}

// FromDirective maps the children of d into v, which must be a non-nil
// pointer to a struct. Unknown child directives are ignored unless
// opts.Strict is set.
func FromDirective(d *ast.Directive, v any, opts Options) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("target must be a non-nil pointer to a struct")
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return fmt.Errorf("target must point to a struct, got %s", elem.Kind())
	}
	return fromDirective(d, elem, opts)
}

// ToDirective maps v, a struct or pointer to one, into a directive. When
// name is empty the struct's type name is used.
func ToDirective(v any, name string, opts Options) (*ast.Directive, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errors.New("cannot map a nil pointer")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("cannot map %s, want a struct", rv.Kind())
	}
	if name == "" {
		name = rv.Type().Name()
	}
	return toDirective(rv, name, opts)
}

// field carries a struct field's resolved mapping behavior.
type field struct {
	name      string
	index     int
	omitEmpty bool
	argsMode  bool
}

// resolveFields maps directive names to exported struct fields, honoring
// `conf:` tag overrides and the naming policy.
func resolveFields(t reflect.Type, opts Options) []field {
	fields := make([]field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ""
		var omitEmpty, argsMode bool
		if tag, ok := sf.Tag.Lookup("conf"); ok {
			if tag == "-" {
				continue
			}
			var flags string
			name, flags = splitTag(tag)
			omitEmpty = strings.Contains(flags, "omitempty")
			argsMode = strings.Contains(flags, "args")
		}
		if name == "" {
			name = opts.Naming.Translate(sf.Name)
		}
		fields = append(fields, field{name: name, index: i, omitEmpty: omitEmpty, argsMode: argsMode})
	}
	return fields
}

func splitTag(tag string) (name, flags string) {
	name, flags, _ = strings.Cut(tag, ",")
	return name, flags
}

func fromDirective(d *ast.Directive, v reflect.Value, opts Options) error {
	fields := resolveFields(v.Type(), opts)

	if opts.Strict {
		known := make(map[string]bool, len(fields))
		for _, f := range fields {
			known[f.name] = true
		}
		for _, child := range d.Children {
			if !known[child.Name.Value] {
				return &UnknownFieldError{Name: child.Name.Value}
			}
		}
	}

	for _, f := range fields {
		fv := v.Field(f.index)
		if err := fromField(d, f, fv, opts); err != nil {
			return err
		}
	}
	return nil
}

func fromField(d *ast.Directive, f field, fv reflect.Value, opts Options) error {
	if f.argsMode {
		return fromArgs(d, f, fv)
	}

	children := d.FindAll(f.name)

	if fv.Kind() != reflect.Pointer && hasConverter(fv.Type()) {
		return fromScalar(children, f, fv)
	}

	switch fv.Kind() {
	case reflect.Pointer:
		if len(children) == 0 {
			// Absence is the encoding of nil, not a literal token.
			return nil
		}
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		return fromField(d, f, fv.Elem(), opts)

	case reflect.Struct:
		if len(children) == 0 {
			if f.omitEmpty {
				return nil
			}
			return &MissingFieldError{Field: f.name}
		}
		return fromDirective(children[0], fv, opts)

	case reflect.Slice:
		if len(children) == 0 {
			if f.omitEmpty {
				return nil
			}
			return &MissingFieldError{Field: f.name}
		}
		return fromSlice(children, f, fv, opts)

	default:
		return fromScalar(children, f, fv)
	}
}

// fromArgs fills an `args` mode slice field from the directive's own
// arguments rather than from a child.
func fromArgs(d *ast.Directive, f field, fv reflect.Value) error {
	if fv.Kind() != reflect.Slice {
		return fmt.Errorf("field %q: args mode requires a slice, got %s", f.name, fv.Kind())
	}
	out := reflect.MakeSlice(fv.Type(), 0, len(d.Arguments))
	for _, arg := range d.Arguments {
		elem := reflect.New(fv.Type().Elem()).Elem()
		if err := convertFromText(arg.Value, elem); err != nil {
			return &ConversionError{Field: f.name, Value: arg.Value, Err: err}
		}
		out = reflect.Append(out, elem)
	}
	fv.Set(out)
	return nil
}

func fromScalar(children []*ast.Directive, f field, fv reflect.Value) error {
	if len(children) == 0 || len(children[0].Arguments) == 0 {
		if f.omitEmpty {
			return nil
		}
		return &MissingFieldError{Field: f.name}
	}
	value := children[0].Arguments[0].Value
	if err := convertFromText(value, fv); err != nil {
		return &ConversionError{Field: f.name, Value: value, Err: err}
	}
	return nil
}

// fromSlice fills a slice field from repeated child directives. Struct
// elements take one directive each; scalar elements take every argument of
// every occurrence, so `ports 80 443;` and `ports 80; ports 443;` read the
// same.
func fromSlice(children []*ast.Directive, f field, fv reflect.Value, opts Options) error {
	elemType := fv.Type().Elem()
	out := reflect.MakeSlice(fv.Type(), 0, len(children))

	structElems := elemType.Kind() == reflect.Struct && !hasConverter(elemType)
	for _, child := range children {
		if structElems {
			elem := reflect.New(elemType).Elem()
			if err := fromDirective(child, elem, opts); err != nil {
				return err
			}
			out = reflect.Append(out, elem)
			continue
		}
		for _, arg := range child.Arguments {
			elem := reflect.New(elemType).Elem()
			if err := convertFromText(arg.Value, elem); err != nil {
				return &ConversionError{Field: f.name, Value: arg.Value, Err: err}
			}
			out = reflect.Append(out, elem)
		}
	}
	fv.Set(out)
	return nil
}

func toDirective(v reflect.Value, name string, opts Options) (*ast.Directive, error) {
	d := &ast.Directive{Name: ast.Argument{Value: name}, HasBlock: true}

	for _, f := range resolveFields(v.Type(), opts) {
		fv := v.Field(f.index)
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		if err := toField(d, f, fv, opts); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func toField(d *ast.Directive, f field, fv reflect.Value, opts Options) error {
	if f.argsMode {
		return toArgs(d, f, fv)
	}

	if fv.Kind() != reflect.Pointer && hasConverter(fv.Type()) {
		return appendScalar(d, f, fv)
	}

	switch fv.Kind() {
	case reflect.Pointer:
		if fv.IsNil() {
			// Optional and absent: no directive at all.
			return nil
		}
		return toField(d, f, fv.Elem(), opts)

	case reflect.Struct:
		child, err := toDirective(fv, f.name, opts)
		if err != nil {
			return err
		}
		d.Append(child)
		return nil

	case reflect.Slice:
		return toSlice(d, f, fv, opts)

	default:
		return appendScalar(d, f, fv)
	}
}

// toArgs renders an `args` mode slice as the directive's own arguments.
func toArgs(d *ast.Directive, f field, fv reflect.Value) error {
	if fv.Kind() != reflect.Slice {
		return &SerializeError{Field: f.name, Err: fmt.Errorf("args mode requires a slice, got %s", fv.Kind())}
	}
	for i := 0; i < fv.Len(); i++ {
		text, quoted, err := convertToText(fv.Index(i))
		if err != nil {
			return &SerializeError{Field: f.name, Err: err}
		}
		d.Arguments = append(d.Arguments, ast.Argument{Value: text, Quoted: quoted})
	}
	return nil
}

func appendScalar(d *ast.Directive, f field, fv reflect.Value) error {
	text, quoted, err := convertToText(fv)
	if err != nil {
		return &SerializeError{Field: f.name, Err: err}
	}
	d.Append(&ast.Directive{
		Name:      ast.Argument{Value: f.name},
		Arguments: []ast.Argument{{Value: text, Quoted: quoted}},
	})
	return nil
}

// toSlice renders a slice field. Scalar elements become one directive with
// repeated arguments; struct elements become repeated directives.
func toSlice(d *ast.Directive, f field, fv reflect.Value, opts Options) error {
	elemType := fv.Type().Elem()
	if elemType.Kind() == reflect.Struct && !hasConverter(elemType) {
		for i := 0; i < fv.Len(); i++ {
			child, err := toDirective(fv.Index(i), f.name, opts)
			if err != nil {
				return err
			}
			d.Append(child)
		}
		return nil
	}

	child := &ast.Directive{Name: ast.Argument{Value: f.name}}
	for i := 0; i < fv.Len(); i++ {
		text, quoted, err := convertToText(fv.Index(i))
		if err != nil {
			return &SerializeError{Field: f.name, Err: err}
		}
		child.Arguments = append(child.Arguments, ast.Argument{Value: text, Quoted: quoted})
	}
	d.Append(child)
	return nil
}

func hasConverter(t reflect.Type) bool {
	if _, ok := converterFor(t); ok {
		return true
	}
	if t.Implements(reflect.TypeOf((*textMarshaler)(nil)).Elem()) {
		return true
	}
	if reflect.PointerTo(t).Implements(reflect.TypeOf((*textUnmarshaler)(nil)).Elem()) {
		return true
	}
	return false
}
