/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package convert exports directive trees to generic data formats.
//
// A document maps to a map keyed by directive name. A directive without a
// block becomes nil (no arguments), a single string (one argument), or a
// list of strings. A directive with a block becomes a nested map; its own
// arguments, if any, land under the "$args" key. Repeated directive names
// collect into a list.
package convert

import (
	"bennypowers.dev/confetti/ast"
)

// ArgsKey is the map key holding the arguments of a block directive.
const ArgsKey = "$args"

// Tree converts a document into a generic map structure.
func Tree(doc *ast.Document) map[string]any {
	return directives(doc.Directives)
}

func directives(ds []*ast.Directive) map[string]any {
	result := make(map[string]any, len(ds))
	for _, d := range ds {
		name := d.Name.Value
		v := value(d)
		existing, seen := result[name]
		if !seen {
			result[name] = v
			continue
		}
		if list, ok := existing.([]any); ok {
			result[name] = append(list, v)
			continue
		}
		result[name] = []any{existing, v}
	}
	return result
}

func value(d *ast.Directive) any {
	if d.HasBlock || len(d.Children) > 0 {
		m := directives(d.Children)
		if len(d.Arguments) > 0 {
			m[ArgsKey] = argList(d.Arguments)
		}
		return m
	}

	switch len(d.Arguments) {
	case 0:
		return nil
	case 1:
		return d.Arguments[0].Value
	default:
		return argList(d.Arguments)
	}
}

func argList(args []ast.Argument) []any {
	list := make([]any, len(args))
	for i, a := range args {
		list[i] = a.Value
	}
	return list
}
