/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package ast defines the directive tree produced by the parser.
//
// The tree is strictly hierarchical: no cycles, no back-references to the
// source text or token stream. Once parsing returns, the tree is owned by
// the caller and is safe to share read-only across goroutines.
package ast

import "bennypowers.dev/confetti/token"

// Argument is a single decoded value attached to a directive. Arguments are
// ordered and duplicates are allowed.
type Argument struct {
	// Value is the decoded text of the argument.
	Value string

	// Raw is the argument's source span, empty for synthesized arguments.
	Raw string

	// Pos is the source position, zero for synthesized arguments.
	Pos token.Position

	// Quoted records that the argument was quoted in the source, or that
	// it must be quoted on output to round-trip as text.
	Quoted bool

	// TripleQuoted records a `"""..."""` source form.
	TripleQuoted bool

	// Expression records a parenthesized expression argument.
	Expression bool
}

// Directive is a named configuration entry with ordered arguments and an
// optional block of child directives.
type Directive struct {
	// Name is the directive's name. Names share the argument grammar, so
	// a quoted string can name a directive.
	Name Argument

	// Arguments are the directive's ordered arguments.
	Arguments []Argument

	// Children holds the directives of the block, if any.
	Children []*Directive

	// HasBlock distinguishes `name { }` from `name;`. An empty block is
	// semantically meaningful and must survive a round-trip.
	HasBlock bool
}

// Document is the root of a directive tree: an implicit unnamed directive
// whose children are the document's top-level directives.
type Document struct {
	Directives []*Directive
}

// New creates a directive with the given name and argument values.
func New(name string, args ...string) *Directive {
	d := &Directive{Name: Argument{Value: name}}
	for _, a := range args {
		d.Arguments = append(d.Arguments, Argument{Value: a})
	}
	return d
}

// Find returns the first child directive with the given name, or nil.
func (d *Directive) Find(name string) *Directive {
	for _, child := range d.Children {
		if child.Name.Value == name {
			return child
		}
	}
	return nil
}

// FindAll returns every child directive with the given name, in order.
func (d *Directive) FindAll(name string) []*Directive {
	var out []*Directive
	for _, child := range d.Children {
		if child.Name.Value == name {
			out = append(out, child)
		}
	}
	return out
}

// Arg returns the i-th argument value, or "" when absent.
func (d *Directive) Arg(i int) string {
	if i < 0 || i >= len(d.Arguments) {
		return ""
	}
	return d.Arguments[i].Value
}

// ArgValues returns every argument value in order.
func (d *Directive) ArgValues() []string {
	out := make([]string, len(d.Arguments))
	for i, a := range d.Arguments {
		out[i] = a.Value
	}
	return out
}

// GetString returns the first argument of the named child directive.
// The second return reports whether the child exists and has an argument.
func (d *Directive) GetString(name string) (string, bool) {
	child := d.Find(name)
	if child == nil || len(child.Arguments) == 0 {
		return "", false
	}
	return child.Arguments[0].Value, true
}

// Append adds a child directive and marks the receiver as a block.
func (d *Directive) Append(child *Directive) {
	d.HasBlock = true
	d.Children = append(d.Children, child)
}

// Clone returns a deep copy of the directive.
func (d *Directive) Clone() *Directive {
	out := &Directive{
		Name:     d.Name,
		HasBlock: d.HasBlock,
	}
	if len(d.Arguments) > 0 {
		out.Arguments = append([]Argument(nil), d.Arguments...)
	}
	for _, child := range d.Children {
		out.Children = append(out.Children, child.Clone())
	}
	return out
}

// Find returns the first top-level directive with the given name, or nil.
func (doc *Document) Find(name string) *Directive {
	for _, d := range doc.Directives {
		if d.Name.Value == name {
			return d
		}
	}
	return nil
}

// Len counts every directive in the document, at any depth.
func (doc *Document) Len() int {
	n := 0
	for _, d := range doc.Directives {
		n += count(d)
	}
	return n
}

func count(d *Directive) int {
	n := 1
	for _, child := range d.Children {
		n += count(child)
	}
	return n
}
