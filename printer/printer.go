/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package printer renders a directive tree back to Confetti source text.
//
// The quoting decision here is the inverse of the lexer's tokenization rule:
// any argument the lexer would not scan back as a single word is quoted.
// Keep the two in lock-step or round-tripping breaks.
package printer

import (
	"io"
	"strings"
	"unicode"

	"bennypowers.dev/confetti/ast"
)

// DefaultIndent is used when Options.Indent is empty.
const DefaultIndent = "  "

// Options configures rendering.
type Options struct {
	// Indent is the per-level indentation string. Empty means
	// DefaultIndent.
	Indent string

	// TripleQuotes renders multi-line values as `"""..."""` blocks
	// instead of escaping the newlines. Only enable when the consumer
	// parses with triple-quote support.
	TripleQuotes bool
}

func (o Options) indent() string {
	if o.Indent == "" {
		return DefaultIndent
	}
	return o.Indent
}

// Print renders the document.
func Print(doc *ast.Document, opts Options) string {
	var sb strings.Builder
	for _, d := range doc.Directives {
		printDirective(&sb, d, opts, 0)
	}
	return sb.String()
}

// Fprint renders the document to w.
func Fprint(w io.Writer, doc *ast.Document, opts Options) error {
	_, err := io.WriteString(w, Print(doc, opts))
	return err
}

// PrintDirective renders a single directive and its children.
func PrintDirective(d *ast.Directive, opts Options) string {
	var sb strings.Builder
	printDirective(&sb, d, opts, 0)
	return sb.String()
}

func printDirective(sb *strings.Builder, d *ast.Directive, opts Options, depth int) {
	indent := strings.Repeat(opts.indent(), depth)
	sb.WriteString(indent)
	sb.WriteString(renderArgument(d.Name, opts))

	for _, arg := range d.Arguments {
		sb.WriteByte(' ')
		sb.WriteString(renderArgument(arg, opts))
	}

	if !d.HasBlock {
		sb.WriteString(";\n")
		return
	}

	sb.WriteString(" {\n")
	for _, child := range d.Children {
		printDirective(sb, child, opts, depth+1)
	}
	sb.WriteString(indent)
	sb.WriteString("}\n")
}

// renderArgument renders one argument, quoting when the bare text would be
// ambiguous with the grammar.
func renderArgument(a ast.Argument, opts Options) string {
	if !a.Quoted && !a.TripleQuoted && !needsQuotes(a.Value) {
		return a.Value
	}
	if opts.TripleQuotes && (a.TripleQuoted || strings.ContainsRune(a.Value, '\n')) {
		return tripleQuote(a.Value)
	}
	return quote(a.Value)
}

// tripleQuote renders a `"""..."""` block. Quotes are escaped so the content
// can never collide with the closing delimiter. Line terminators other than
// LF are escaped too: the lexer normalizes every terminator inside a
// triple-quoted string to '\n', so writing them literally would change the
// value on the next parse.
func tripleQuote(s string) string {
	var sb strings.Builder
	sb.WriteString(`"""`)
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\r':
			sb.WriteString(`\r`)
		case '\f':
			sb.WriteString(`\f`)
		case '\v':
			sb.WriteString(`\v`)
		case 0:
			sb.WriteString(`\0`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteString(`"""`)
	return sb.String()
}

// needsQuotes reports whether the bare text would not scan back as a single
// word token.
func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == '\\' || reserved(r) {
			return true
		}
	}
	return false
}

func reserved(r rune) bool {
	switch r {
	case ';', '{', '}', '"', '#', ',', '(', ')':
		return true
	}
	return false
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\f':
			sb.WriteString(`\f`)
		case '\v':
			sb.WriteString(`\v`)
		case 0:
			sb.WriteString(`\0`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
