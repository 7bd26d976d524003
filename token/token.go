/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token defines the lexical tokens of the Confetti configuration
// language and the source positions attached to them.
package token

import "fmt"

// Kind identifies the class of a lexical token.
type Kind int

const (
	// EndOfInput marks the end of the source text.
	EndOfInput Kind = iota

	// Word is an unquoted run of non-reserved characters.
	Word

	// QuotedString is a `"..."` argument with escape processing.
	QuotedString

	// TripleQuotedString is a `"""..."""` argument preserving newlines.
	TripleQuotedString

	// Punctuator is a single reserved character admitted by
	// Options.Punctuators.
	Punctuator

	// Comment is a `#`, `//` or `/* */` comment span. The parser discards
	// these.
	Comment

	// BlockOpen is `{`.
	BlockOpen

	// BlockClose is `}`.
	BlockClose

	// ArgumentSeparator is a cosmetic `,` between arguments.
	ArgumentSeparator

	// LineContinuation is a `\` immediately before a line terminator.
	LineContinuation

	// EndOfDirective is a `;` or an unescaped line terminator.
	EndOfDirective
)

var kindNames = map[Kind]string{
	EndOfInput:         "end of input",
	Word:               "word",
	QuotedString:       "quoted string",
	TripleQuotedString: "triple-quoted string",
	Punctuator:         "punctuator",
	Comment:            "comment",
	BlockOpen:          "'{'",
	BlockClose:         "'}'",
	ArgumentSeparator:  "','",
	LineContinuation:   "line continuation",
	EndOfDirective:     "directive terminator",
}

// String returns a human-readable name for the kind, suitable for error
// messages.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Position is a location in the source text. Line and Column are 1-based;
// Offset is the 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String formats the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical token. Raw is the source text of the token
// verbatim; Value is the decoded text with quotes stripped, escapes
// processed, and continuations elided.
type Token struct {
	Kind Kind

	// Raw is the exact source span of the token.
	Raw string

	// Value is the decoded argument value. Empty for structural tokens.
	Value string

	// Pos is the position of the token's first byte.
	Pos Position

	// Expression marks a parenthesized expression argument that was
	// flattened into a single value.
	Expression bool
}

// IsArgument reports whether the token can serve as a directive name or
// argument.
func (t Token) IsArgument() bool {
	switch t.Kind {
	case Word, QuotedString, TripleQuotedString:
		return true
	}
	return false
}
