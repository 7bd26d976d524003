/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package lexer turns Confetti source text into a sequence of tokens.
//
// The lexer is a forward-only scanner over a UTF-8 buffer. It is restartable
// from scratch (create a new Lexer) but not resumable mid-stream.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"bennypowers.dev/confetti/token"
)

// Options toggles the syntax extensions the lexer understands.
type Options struct {
	// AllowCComments admits `//` and `/* */` comments in addition to `#`.
	AllowCComments bool

	// AllowTripleQuotes admits `"""..."""` multi-line string arguments.
	AllowTripleQuotes bool

	// AllowExpressionArguments admits parenthesized expression arguments,
	// flattened into a single decoded value.
	AllowExpressionArguments bool

	// AllowBidi admits Unicode bidirectional formatting characters.
	// They are rejected by default as a spoofing defense.
	AllowBidi bool

	// Punctuators lists single characters to admit as standalone
	// Punctuator tokens instead of rejecting them.
	Punctuators string

	// DisableLineContinuations rejects backslash line continuations
	// instead of eliding the terminator.
	DisableLineContinuations bool

	// MaxTokens bounds the number of tokens produced. Zero means no limit.
	MaxTokens int

	// MaxExpressionDepth bounds parenthesis nesting inside expression
	// arguments. Zero means DefaultMaxExpressionDepth.
	MaxExpressionDepth int
}

// DefaultMaxExpressionDepth bounds parenthesis nesting when
// Options.MaxExpressionDepth is zero.
const DefaultMaxExpressionDepth = 32

// Error is a lexical error at a source position.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Lexer scans a source buffer into tokens.
type Lexer struct {
	src    []byte
	opts   Options
	off    int
	line   int
	col    int
	lastCR bool
	count  int
}

// New creates a lexer over src.
func New(src []byte, opts Options) *Lexer {
	return &Lexer{
		src:  src,
		opts: opts,
		line: 1,
		col:  1,
	}
}

// All scans the entire buffer and returns every token up to and including
// EndOfInput.
func (lx *Lexer) All() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EndOfInput {
			return tokens, nil
		}
	}
}

// Next returns the next token. After EndOfInput it keeps returning
// EndOfInput.
func (lx *Lexer) Next() (token.Token, error) {
	lx.skipInlineSpace()

	pos := lx.pos()
	if lx.eof() {
		return token.Token{Kind: token.EndOfInput, Pos: pos}, nil
	}

	if lx.opts.MaxTokens > 0 && lx.count >= lx.opts.MaxTokens {
		return token.Token{}, &Error{Pos: pos, Msg: fmt.Sprintf("token limit of %d exceeded", lx.opts.MaxTokens)}
	}
	lx.count++

	r, _ := lx.peek()
	if err := lx.checkRune(r, pos); err != nil {
		return token.Token{}, err
	}

	switch {
	case isLineTerminator(r):
		lx.consumeTerminator()
		return lx.spanToken(token.EndOfDirective, pos), nil

	case r == ';':
		lx.advance()
		return lx.spanToken(token.EndOfDirective, pos), nil

	case r == '{':
		lx.advance()
		return lx.spanToken(token.BlockOpen, pos), nil

	case r == '}':
		lx.advance()
		return lx.spanToken(token.BlockClose, pos), nil

	case r == ',':
		lx.advance()
		return lx.spanToken(token.ArgumentSeparator, pos), nil

	case r == '#':
		return lx.scanLineComment(pos)

	case r == '/' && lx.opts.AllowCComments && (lx.peekAt(1) == '/' || lx.peekAt(1) == '*'):
		return lx.scanCComment(pos)

	case r == '\\':
		if isLineTerminator(lx.peekAt(1)) {
			if lx.opts.DisableLineContinuations {
				return token.Token{}, &Error{Pos: pos, Msg: "line continuation not allowed"}
			}
			lx.advance()
			lx.consumeTerminator()
			return lx.spanToken(token.LineContinuation, pos), nil
		}
		return lx.scanWord(pos)

	case r == '"':
		return lx.scanQuoted(pos)

	case r == '(' && lx.opts.AllowExpressionArguments:
		return lx.scanExpression(pos)

	case r == '(' || r == ')':
		if strings.ContainsRune(lx.opts.Punctuators, r) {
			lx.advance()
			return lx.spanToken(token.Punctuator, pos), nil
		}
		return token.Token{}, &Error{Pos: pos, Msg: fmt.Sprintf("unexpected character %q", r)}

	case strings.ContainsRune(lx.opts.Punctuators, r):
		lx.advance()
		return lx.spanToken(token.Punctuator, pos), nil

	default:
		return lx.scanWord(pos)
	}
}

// spanToken builds a structural token from the source span starting at pos.
func (lx *Lexer) spanToken(kind token.Kind, pos token.Position) token.Token {
	raw := string(lx.src[pos.Offset:lx.off])
	tok := token.Token{Kind: kind, Raw: raw, Pos: pos}
	if kind == token.Punctuator {
		tok.Value = raw
	}
	return tok
}

// scanWord scans an unquoted argument. A backslash escapes the character
// after it: before a line terminator it elides the terminator and any
// indentation that follows (a line continuation), before anything else the
// character joins the word literally, reserved or not.
func (lx *Lexer) scanWord(pos token.Position) (token.Token, error) {
	var value strings.Builder
	for !lx.eof() {
		r, _ := lx.peek()
		if r == '\\' {
			escPos := lx.pos()
			lx.advance()
			if lx.eof() {
				return token.Token{}, &Error{Pos: escPos, Msg: "unterminated escape sequence"}
			}
			esc, _ := lx.peek()
			if isLineTerminator(esc) {
				if lx.opts.DisableLineContinuations {
					return token.Token{}, &Error{Pos: escPos, Msg: "line continuation not allowed"}
				}
				lx.consumeTerminator()
				lx.skipInlineSpace()
				continue
			}
			if err := lx.checkRune(esc, lx.pos()); err != nil {
				return token.Token{}, err
			}
			if isInlineSpace(esc) {
				// A backslash before plain whitespace stays literal.
				value.WriteByte('\\')
			}
			value.WriteRune(esc)
			lx.advance()
			continue
		}
		if isInlineSpace(r) || isLineTerminator(r) || isReserved(r) || strings.ContainsRune(lx.opts.Punctuators, r) {
			break
		}
		if err := lx.checkRune(r, lx.pos()); err != nil {
			return token.Token{}, err
		}
		value.WriteRune(r)
		lx.advance()
	}
	return token.Token{
		Kind:  token.Word,
		Raw:   string(lx.src[pos.Offset:lx.off]),
		Value: value.String(),
		Pos:   pos,
	}, nil
}

// scanQuoted scans a `"..."` or, when enabled, a `"""..."""` argument,
// decoding escape sequences as it goes.
func (lx *Lexer) scanQuoted(pos token.Position) (token.Token, error) {
	lx.advance() // opening quote

	triple := false
	if lx.opts.AllowTripleQuotes && lx.peekAt(0) == '"' && lx.peekAt(1) == '"' {
		lx.advance()
		lx.advance()
		triple = true
	}

	kind := token.QuotedString
	what := "quoted string"
	if triple {
		kind = token.TripleQuotedString
		what = "triple-quoted string"
	}

	var value strings.Builder
	for {
		if lx.eof() {
			return token.Token{}, &Error{Pos: pos, Msg: "unterminated " + what}
		}
		r, _ := lx.peek()

		switch {
		case r == '\\':
			escPos := lx.pos()
			lx.advance()
			if lx.eof() {
				return token.Token{}, &Error{Pos: escPos, Msg: "unterminated escape sequence"}
			}
			esc, _ := lx.peek()
			if triple && isLineTerminator(esc) {
				// Escaped newline in a triple-quoted string joins
				// the physical lines.
				lx.consumeTerminator()
				continue
			}
			decoded, ok := decodeEscape(esc)
			if !ok {
				return token.Token{}, &Error{Pos: escPos, Msg: fmt.Sprintf("invalid escape sequence \\%c", esc)}
			}
			value.WriteRune(decoded)
			lx.advance()

		case r == '"':
			if !triple {
				lx.advance()
				return token.Token{
					Kind:  kind,
					Raw:   string(lx.src[pos.Offset:lx.off]),
					Value: value.String(),
					Pos:   pos,
				}, nil
			}
			if lx.peekAt(1) == '"' && lx.peekAt(2) == '"' {
				lx.advance()
				lx.advance()
				lx.advance()
				return token.Token{
					Kind:  kind,
					Raw:   string(lx.src[pos.Offset:lx.off]),
					Value: value.String(),
					Pos:   pos,
				}, nil
			}
			value.WriteByte('"')
			lx.advance()

		case isLineTerminator(r):
			if !triple {
				return token.Token{}, &Error{Pos: lx.pos(), Msg: "newline in quoted string"}
			}
			value.WriteByte('\n')
			lx.consumeTerminator()

		default:
			if err := lx.checkRune(r, lx.pos()); err != nil {
				return token.Token{}, err
			}
			value.WriteRune(r)
			lx.advance()
		}
	}
}

// scanExpression scans a balanced parenthesized run and flattens its token
// sequence into a single decoded value.
func (lx *Lexer) scanExpression(pos token.Position) (token.Token, error) {
	maxDepth := lx.opts.MaxExpressionDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxExpressionDepth
	}

	lx.advance() // opening paren
	innerStart := lx.off
	depth := 1

	for depth > 0 {
		if lx.eof() {
			return token.Token{}, &Error{Pos: pos, Msg: "unterminated expression argument"}
		}
		r, _ := lx.peek()
		switch {
		case r == '(':
			depth++
			if depth > maxDepth {
				return token.Token{}, &Error{Pos: lx.pos(), Msg: fmt.Sprintf("expression nesting depth of %d exceeded", maxDepth)}
			}
			lx.advance()
		case r == ')':
			depth--
			lx.advance()
		case r == '"':
			if err := lx.skipQuotedRaw(); err != nil {
				return token.Token{}, err
			}
		case isLineTerminator(r):
			lx.consumeTerminator()
		default:
			if err := lx.checkRune(r, lx.pos()); err != nil {
				return token.Token{}, err
			}
			lx.advance()
		}
	}

	inner := lx.src[innerStart : lx.off-1]
	value, err := flatten(inner, lx.opts)
	if err != nil {
		return token.Token{}, err
	}
	return token.Token{
		Kind:       token.Word,
		Raw:        string(lx.src[pos.Offset:lx.off]),
		Value:      value,
		Pos:        pos,
		Expression: true,
	}, nil
}

// flatten re-lexes the inside of an expression argument with the same
// grammar and joins the decoded values with single spaces.
func flatten(inner []byte, opts Options) (string, error) {
	sub := New(inner, opts)
	var parts []string
	for {
		tok, err := sub.Next()
		if err != nil {
			return "", err
		}
		switch tok.Kind {
		case token.EndOfInput:
			return strings.Join(parts, " "), nil
		case token.Word, token.QuotedString, token.TripleQuotedString, token.Punctuator:
			parts = append(parts, tok.Value)
		}
		// Separators, terminators and comments flatten to nothing.
	}
}

// skipQuotedRaw advances over a quoted string without decoding it, for use
// inside expression scanning.
func (lx *Lexer) skipQuotedRaw() error {
	pos := lx.pos()
	lx.advance() // opening quote
	triple := false
	if lx.opts.AllowTripleQuotes && lx.peekAt(0) == '"' && lx.peekAt(1) == '"' {
		lx.advance()
		lx.advance()
		triple = true
	}
	for {
		if lx.eof() {
			return &Error{Pos: pos, Msg: "unterminated quoted string"}
		}
		r, _ := lx.peek()
		switch {
		case r == '\\':
			lx.advance()
			if !lx.eof() {
				lx.advance()
			}
		case r == '"':
			if !triple {
				lx.advance()
				return nil
			}
			if lx.peekAt(1) == '"' && lx.peekAt(2) == '"' {
				lx.advance()
				lx.advance()
				lx.advance()
				return nil
			}
			lx.advance()
		case isLineTerminator(r):
			if !triple {
				return &Error{Pos: lx.pos(), Msg: "newline in quoted string"}
			}
			lx.consumeTerminator()
		default:
			lx.advance()
		}
	}
}

// scanLineComment scans a `#` comment to the end of the physical line.
// A trailing backslash is comment text, not a continuation.
func (lx *Lexer) scanLineComment(pos token.Position) (token.Token, error) {
	for !lx.eof() {
		r, _ := lx.peek()
		if isLineTerminator(r) {
			break
		}
		if err := lx.checkRune(r, lx.pos()); err != nil {
			return token.Token{}, err
		}
		lx.advance()
	}
	return lx.spanToken(token.Comment, pos), nil
}

// scanCComment scans a `//` line comment or a `/* */` block comment.
// Block comments do not nest.
func (lx *Lexer) scanCComment(pos token.Position) (token.Token, error) {
	lx.advance() // '/'
	if r, _ := lx.peek(); r == '/' {
		return lx.scanLineComment(pos)
	}
	lx.advance() // '*'
	for {
		if lx.eof() {
			return token.Token{}, &Error{Pos: pos, Msg: "unterminated block comment"}
		}
		r, _ := lx.peek()
		if r == '*' && lx.peekAt(1) == '/' {
			lx.advance()
			lx.advance()
			return lx.spanToken(token.Comment, pos), nil
		}
		if isLineTerminator(r) {
			lx.consumeTerminator()
			continue
		}
		if err := lx.checkRune(r, lx.pos()); err != nil {
			return token.Token{}, err
		}
		lx.advance()
	}
}

// pos snapshots the current position.
func (lx *Lexer) pos() token.Position {
	return token.Position{Line: lx.line, Column: lx.col, Offset: lx.off}
}

func (lx *Lexer) eof() bool {
	return lx.off >= len(lx.src)
}

// peek decodes the rune at the current offset without consuming it.
func (lx *Lexer) peek() (rune, int) {
	if lx.eof() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(lx.src[lx.off:])
}

// peekAt decodes the rune n runes ahead of the current offset, returning
// utf8.RuneError past the end of input.
func (lx *Lexer) peekAt(n int) rune {
	off := lx.off
	for ; n > 0; n-- {
		if off >= len(lx.src) {
			return utf8.RuneError
		}
		_, size := utf8.DecodeRune(lx.src[off:])
		off += size
	}
	if off >= len(lx.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRune(lx.src[off:])
	return r
}

// advance consumes one rune, tracking line and column.
func (lx *Lexer) advance() {
	r, size := lx.peek()
	if size == 0 {
		return
	}
	lx.off += size
	if isLineTerminator(r) {
		if r == '\n' && lx.lastCR {
			// The CR of a CRLF pair already counted the line.
			lx.lastCR = false
		} else {
			lx.line++
			lx.col = 1
		}
		lx.lastCR = r == '\r'
		return
	}
	lx.lastCR = false
	lx.col++
}

// consumeTerminator consumes a single logical line terminator, treating CRLF
// as one.
func (lx *Lexer) consumeTerminator() {
	r, _ := lx.peek()
	lx.advance()
	if r == '\r' {
		if next, _ := lx.peek(); next == '\n' {
			lx.advance()
		}
	}
}

// skipInlineSpace skips whitespace that does not terminate a directive.
func (lx *Lexer) skipInlineSpace() {
	for !lx.eof() {
		r, _ := lx.peek()
		if !isInlineSpace(r) {
			return
		}
		lx.advance()
	}
}

// checkRune rejects invalid UTF-8 and forbidden characters.
func (lx *Lexer) checkRune(r rune, pos token.Position) error {
	if r == utf8.RuneError && !lx.eof() {
		if _, size := utf8.DecodeRune(lx.src[lx.off:]); size == 1 {
			return &Error{Pos: pos, Msg: "invalid UTF-8 encoding"}
		}
	}
	if unicode.IsControl(r) && !unicode.IsSpace(r) {
		return &Error{Pos: pos, Msg: fmt.Sprintf("forbidden character U+%04X", r)}
	}
	if !lx.opts.AllowBidi && isBidi(r) {
		return &Error{Pos: pos, Msg: fmt.Sprintf("forbidden bidirectional character U+%04X", r)}
	}
	return nil
}

func decodeEscape(r rune) (rune, bool) {
	switch r {
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case 'f':
		return '\f', true
	case 'v':
		return '\v', true
	case '0':
		return 0, true
	}
	return 0, false
}

// isReserved reports whether r always ends a word.
func isReserved(r rune) bool {
	switch r {
	case ';', '{', '}', '"', '#', ',', '(', ')':
		return true
	}
	return false
}

func isInlineSpace(r rune) bool {
	return unicode.IsSpace(r) && !isLineTerminator(r)
}

func isLineTerminator(r rune) bool {
	switch r {
	case '\n', '\v', '\f', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

func isBidi(r rune) bool {
	switch r {
	case '\u061C', '\u200E', '\u200F',
		'\u2066', '\u2067', '\u2068', '\u2069',
		'\u202A', '\u202B', '\u202C', '\u202D', '\u202E':
		return true
	}
	return false
}
