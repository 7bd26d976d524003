/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package parser builds a directive tree from Confetti source text.
//
// Parsing is recursive descent, one call frame per open block. The parser is
// a pure function of its input: no shared state, no I/O.
package parser

import (
	"fmt"

	"bennypowers.dev/confetti/ast"
	"bennypowers.dev/confetti/lexer"
	"bennypowers.dev/confetti/token"
)

// DefaultMaxDepth bounds block nesting when Options.MaxDepth is zero.
const DefaultMaxDepth = 100

// Options configures the syntax extensions and resource limits applied
// while parsing.
type Options struct {
	// AllowCComments admits `//` and `/* */` comments.
	AllowCComments bool

	// AllowTripleQuotes admits `"""..."""` arguments.
	AllowTripleQuotes bool

	// AllowExpressionArguments admits parenthesized expression arguments.
	AllowExpressionArguments bool

	// AllowBidi admits Unicode bidirectional formatting characters.
	AllowBidi bool

	// Punctuators lists single characters admitted as standalone
	// punctuator arguments.
	Punctuators string

	// RequireSemicolons requires an explicit ';' after every directive
	// without a block. Newline termination becomes an error.
	RequireSemicolons bool

	// DisableLineContinuations rejects backslash line continuations.
	DisableLineContinuations bool

	// MaxDepth bounds block nesting. Zero means DefaultMaxDepth.
	MaxDepth int

	// MaxDirectives bounds the total directive count. Zero means no limit.
	MaxDirectives int

	// MaxArguments bounds the argument count of a single directive.
	// Zero means no limit.
	MaxArguments int
}

// Default returns the options used when none are supplied.
func Default() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

func (o Options) maxDepth() int {
	if o.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) lexerOptions() lexer.Options {
	return lexer.Options{
		AllowCComments:           o.AllowCComments,
		AllowTripleQuotes:        o.AllowTripleQuotes,
		AllowExpressionArguments: o.AllowExpressionArguments,
		AllowBidi:                o.AllowBidi,
		Punctuators:              o.Punctuators,
		DisableLineContinuations: o.DisableLineContinuations,
	}
}

// Parse builds a directive tree from src. An empty document yields a
// Document with no directives, not an error. Lexical errors surface as
// *lexer.Error, grammar violations as *parser.Error, and exceeded resource
// limits as *parser.LimitError.
func Parse(src []byte, opts Options) (*ast.Document, error) {
	p := &parser{
		lx:   lexer.New(src, opts.lexerOptions()),
		opts: opts,
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseDocument()
}

type parser struct {
	lx         *lexer.Lexer
	opts       Options
	tok        token.Token
	directives int
}

func (p *parser) advance() error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) parseDocument() (*ast.Document, error) {
	doc := &ast.Document{}
	for {
		switch p.tok.Kind {
		case token.EndOfInput:
			return doc, nil
		case token.EndOfDirective, token.Comment, token.LineContinuation, token.ArgumentSeparator:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case token.BlockClose:
			return nil, &Error{Pos: p.tok.Pos, Msg: "unmatched '}'"}
		default:
			d, err := p.parseDirective(1)
			if err != nil {
				return nil, err
			}
			doc.Directives = append(doc.Directives, d)
		}
	}
}

func (p *parser) parseDirective(depth int) (*ast.Directive, error) {
	if depth > p.opts.maxDepth() {
		return nil, &LimitError{Pos: p.tok.Pos, What: "nesting depth", Limit: p.opts.maxDepth()}
	}
	if p.opts.MaxDirectives > 0 {
		p.directives++
		if p.directives > p.opts.MaxDirectives {
			return nil, &LimitError{Pos: p.tok.Pos, What: "directive count", Limit: p.opts.MaxDirectives}
		}
	}

	if !p.tok.IsArgument() {
		return nil, &Error{Pos: p.tok.Pos, Msg: fmt.Sprintf("expected directive name, found %s", p.tok.Kind)}
	}

	d := &ast.Directive{Name: argument(p.tok)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	for {
		switch p.tok.Kind {
		case token.Word, token.QuotedString, token.TripleQuotedString, token.Punctuator:
			if p.opts.MaxArguments > 0 && len(d.Arguments) >= p.opts.MaxArguments {
				return nil, &LimitError{Pos: p.tok.Pos, What: "argument count", Limit: p.opts.MaxArguments}
			}
			d.Arguments = append(d.Arguments, argument(p.tok))
			if err := p.advance(); err != nil {
				return nil, err
			}

		case token.ArgumentSeparator, token.LineContinuation, token.Comment:
			// Cosmetic between arguments.
			if err := p.advance(); err != nil {
				return nil, err
			}

		case token.BlockOpen:
			if err := p.parseBlock(d, depth); err != nil {
				return nil, err
			}
			return d, nil

		case token.EndOfDirective:
			if p.opts.RequireSemicolons && p.tok.Raw != ";" {
				return nil, &Error{Pos: p.tok.Pos, Msg: "missing ';' after directive"}
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			return d, nil

		case token.EndOfInput, token.BlockClose:
			// The enclosing block (or the document) handles these.
			if p.opts.RequireSemicolons {
				return nil, &Error{Pos: p.tok.Pos, Msg: "missing ';' after directive"}
			}
			return d, nil

		default:
			return nil, &Error{Pos: p.tok.Pos, Msg: fmt.Sprintf("unexpected %s", p.tok.Kind)}
		}
	}
}

func (p *parser) parseBlock(d *ast.Directive, depth int) error {
	openPos := p.tok.Pos
	d.HasBlock = true
	if err := p.advance(); err != nil {
		return err
	}

	for {
		switch p.tok.Kind {
		case token.BlockClose:
			return p.advance()
		case token.EndOfInput:
			return &Error{Pos: p.tok.Pos, Msg: fmt.Sprintf("missing '}' for block opened at %s", openPos)}
		case token.EndOfDirective, token.Comment, token.LineContinuation, token.ArgumentSeparator:
			if err := p.advance(); err != nil {
				return err
			}
		default:
			child, err := p.parseDirective(depth + 1)
			if err != nil {
				return err
			}
			d.Children = append(d.Children, child)
		}
	}
}

// argument converts an argument-shaped token into an AST argument.
func argument(tok token.Token) ast.Argument {
	return ast.Argument{
		Value:        tok.Value,
		Raw:          tok.Raw,
		Pos:          tok.Pos,
		Quoted:       tok.Kind == token.QuotedString,
		TripleQuoted: tok.Kind == token.TripleQuotedString,
		Expression:   tok.Expression,
	}
}
