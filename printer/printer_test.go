/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package printer

import (
	"reflect"
	"testing"

	"bennypowers.dev/confetti/ast"
	"bennypowers.dev/confetti/parser"
)

func mustParse(t *testing.T, src string, opts parser.Options) *ast.Document {
	t.Helper()
	doc, err := parser.Parse([]byte(src), opts)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return doc
}

// strip drops the position and raw fields so trees can be compared
// structurally.
func strip(doc *ast.Document) *ast.Document {
	out := &ast.Document{}
	for _, d := range doc.Directives {
		out.Directives = append(out.Directives, stripDirective(d))
	}
	return out
}

func stripDirective(d *ast.Directive) *ast.Directive {
	nd := &ast.Directive{
		Name:     stripArg(d.Name),
		HasBlock: d.HasBlock,
	}
	for _, a := range d.Arguments {
		nd.Arguments = append(nd.Arguments, stripArg(a))
	}
	for _, c := range d.Children {
		nd.Children = append(nd.Children, stripDirective(c))
	}
	return nd
}

func stripArg(a ast.Argument) ast.Argument {
	return ast.Argument{Value: a.Value, Quoted: a.Quoted, TripleQuoted: a.TripleQuoted}
}

func TestPrintSimple(t *testing.T) {
	doc := mustParse(t, "server localhost 8080", parser.Default())
	got := Print(doc, Options{})
	want := "server localhost 8080;\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPrintBlock(t *testing.T) {
	doc := mustParse(t, "server{host localhost;port 8080}", parser.Default())
	got := Print(doc, Options{})
	want := "server {\n  host localhost;\n  port 8080;\n}\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPrintEmptyBlock(t *testing.T) {
	doc := mustParse(t, "group { }", parser.Default())
	got := Print(doc, Options{})
	want := "group {\n}\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPrintCustomIndent(t *testing.T) {
	doc := mustParse(t, "a { b; }", parser.Default())
	got := Print(doc, Options{Indent: "\t"})
	want := "a {\n\tb;\n}\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestQuotedArgumentsSurviveQuoting(t *testing.T) {
	cases := []string{
		"empty \"\";\n",
		"spaced \"two words\";\n",
		"hash \"#nofilter\";\n",
		"semi \"a;b\";\n",
		"brace \"{x}\";\n",
		"escape \"line\\nbreak\";\n",
		"tab \"a\\tb\";\n",
	}
	for _, src := range cases {
		doc := mustParse(t, src, parser.Default())
		got := Print(doc, Options{})
		if got != src {
			t.Errorf("expected %q to print unchanged, got %q", src, got)
		}
	}
}

func TestRoundTripStability(t *testing.T) {
	sources := []string{
		"server localhost 8080;\nuser \"jane doe\";\n",
		"outer {\n  middle {\n    inner leaf;\n  }\n}\n",
		"list a b c;\nempty-block {\n}\n",
		"message \"hello\\nworld\";\n",
	}
	for _, src := range sources {
		first := mustParse(t, src, parser.Default())
		printed := Print(first, Options{})
		second := mustParse(t, printed, parser.Default())
		reprinted := Print(second, Options{})

		if printed != reprinted {
			t.Errorf("print not stable:\nfirst:  %q\nsecond: %q", printed, reprinted)
		}
		if !reflect.DeepEqual(strip(first), strip(second)) {
			t.Errorf("tree changed across round trip for %q", src)
		}
	}
}

func TestRoundTripNormalizes(t *testing.T) {
	// Comments, commas, and continuations are cosmetic and disappear.
	src := "list a, b, \\\n  c # trailing\n"
	doc := mustParse(t, src, parser.Default())
	got := Print(doc, Options{})
	want := "list a b c;\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTripleQuoteOutput(t *testing.T) {
	doc := &ast.Document{Directives: []*ast.Directive{{
		Name:      ast.Argument{Value: "motd"},
		Arguments: []ast.Argument{{Value: "line one\nline two", Quoted: true}},
	}}}

	plain := Print(doc, Options{})
	if plain != "motd \"line one\\nline two\";\n" {
		t.Errorf("expected escaped newline, got %q", plain)
	}

	triple := Print(doc, Options{TripleQuotes: true})
	if triple != "motd \"\"\"line one\nline two\"\"\";\n" {
		t.Errorf("expected triple-quoted output, got %q", triple)
	}
}

func TestTripleQuoteOutputEscapesQuotes(t *testing.T) {
	// Embedded quotes are escaped so the value cannot collide with the
	// closing delimiter.
	doc := &ast.Document{Directives: []*ast.Directive{{
		Name:      ast.Argument{Value: "motd"},
		Arguments: []ast.Argument{{Value: "say \"hi\"\nbye", Quoted: true}},
	}}}
	got := Print(doc, Options{TripleQuotes: true})
	want := "motd \"\"\"say \\\"hi\\\"\nbye\"\"\";\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	reparsed, err := parser.Parse([]byte(got), parser.Options{AllowTripleQuotes: true, MaxDepth: parser.DefaultMaxDepth})
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if v := reparsed.Directives[0].Arg(0); v != "say \"hi\"\nbye" {
		t.Errorf("round trip through triple quotes changed value: %q", v)
	}
}

func TestPrintDirective(t *testing.T) {
	d := ast.New("host", "localhost")
	if got := PrintDirective(d, Options{}); got != "host localhost;\n" {
		t.Errorf("expected 'host localhost;', got %q", got)
	}
}

func TestTripleQuoteOutputEscapesTerminators(t *testing.T) {
	// Every line terminator inside a triple-quoted string decodes to '\n',
	// so CR, FF, and VT must leave as escapes or a reparse rewrites them.
	doc := &ast.Document{Directives: []*ast.Directive{{
		Name:      ast.Argument{Value: "banner"},
		Arguments: []ast.Argument{{Value: "x\fy\rmid\vend\nlast", Quoted: true}},
	}}}

	got := Print(doc, Options{TripleQuotes: true})
	want := "banner \"\"\"x\\fy\\rmid\\vend\nlast\"\"\";\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	opts := parser.Options{AllowTripleQuotes: true}
	reparsed, err := parser.Parse([]byte(got), opts)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if v := reparsed.Directives[0].Arg(0); v != "x\fy\rmid\vend\nlast" {
		t.Errorf("round trip changed value: %q", v)
	}
	if reprinted := Print(reparsed, Options{TripleQuotes: true}); reprinted != got {
		t.Errorf("print not stable:\nfirst:  %q\nsecond: %q", got, reprinted)
	}
}
