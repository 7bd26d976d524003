/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"sort"
	"testing"

	"bennypowers.dev/confetti/internal/mapfs"
	"bennypowers.dev/confetti/parser"
	"bennypowers.dev/confetti/testutil"
)

func TestLoad_YAML(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/simple", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if cfg.Indent != "    " {
		t.Errorf("expected four-space indent, got %q", cfg.Indent)
	}
	if cfg.Punctuators != "=" {
		t.Errorf("expected punctuators '=', got %q", cfg.Punctuators)
	}
	if cfg.MaxDepth != 50 {
		t.Errorf("expected maxDepth 50, got %d", cfg.MaxDepth)
	}
	if !cfg.Extensions.CComments || !cfg.Extensions.TripleQuotes {
		t.Errorf("expected cComments and tripleQuotes enabled, got %+v", cfg.Extensions)
	}
	if cfg.Extensions.Bidi {
		t.Error("expected bidi to stay off")
	}

	if len(cfg.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(cfg.Files))
	}
	if cfg.Files[0].Path != "./app.conf" {
		t.Errorf("expected string file spec './app.conf', got %q", cfg.Files[0].Path)
	}
	if cfg.Files[1].Path != "./legacy.conf" || cfg.Files[1].Punctuators != ":=" {
		t.Errorf("expected object file spec with override, got %+v", cfg.Files[1])
	}
}

func TestLoad_JSONC(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/jsonc", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config, got nil")
	}

	if cfg.Indent != "\t" {
		t.Errorf("expected tab indent, got %q", cfg.Indent)
	}
	if !cfg.Extensions.ExpressionArguments {
		t.Error("expected expressionArguments enabled")
	}
	if cfg.MaxDirectives != 1000 {
		t.Errorf("expected maxDirectives 1000, got %d", cfg.MaxDirectives)
	}
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(mapfs.New(), "/project")
	if err != nil {
		t.Fatalf("missing config must not error, got %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}

	if def := LoadOrDefault(mapfs.New(), "/project"); def == nil || def.Indent != "  " {
		t.Errorf("expected defaults, got %+v", def)
	}
}

func TestParserOptions(t *testing.T) {
	cfg := Default()
	cfg.Extensions.CComments = true
	cfg.Punctuators = "="
	opts := cfg.ParserOptions()

	if !opts.AllowCComments {
		t.Error("expected AllowCComments")
	}
	if opts.Punctuators != "=" {
		t.Errorf("expected punctuators '=', got %q", opts.Punctuators)
	}
	if opts.MaxDepth != parser.DefaultMaxDepth {
		t.Errorf("expected default max depth, got %d", opts.MaxDepth)
	}

	cfg.MaxDepth = 7
	if got := cfg.ParserOptions().MaxDepth; got != 7 {
		t.Errorf("expected max depth 7, got %d", got)
	}
}

func TestOptionsForFile(t *testing.T) {
	cfg := Default()
	cfg.Punctuators = "="
	cfg.Files = []FileSpec{{Path: "special.conf", Punctuators: ":"}}

	if got := cfg.OptionsForFile("other.conf").Punctuators; got != "=" {
		t.Errorf("expected global punctuators, got %q", got)
	}
	if got := cfg.OptionsForFile("special.conf").Punctuators; got != ":" {
		t.Errorf("expected per-file punctuators, got %q", got)
	}
}

func TestExpandFiles(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/glob", "/project")

	cfg, err := Load(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	files, err := cfg.ExpandFiles(mfs, "/project")
	if err != nil {
		t.Fatalf("unexpected error expanding: %v", err)
	}

	sort.Strings(files)
	want := []string{"/project/conf.d/a.conf", "/project/conf.d/b.conf"}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("file %d: expected %q, got %q", i, want[i], files[i])
		}
	}
}
