/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load provides a high-level API for reading and writing Confetti
// documents on a filesystem.
package load

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"bennypowers.dev/confetti/ast"
	confettifs "bennypowers.dev/confetti/fs"
	"bennypowers.dev/confetti/parser"
	"bennypowers.dev/confetti/printer"
)

// IOError reports a filesystem failure while loading or saving a document.
// Parse failures are reported as *parser.Error or *lexer.Error, never as
// IOError.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Options configures loading and saving.
type Options struct {
	// FS is the filesystem to use. Defaults to the OS filesystem if nil.
	FS confettifs.FileSystem

	// Parser is applied when parsing loaded files.
	Parser parser.Options

	// Printer is applied when saving documents.
	Printer printer.Options
}

func (o Options) filesystem() confettifs.FileSystem {
	if o.FS == nil {
		return confettifs.NewOSFileSystem()
	}
	return o.FS
}

// File reads and parses the named file. The path "-" reads from stdin.
func File(path string, opts Options) (*ast.Document, error) {
	data, err := read(path, opts)
	if err != nil {
		return nil, err
	}
	return parser.Parse(data, opts.Parser)
}

// Save renders doc and writes it to the named file, creating parent
// directories as needed. The path "-" writes to stdout.
func Save(path string, doc *ast.Document, opts Options) error {
	text := printer.Print(doc, opts.Printer)
	if path == "-" {
		_, err := io.WriteString(os.Stdout, text)
		return err
	}

	filesystem := opts.filesystem()
	if dir := filepath.Dir(path); dir != "." {
		if err := filesystem.MkdirAll(dir, 0755); err != nil {
			return &IOError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	if err := filesystem.WriteFile(path, []byte(text), 0644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Format reads, parses, and rewrites the named file in canonical form. It
// reports whether the file changed. The file is left untouched when its
// content is already canonical.
func Format(path string, opts Options) (bool, error) {
	data, err := read(path, opts)
	if err != nil {
		return false, err
	}
	doc, err := parser.Parse(data, opts.Parser)
	if err != nil {
		return false, err
	}
	formatted := []byte(printer.Print(doc, opts.Printer))
	if bytes.Equal(data, formatted) {
		return false, nil
	}
	if err := opts.filesystem().WriteFile(path, formatted, 0644); err != nil {
		return false, &IOError{Op: "write", Path: path, Err: err}
	}
	return true, nil
}

func read(path string, opts Options) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, &IOError{Op: "read", Path: "stdin", Err: err}
		}
		return data, nil
	}
	data, err := opts.filesystem().ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}
