/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import "testing"

func TestPositionString(t *testing.T) {
	pos := Position{Line: 3, Column: 14, Offset: 42}
	if got := pos.String(); got != "3:14" {
		t.Errorf("expected position '3:14', got %q", got)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		EndOfInput:         "end of input",
		Word:               "word",
		QuotedString:       "quoted string",
		TripleQuotedString: "triple-quoted string",
		Punctuator:         "punctuator",
		BlockOpen:          "'{'",
		BlockClose:         "'}'",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestIsArgument(t *testing.T) {
	arguments := []Kind{Word, QuotedString, TripleQuotedString}
	for _, kind := range arguments {
		if !(Token{Kind: kind}).IsArgument() {
			t.Errorf("expected %s to be an argument", kind)
		}
	}

	structural := []Kind{EndOfInput, Punctuator, Comment, BlockOpen, BlockClose, ArgumentSeparator, LineContinuation, EndOfDirective}
	for _, kind := range structural {
		if (Token{Kind: kind}).IsArgument() {
			t.Errorf("expected %s not to be an argument", kind)
		}
	}
}
