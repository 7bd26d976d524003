/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package printer

import (
	"testing"

	"bennypowers.dev/confetti/parser"
	"bennypowers.dev/confetti/testutil"
)

func TestGoldenFormat(t *testing.T) {
	input := testutil.LoadFixtureFile(t, "golden/server.conf")

	doc, err := parser.Parse(input, parser.Default())
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	got := Print(doc, Options{})

	testutil.UpdateGoldenFile(t, "golden/server.golden", []byte(got))
	want := testutil.LoadFixtureFile(t, "golden/server.golden")
	if got != string(want) {
		t.Errorf("formatted output diverges from golden file:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
