/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"errors"
	"fmt"

	"bennypowers.dev/confetti/token"
)

// ErrResourceLimit is the sentinel matched by errors.Is for any configured
// resource limit the parser refused to exceed.
var ErrResourceLimit = errors.New("resource limit exceeded")

// Error is a structural grammar violation at a source position.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// LimitError reports input that exceeded a configured resource limit.
type LimitError struct {
	Pos   token.Position
	What  string
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: %s limit of %d exceeded", e.Pos, e.What, e.Limit)
}

func (e *LimitError) Unwrap() error {
	return ErrResourceLimit
}
