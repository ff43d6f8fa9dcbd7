// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package native holds the opaque native window handles a surface widget
// hands to an engine, and the presenters that receive finished frames for
// those windows.
//
// A handle is a plain integer so it can cross any API boundary that expects a
// raw window id. The process-wide registry maps handles to presenters; an
// engine resolves the presenter when it builds a swap chain.
package native

import "fmt"

// Handle is an opaque native window handle.
// The zero value is the null handle.
type Handle uintptr

// NullHandle is the handle of no window.
const NullHandle Handle = 0

// IsNull reports whether h refers to no window.
func (h Handle) IsNull() bool {
	return h == NullHandle
}

func (h Handle) String() string {
	return fmt.Sprintf("native.Handle(%#x)", uintptr(h))
}
