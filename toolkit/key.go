// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package toolkit

import "fmt"

// Key is a toolkit key code.
type Key uint16

// Key codes.
const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeySpace
	KeyTab
	KeyBackspace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyQ
	KeyF11
)

var keyNames = map[Key]string{
	KeyUnknown:   "Unknown",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeySpace:     "Space",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyQ:         "Q",
	KeyF11:       "F11",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// ParseKey returns the key with the given name, as printed by String.
func ParseKey(name string) (Key, error) {
	for k, n := range keyNames {
		if n == name {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("toolkit: unknown key %q", name)
}
