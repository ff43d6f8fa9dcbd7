// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package toolkit

import (
	"fmt"
	"image"
)

// EventType identifies an event kind.
type EventType uint8

// Event types.
const (
	EventPaint EventType = iota + 1
	EventUpdateRequest
	EventResize
	EventShow
	EventHide
	EventKey
	EventClose
)

var eventNames = [...]string{
	EventPaint:         "Paint",
	EventUpdateRequest: "UpdateRequest",
	EventResize:        "Resize",
	EventShow:          "Show",
	EventHide:          "Hide",
	EventKey:           "Key",
	EventClose:         "Close",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) && eventNames[t] != "" {
		return eventNames[t]
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// Event is something delivered to a Receiver by the Loop.
type Event interface {
	Type() EventType
}

// PaintEvent asks a widget to repaint.
type PaintEvent struct{}

// UpdateRequestEvent is the deferred request a widget posts to itself to
// draw on a later loop iteration.
type UpdateRequestEvent struct{}

// ResizeEvent reports a geometry change. Size may be negative when a host
// reports an invalid geometry.
type ResizeEvent struct {
	Size    image.Point
	OldSize image.Point
}

// ShowEvent is sent when a widget becomes visible.
type ShowEvent struct{}

// HideEvent is sent when a widget is hidden.
type HideEvent struct{}

// KeyEvent reports a key press.
type KeyEvent struct {
	Key Key
}

// CloseEvent is sent to a window that is about to close.
type CloseEvent struct{}

func (PaintEvent) Type() EventType         { return EventPaint }
func (UpdateRequestEvent) Type() EventType { return EventUpdateRequest }
func (ResizeEvent) Type() EventType        { return EventResize }
func (ShowEvent) Type() EventType          { return EventShow }
func (HideEvent) Type() EventType          { return EventHide }
func (KeyEvent) Type() EventType           { return EventKey }
func (CloseEvent) Type() EventType         { return EventClose }

// Shrunk reports whether the new size is smaller than the old one in
// either dimension.
func (e ResizeEvent) Shrunk() bool {
	return e.Size.X < e.OldSize.X || e.Size.Y < e.OldSize.Y
}

// Grew reports whether the new size is larger in either dimension.
func (e ResizeEvent) Grew() bool {
	return e.Size.X > e.OldSize.X || e.Size.Y > e.OldSize.Y
}

// Receiver handles events. HandleEvent returns false to request the
// receiver's default handling.
type Receiver interface {
	HandleEvent(ev Event) bool
}

// ReceiverFunc adapts a function to Receiver.
type ReceiverFunc func(ev Event) bool

// HandleEvent implements Receiver.
func (f ReceiverFunc) HandleEvent(ev Event) bool {
	return f(ev)
}
