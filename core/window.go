package core

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/keys"
)

// KeyState answers whether a key combination is currently held.
// Terminal hosts cannot observe key releases and so never report a
// held key; richer hosts and tests can.
type KeyState interface {
	IsKeyDown(kp keys.KeyPress) bool
}

// KeyListener receives window-level keyboard events. Widgets register
// one to be reachable by shortcut from anywhere in the window.
type KeyListener interface {
	// KeyPressed sees key-down events the focused widget did not
	// consume. Return true to consume the event.
	KeyPressed(ev *tcell.EventKey) bool

	// KeyStateChanged is delivered when the window's notion of held
	// keys changes. Return true if the listener reacted. Hosts without
	// key-release information never deliver it.
	KeyStateChanged(ks KeyState) bool
}

// Window is what a top-level container offers the widgets inside it:
// window-level key routing, focus ownership, scheduling on the UI
// goroutine, and repaint requests.
type Window interface {
	AddKeyListener(l KeyListener)
	RemoveKeyListener(l KeyListener)

	// Focus moves keyboard focus to w; Focused reports the holder.
	Focus(w Widget)
	Focused() Widget

	// Scheduler delivers callbacks on the UI goroutine.
	Scheduler() Scheduler

	// Post runs fn on the UI goroutine.
	Post(fn func())

	Invalidate(r Rect)
}
