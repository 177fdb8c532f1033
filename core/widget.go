package core

import "github.com/gdamore/tcell/v2"

// Widget is the minimal contract for drawable UI elements.
type Widget interface {
	SetPosition(x, y int)
	Position() (int, int)
	Resize(w, h int)
	Size() (int, int)
	Draw(p *Painter)
	Focusable() bool
	Focus()
	Blur()
	HandleKey(ev *tcell.EventKey) bool
	HitTest(x, y int) bool
}

// MouseAware widgets consume mouse events directly. Containers forward
// press, drag, release, wheel, and motion events to them.
type MouseAware interface {
	HandleMouse(ev *tcell.EventMouse) bool
}

// HoverAware widgets are told when the pointer enters or leaves them.
// The UIManager synthesizes these from motion events.
type HoverAware interface {
	MouseEnter()
	MouseLeave()
}

// InvalidationAware widgets accept an invalidation callback to mark
// dirty regions.
type InvalidationAware interface {
	SetInvalidator(func(Rect))
}

// ParentAware widgets are handed the container they were added to.
// Sibling discovery (radio groups) walks this link.
type ParentAware interface {
	SetParent(p ChildContainer)
	Parent() ChildContainer
}

// WindowAware widgets are handed their enclosing top-level Window when
// attached to a tree, and nil when detached.
type WindowAware interface {
	SetWindow(win Window)
}

// ChildContainer allows recursive operations over widget trees without
// depending on concrete widget packages.
type ChildContainer interface {
	VisitChildren(func(Widget))
}

// HitTester allows a container to return the deepest widget under a
// point.
type HitTester interface {
	WidgetAt(x, y int) Widget
}

// FocusCycler containers can move focus among their children.
type FocusCycler interface {
	CycleFocus(forward bool) bool
}

// Disposer widgets release external bindings (timers, key listeners,
// subscriptions) when removed from a tree. Disposal is synchronous:
// no callback may fire after Dispose returns.
type Disposer interface {
	Dispose()
}

// TooltipProvider widgets expose a tooltip for hosts that surface one.
type TooltipProvider interface {
	Tooltip() string
}

// BaseWidget provides common geometry, focus, visibility, styling, and
// tree wiring for concrete widgets. The zero value is enabled, visible,
// and not focusable.
type BaseWidget struct {
	Rect      Rect
	focused   bool
	disabled  bool
	hidden    bool
	focusable bool

	focusedStyle    tcell.Style
	useFocusedStyle bool

	parent     ChildContainer
	window     Window
	invalidate func(Rect)
}

func (b *BaseWidget) SetPosition(x, y int) { b.Rect.X, b.Rect.Y = x, y }
func (b *BaseWidget) Position() (int, int) { return b.Rect.X, b.Rect.Y }

func (b *BaseWidget) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b.Rect.W, b.Rect.H = w, h
}

func (b *BaseWidget) Size() (int, int)    { return b.Rect.W, b.Rect.H }
func (b *BaseWidget) Focusable() bool     { return b.focusable && !b.disabled && !b.hidden }
func (b *BaseWidget) SetFocusable(f bool) { b.focusable = f }

func (b *BaseWidget) Focus() {
	if b.Focusable() {
		b.focused = true
	}
}

func (b *BaseWidget) Blur()           { b.focused = false }
func (b *BaseWidget) IsFocused() bool { return b.focused }

func (b *BaseWidget) Enabled() bool      { return !b.disabled }
func (b *BaseWidget) SetEnabled(on bool) { b.disabled = !on }
func (b *BaseWidget) Visible() bool      { return !b.hidden }
func (b *BaseWidget) SetVisible(on bool) { b.hidden = !on }

// SetFocusedStyle sets the style EffectiveStyle substitutes while the
// widget is focused; use toggles the substitution.
func (b *BaseWidget) SetFocusedStyle(s tcell.Style, use bool) {
	b.focusedStyle = s
	b.useFocusedStyle = use
}

// EffectiveStyle returns the focused style when the widget is focused
// and a focused style is configured, otherwise base.
func (b *BaseWidget) EffectiveStyle(base tcell.Style) tcell.Style {
	if b.focused && b.useFocusedStyle {
		return b.focusedStyle
	}
	return base
}

// HitTest reports whether the point lands on the widget. Hidden
// widgets are never hit.
func (b *BaseWidget) HitTest(x, y int) bool {
	return !b.hidden && b.Rect.Contains(x, y)
}

func (b *BaseWidget) HandleKey(ev *tcell.EventKey) bool { return false }

func (b *BaseWidget) SetParent(p ChildContainer) { b.parent = p }
func (b *BaseWidget) Parent() ChildContainer     { return b.parent }

func (b *BaseWidget) SetWindow(win Window) { b.window = win }

// Window returns the enclosing top-level window, or nil while the
// widget is detached.
func (b *BaseWidget) Window() Window { return b.window }

func (b *BaseWidget) SetInvalidator(fn func(Rect)) { b.invalidate = fn }

// Invalidate marks the widget's current bounds dirty, if an
// invalidator has been wired.
func (b *BaseWidget) Invalidate() {
	if b.invalidate != nil {
		b.invalidate(b.Rect)
	}
}
