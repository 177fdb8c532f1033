// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/uimanager.go
// Summary: Top-level widget owner: z-order, focus, capture, hover, key routing, dirty-rect compose.

package core

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/theme"
)

// UIManager owns a widget tree and composes it into a cell buffer. It
// is the Window its widgets register shortcuts against: it routes
// keyboard events (focused widget, then window key listeners, then
// focus cycling), routes mouse events with capture-on-press and hover
// enter/leave synthesis, and repaints dirty regions.
//
// Locking: mu protects the tree and routing state, dirtyMu the dirty
// list and notifier. mu is released before widget handlers or
// notifications run, so handlers may call back into the manager.
type UIManager struct {
	mu      sync.Mutex
	dirtyMu sync.Mutex

	W, H    int
	widgets []Widget // z-ordered: later entries draw on top
	bgStyle tcell.Style

	notifier chan<- bool
	focused  Widget
	capture  Widget
	hovered  Widget

	keyListeners []KeyListener

	buf   [][]Cell
	dirty []Rect

	runner    func(func())
	scheduler Scheduler
}

var _ Window = (*UIManager)(nil)
var _ ChildContainer = (*UIManager)(nil)

func NewUIManager() *UIManager {
	tm := theme.Get()
	bg := tm.GetColor("ui", "surface_bg", tcell.ColorBlack)
	fg := tm.GetColor("ui", "surface_fg", tcell.ColorWhite)
	return &UIManager{
		bgStyle: tcell.StyleDefault.Background(bg).Foreground(fg),
	}
}

func (u *UIManager) SetRefreshNotifier(ch chan<- bool) {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.notifier = ch
}

func (u *UIManager) RequestRefresh() {
	u.dirtyMu.Lock()
	u.requestRefreshLocked()
	u.dirtyMu.Unlock()
}

func (u *UIManager) Resize(w, h int) {
	u.mu.Lock()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	u.W, u.H = w, h
	u.buf = nil
	u.mu.Unlock()
	u.InvalidateAll()
}

// AddWidget appends a widget on top of the z-order and wires
// invalidation, window, and parent links through its subtree.
func (u *UIManager) AddWidget(w Widget) {
	u.mu.Lock()
	u.widgets = append(u.widgets, w)
	u.mu.Unlock()

	u.attach(w, u)
	u.InvalidateAll()
}

// RemoveWidget detaches a top-level widget, disposing its subtree.
func (u *UIManager) RemoveWidget(w Widget) {
	u.mu.Lock()
	idx := -1
	for i, x := range u.widgets {
		if x == w {
			idx = i
			break
		}
	}
	if idx < 0 {
		u.mu.Unlock()
		return
	}
	u.widgets = append(u.widgets[:idx], u.widgets[idx+1:]...)
	if u.focused == w {
		u.focused = nil
	}
	if u.capture == w {
		u.capture = nil
	}
	if u.hovered == w {
		u.hovered = nil
	}
	u.mu.Unlock()

	u.detach(w)
	u.InvalidateAll()
}

func (u *UIManager) attach(w Widget, parent ChildContainer) {
	if ia, ok := w.(InvalidationAware); ok {
		ia.SetInvalidator(u.Invalidate)
	}
	if wa, ok := w.(WindowAware); ok {
		wa.SetWindow(u)
	}
	if pa, ok := w.(ParentAware); ok {
		pa.SetParent(parent)
	}
	if cc, ok := w.(ChildContainer); ok {
		cc.VisitChildren(func(child Widget) { u.attach(child, cc) })
	}
}

// detach unwinds attach depth-first. Children are disposed before
// their container so a disposer still sees its window.
func (u *UIManager) detach(w Widget) {
	if cc, ok := w.(ChildContainer); ok {
		cc.VisitChildren(func(child Widget) { u.detach(child) })
	}
	if d, ok := w.(Disposer); ok {
		d.Dispose()
	}
	if wa, ok := w.(WindowAware); ok {
		wa.SetWindow(nil)
	}
	if pa, ok := w.(ParentAware); ok {
		pa.SetParent(nil)
	}
	if ia, ok := w.(InvalidationAware); ok {
		ia.SetInvalidator(nil)
	}
}

// VisitChildren implements ChildContainer over the top-level widgets,
// letting root-level siblings coordinate (radio groups) the same way
// they would inside a container widget.
func (u *UIManager) VisitChildren(fn func(Widget)) {
	u.mu.Lock()
	snapshot := make([]Widget, len(u.widgets))
	copy(snapshot, u.widgets)
	u.mu.Unlock()
	for _, w := range snapshot {
		fn(w)
	}
}

// Focus moves keyboard focus. Non-focusable targets are ignored.
func (u *UIManager) Focus(w Widget) {
	if w == nil || !w.Focusable() {
		return
	}
	u.mu.Lock()
	if u.focused == w {
		u.mu.Unlock()
		return
	}
	prev := u.focused
	u.focused = w
	u.mu.Unlock()

	if prev != nil {
		prev.Blur()
	}
	w.Focus()
	u.InvalidateAll()
}

// Focused returns the widget holding keyboard focus, if any.
func (u *UIManager) Focused() Widget {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.focused
}

// AddKeyListener registers a window-level key listener. Adding the
// same listener twice is a no-op.
func (u *UIManager) AddKeyListener(l KeyListener) {
	if l == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, x := range u.keyListeners {
		if x == l {
			return
		}
	}
	u.keyListeners = append(u.keyListeners, l)
}

// RemoveKeyListener deregisters a key listener; unknown listeners are
// ignored.
func (u *UIManager) RemoveKeyListener(l KeyListener) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i, x := range u.keyListeners {
		if x == l {
			u.keyListeners = append(u.keyListeners[:i], u.keyListeners[i+1:]...)
			return
		}
	}
}

// SetRunner installs the host's UI-goroutine executor. The adapter
// wires its task queue here before running.
func (u *UIManager) SetRunner(run func(func())) {
	u.mu.Lock()
	u.runner = run
	u.mu.Unlock()
}

// Post runs fn on the UI goroutine. Without a host runner it runs
// inline, which suits tests and synchronous hosts.
func (u *UIManager) Post(fn func()) {
	u.mu.Lock()
	run := u.runner
	u.mu.Unlock()
	if run != nil {
		run(fn)
		return
	}
	fn()
}

// Scheduler returns the window's scheduler, created on first use as
// the real-time scheduler delivering through Post.
func (u *UIManager) Scheduler() Scheduler {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.scheduler == nil {
		u.scheduler = NewTimerScheduler(u.Post)
	}
	return u.scheduler
}

// SetScheduler replaces the scheduler; tests install the manual one.
func (u *UIManager) SetScheduler(s Scheduler) {
	u.mu.Lock()
	u.scheduler = s
	u.mu.Unlock()
}

// HandleKey routes a key event: focused widget first, then window key
// listeners in registration order, then Tab focus cycling.
func (u *UIManager) HandleKey(ev *tcell.EventKey) bool {
	u.mu.Lock()
	focused := u.focused
	listeners := make([]KeyListener, len(u.keyListeners))
	copy(listeners, u.keyListeners)
	u.mu.Unlock()

	if focused != nil && focused.HandleKey(ev) {
		u.refreshAfterInput()
		return true
	}

	for _, kl := range listeners {
		if kl.KeyPressed(ev) {
			u.refreshAfterInput()
			return true
		}
	}

	if ev.Key() == tcell.KeyTab || ev.Key() == tcell.KeyBacktab {
		forward := ev.Key() == tcell.KeyTab && ev.Modifiers()&tcell.ModShift == 0
		if u.cycleFocus(forward) {
			return true
		}
	}

	return false
}

// HandleMouse routes mouse events: capture on press, forward all
// events to the captured widget until release, wheel to the topmost
// widget, and hover enter/leave plus motion otherwise.
func (u *UIManager) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons()

	u.mu.Lock()
	captured := u.capture
	u.mu.Unlock()

	wasDown := captured != nil
	nowDown := buttons&tcell.Button1 != 0

	// Press: focus and capture the widget under the pointer.
	if !wasDown && nowDown {
		target := u.topmostAt(x, y)
		if target == nil {
			return false
		}
		u.mu.Lock()
		u.capture = target
		u.mu.Unlock()
		u.Focus(target)
		if mw, ok := target.(MouseAware); ok {
			mw.HandleMouse(ev)
		}
		u.refreshAfterInput()
		return true
	}

	// While captured, the pressed widget sees everything, including
	// drags and the release outside its bounds.
	if captured != nil {
		if mw, ok := captured.(MouseAware); ok {
			mw.HandleMouse(ev)
		}
		if wasDown && !nowDown {
			u.mu.Lock()
			u.capture = nil
			u.mu.Unlock()
		}
		u.refreshAfterInput()
		return true
	}

	// Wheel-only events go to the topmost widget under the pointer.
	if buttons&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) != 0 {
		if w := u.topmostAt(x, y); w != nil {
			if mw, ok := w.(MouseAware); ok && mw.HandleMouse(ev) {
				u.refreshAfterInput()
				return true
			}
		}
		return false
	}

	// Motion with no buttons: hover tracking.
	if buttons == tcell.ButtonNone {
		target := u.topmostAt(x, y)
		u.mu.Lock()
		prev := u.hovered
		u.hovered = target
		u.mu.Unlock()

		if prev != target {
			if ha, ok := prev.(HoverAware); ok {
				ha.MouseLeave()
			}
			if ha, ok := target.(HoverAware); ok {
				ha.MouseEnter()
			}
		}
		handled := false
		if mw, ok := target.(MouseAware); ok {
			handled = mw.HandleMouse(ev)
		}
		if prev != target || handled {
			u.RequestRefresh()
			return true
		}
	}

	return false
}

// Hovered returns the widget under the pointer from the last motion
// event, if any.
func (u *UIManager) Hovered() Widget {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hovered
}

// refreshAfterInput makes a handled input visible: widgets usually
// invalidate themselves, but if nothing was marked dirty the whole
// surface is.
func (u *UIManager) refreshAfterInput() {
	u.dirtyMu.Lock()
	if len(u.dirty) == 0 {
		u.invalidateAllLocked()
	} else {
		u.requestRefreshLocked()
	}
	u.dirtyMu.Unlock()
}

func (u *UIManager) topmostAt(x, y int) Widget {
	u.mu.Lock()
	snapshot := make([]Widget, len(u.widgets))
	copy(snapshot, u.widgets)
	u.mu.Unlock()

	for i := len(snapshot) - 1; i >= 0; i-- {
		if w := deepHit(snapshot[i], x, y); w != nil {
			return w
		}
	}
	return nil
}

func deepHit(w Widget, x, y int) Widget {
	if ht, ok := w.(HitTester); ok {
		if dw := ht.WidgetAt(x, y); dw != nil {
			return dw
		}
	}
	if w.HitTest(x, y) {
		return w
	}
	if cc, ok := w.(ChildContainer); ok {
		var res Widget
		cc.VisitChildren(func(child Widget) {
			if res != nil {
				return
			}
			if dw := deepHit(child, x, y); dw != nil {
				res = dw
			}
		})
		return res
	}
	return nil
}

func (u *UIManager) cycleFocus(forward bool) bool {
	u.mu.Lock()
	focused := u.focused
	snapshot := make([]Widget, len(u.widgets))
	copy(snapshot, u.widgets)
	u.mu.Unlock()

	// A container owning the focused widget cycles within itself first.
	if fc, ok := focused.(FocusCycler); ok && fc.CycleFocus(forward) {
		u.InvalidateAll()
		return true
	}
	for _, w := range snapshot {
		if fc, ok := w.(FocusCycler); ok && containsWidget(w, focused) {
			if fc.CycleFocus(forward) {
				u.InvalidateAll()
				return true
			}
		}
	}

	// Otherwise cycle among root widgets, descending into containers
	// that can place focus themselves.
	n := len(snapshot)
	if n == 0 {
		return false
	}
	currentIdx := -1
	for i, w := range snapshot {
		if containsWidget(w, focused) {
			currentIdx = i
			break
		}
	}
	if currentIdx < 0 {
		if forward {
			currentIdx = n - 1
		} else {
			currentIdx = 0
		}
	}
	for offset := 1; offset <= n; offset++ {
		var idx int
		if forward {
			idx = (currentIdx + offset) % n
		} else {
			idx = (currentIdx - offset + n) % n
		}
		w := snapshot[idx]
		if w.Focusable() {
			u.Focus(w)
			return true
		}
		if fc, ok := w.(FocusCycler); ok && fc.CycleFocus(forward) {
			u.InvalidateAll()
			return true
		}
	}
	return false
}

func containsWidget(w, target Widget) bool {
	if target == nil {
		return false
	}
	if w == target {
		return true
	}
	if cc, ok := w.(ChildContainer); ok {
		found := false
		cc.VisitChildren(func(child Widget) {
			if found {
				return
			}
			if containsWidget(child, target) {
				found = true
			}
		})
		return found
	}
	return false
}

// Invalidate marks a region for redraw. Thread-safe.
func (u *UIManager) Invalidate(r Rect) {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	if r.Empty() {
		return
	}
	u.dirty = append(u.dirty, r)
	u.requestRefreshLocked()
}

// InvalidateAll marks the whole surface for redraw.
func (u *UIManager) InvalidateAll() {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.invalidateAllLocked()
}

func (u *UIManager) invalidateAllLocked() {
	u.dirty = append(u.dirty, Rect{X: 0, Y: 0, W: u.W, H: u.H})
	u.requestRefreshLocked()
}

func (u *UIManager) requestRefreshLocked() {
	if u.notifier == nil {
		return
	}
	select {
	case u.notifier <- true:
	default:
	}
}

func (u *UIManager) ensureBufferLocked() {
	h, w := u.H, u.W
	if u.buf != nil && len(u.buf) == h && (h == 0 || len(u.buf[0]) == w) {
		return
	}
	u.buf = make([][]Cell, h)
	for y := 0; y < h; y++ {
		row := make([]Cell, w)
		for x := 0; x < w; x++ {
			row[x] = Cell{Ch: ' ', Style: u.bgStyle}
		}
		u.buf[y] = row
	}
}

// Render recomposes dirty regions and returns the framebuffer.
func (u *UIManager) Render() [][]Cell {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.ensureBufferLocked()

	u.dirtyMu.Lock()
	dirtyCopy := u.dirty
	u.dirty = nil
	u.dirtyMu.Unlock()

	if len(dirtyCopy) == 0 {
		full := Rect{X: 0, Y: 0, W: u.W, H: u.H}
		p := NewPainter(u.buf, full)
		p.Fill(full, ' ', u.bgStyle)
		for _, w := range u.widgets {
			u.drawWidget(w, p)
		}
		return u.buf
	}

	surface := Rect{X: 0, Y: 0, W: u.W, H: u.H}
	for _, clip := range mergeRects(dirtyCopy) {
		clip = clip.Intersect(surface)
		if clip.Empty() {
			continue
		}
		p := NewPainter(u.buf, clip)
		p.Fill(clip, ' ', u.bgStyle)
		for _, w := range u.widgets {
			wx, wy := w.Position()
			ww, wh := w.Size()
			if (Rect{X: wx, Y: wy, W: ww, H: wh}).Overlaps(clip) {
				u.drawWidget(w, p)
			}
		}
	}
	return u.buf
}

// drawWidget draws one widget, skipping hidden ones.
func (u *UIManager) drawWidget(w Widget, p *Painter) {
	type visibler interface{ Visible() bool }
	if v, ok := w.(visibler); ok && !v.Visible() {
		return
	}
	w.Draw(p)
}
