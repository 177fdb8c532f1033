// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/button.go
// Summary: Interactive push button: press state machine, toggle/radio groups,
// auto-repeat, shortcuts, command binding, and listener notification.

package widgets

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/command"
	"github.com/framegrace/texelkit/config"
	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/keys"
	"github.com/framegrace/texelkit/theme"
)

// ButtonState describes the pointer/press visual state. It is
// independent of the toggle value.
type ButtonState int

const (
	StateNormal ButtonState = iota
	StateOver
	StateDown
)

// ButtonListener receives click and state-change notifications.
// Callbacks run on the UI goroutine, in registration order, over a
// snapshot of the listener list, so a listener may add or remove
// listeners while being notified.
type ButtonListener interface {
	ButtonClicked(b *Button)
	ButtonStateChanged(b *Button)
}

// Toggler is the capability a sibling widget exposes to take part in a
// radio group.
type Toggler interface {
	RadioGroupID() int
	ToggleState() bool
	SetToggleState(on, notify bool)
}

// Connected-edge flags: a connected side drops its end cap so adjacent
// buttons read as one segmented control.
const (
	ConnectedOnLeft   = 1
	ConnectedOnRight  = 2
	ConnectedOnTop    = 4
	ConnectedOnBottom = 8
)

// Button is an interactive push button: it tracks pointer and keyboard
// interaction as a Normal/Over/Down state machine, optionally keeps a
// persistent toggle value with radio-group exclusion among siblings,
// auto-repeats while held, and can trigger a bound command. Every
// trigger path funnels through one dispatch routine, so observers see
// one consistent click contract no matter what caused the click.
//
// Buttons are single-goroutine objects: all methods must run on the UI
// goroutine.
type Button struct {
	core.BaseWidget

	// OnClick is the overridable click hook, invoked on every click
	// dispatch with the active modifier mask.
	OnClick func(mods tcell.ModMask)

	// OnPaint replaces the default face rendering when set.
	OnPaint func(p *core.Painter, isOver, isDown bool)

	Style         tcell.Style
	OverStyle     tcell.Style
	DownStyle     tcell.Style
	OnStyle       tcell.Style
	DisabledStyle tcell.Style

	text    string
	tooltip string

	state        ButtonState
	over         bool
	needsRelease bool
	keyDown      bool
	flashOn      bool

	clickToggles   bool
	toggleOn       bool
	radioGroupID   int
	triggerOnDown  bool
	connectedEdges int

	shortcuts []keys.KeyPress

	cmdManager  *command.Manager
	cmdID       command.ID
	autoTooltip bool

	repeat     repeatConfig
	repeatTask *core.ScheduledTask
	heldMods   tcell.ModMask
	downTime   time.Time

	flashDur  time.Duration
	flashTask *core.ScheduledTask

	listeners []ButtonListener
}

var (
	_ core.Widget          = (*Button)(nil)
	_ core.MouseAware      = (*Button)(nil)
	_ core.HoverAware      = (*Button)(nil)
	_ core.KeyListener     = (*Button)(nil)
	_ core.Disposer        = (*Button)(nil)
	_ core.TooltipProvider = (*Button)(nil)
	_ command.Listener     = (*Button)(nil)
	_ Toggler              = (*Button)(nil)
)

// NewButton creates a push button with the given label, sized to fit
// the label plus end caps on a single row.
func NewButton(label string) *Button {
	b := &Button{
		text:  label,
		state: StateNormal,
	}

	tm := theme.Get()
	faceFg := tm.GetColor("button", "face_fg", tcell.ColorWhite)
	faceBg := tm.GetColor("button", "face_bg", tcell.ColorGray)
	b.Style = tcell.StyleDefault.Foreground(faceFg).Background(faceBg)
	b.OverStyle = tcell.StyleDefault.Foreground(faceFg).
		Background(tm.GetColor("button", "over_bg", faceBg))
	b.DownStyle = tcell.StyleDefault.
		Foreground(tm.GetColor("button", "down_fg", faceFg)).
		Background(tm.GetColor("button", "down_bg", faceBg))
	b.OnStyle = tcell.StyleDefault.
		Foreground(tm.GetColor("button", "toggle_on_fg", tcell.ColorGreen)).
		Background(faceBg)
	b.DisabledStyle = tcell.StyleDefault.
		Foreground(tm.GetColor("button", "disabled_fg", tcell.ColorGray)).
		Background(faceBg)

	focusFg := tm.GetColor("ui", "focus_text_fg", tcell.ColorSilver)
	focusBg := tm.GetColor("ui", "focus_surface_bg", faceBg)
	b.SetFocusedStyle(tcell.StyleDefault.Foreground(focusFg).Background(focusBg), true)

	flashMS := config.System().GetInt("button", "flash_ms", 150)
	b.flashDur = time.Duration(flashMS) * time.Millisecond

	b.SetFocusable(true)
	b.Resize(core.TextWidth(label)+4, 1)
	return b
}

// SetButtonText changes the label.
func (b *Button) SetButtonText(s string) {
	if s == b.text {
		return
	}
	b.text = s
	b.Invalidate()
}

// ButtonText returns the label.
func (b *Button) ButtonText() string { return b.text }

// IsDown reports whether the button currently shows as pressed.
func (b *Button) IsDown() bool { return b.state == StateDown }

// IsOver reports whether the pointer is over the button, pressed or
// not.
func (b *Button) IsOver() bool { return b.state != StateNormal }

// State returns the current visual state.
func (b *Button) State() ButtonState { return b.state }

func (b *Button) SetClickingTogglesState(on bool) { b.clickToggles = on }
func (b *Button) ClickingTogglesState() bool      { return b.clickToggles }

func (b *Button) SetRadioGroupID(id int) { b.radioGroupID = id }
func (b *Button) RadioGroupID() int      { return b.radioGroupID }

// SetTriggeredOnMouseDown makes clicks fire on press instead of
// release.
func (b *Button) SetTriggeredOnMouseDown(on bool) { b.triggerOnDown = on }
func (b *Button) TriggeredOnMouseDown() bool      { return b.triggerOnDown }

func (b *Button) SetConnectedEdges(flags int) {
	if flags == b.connectedEdges {
		return
	}
	b.connectedEdges = flags
	b.Invalidate()
}

func (b *Button) ConnectedEdgeFlags() int   { return b.connectedEdges }
func (b *Button) IsConnectedOnLeft() bool   { return b.connectedEdges&ConnectedOnLeft != 0 }
func (b *Button) IsConnectedOnRight() bool  { return b.connectedEdges&ConnectedOnRight != 0 }
func (b *Button) IsConnectedOnTop() bool    { return b.connectedEdges&ConnectedOnTop != 0 }
func (b *Button) IsConnectedOnBottom() bool { return b.connectedEdges&ConnectedOnBottom != 0 }

// SetTooltip sets a fixed tooltip, switching off auto-generation.
func (b *Button) SetTooltip(s string) {
	b.autoTooltip = false
	b.tooltip = s
}

// Tooltip returns the current tooltip text.
func (b *Button) Tooltip() string { return b.tooltip }

// MillisecondsSinceButtonDown reports how long ago the button last
// went down, or 0 if it never has.
func (b *Button) MillisecondsSinceButtonDown() int {
	if b.downTime.IsZero() {
		return 0
	}
	ms := core.Now().Sub(b.downTime).Milliseconds()
	if ms < 0 {
		return 0
	}
	return int(ms)
}

// AddButtonListener subscribes l. A listener already subscribed stays
// subscribed once.
func (b *Button) AddButtonListener(l ButtonListener) {
	if l == nil {
		return
	}
	for _, x := range b.listeners {
		if x == l {
			return
		}
	}
	b.listeners = append(b.listeners, l)
}

// RemoveButtonListener unsubscribes l. Unknown listeners are ignored.
func (b *Button) RemoveButtonListener(l ButtonListener) {
	for i, x := range b.listeners {
		if x == l {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

func (b *Button) snapshotListeners() []ButtonListener {
	if len(b.listeners) == 0 {
		return nil
	}
	ls := make([]ButtonListener, len(b.listeners))
	copy(ls, b.listeners)
	return ls
}

// SetToggleState changes the on/off value. Turning a grouped button on
// forces its radio siblings off first, so observers never see two
// group members on. The notify flag applies uniformly to this button
// and to every sibling forced off.
func (b *Button) SetToggleState(on, notify bool) {
	if on == b.toggleOn {
		return
	}
	if on && b.radioGroupID != 0 {
		b.turnOffGroupSiblings(notify)
	}
	b.toggleOn = on
	b.Invalidate()
	if notify {
		for _, l := range b.snapshotListeners() {
			l.ButtonStateChanged(b)
		}
	}
}

// ToggleState returns the on/off value.
func (b *Button) ToggleState() bool { return b.toggleOn }

// turnOffGroupSiblings visits the parent's children and forces other
// on members of this button's radio group off. Membership is computed
// on every call; there is no group registry. With no parent there are
// no siblings and the button acts as ungrouped. The scan runs only
// while this button is still off, so it never visits itself as an on
// member.
func (b *Button) turnOffGroupSiblings(notify bool) {
	parent := b.Parent()
	if parent == nil {
		return
	}
	parent.VisitChildren(func(w core.Widget) {
		t, ok := w.(Toggler)
		if !ok || t.RadioGroupID() != b.radioGroupID || !t.ToggleState() {
			return
		}
		t.SetToggleState(false, notify)
	})
}

// SetCommandToTrigger binds the button to a command: every click also
// invokes id on mgr, and with autoTooltip set the tooltip tracks the
// command's name and shortcut label. A nil manager or zero id clears
// the binding.
func (b *Button) SetCommandToTrigger(mgr *command.Manager, id command.ID, autoTooltip bool) {
	if mgr == nil || id == 0 {
		mgr, id = nil, 0
	}
	if b.cmdManager != nil && b.cmdManager != mgr {
		b.cmdManager.RemoveListener(b)
	}
	b.cmdManager = mgr
	b.cmdID = id
	b.autoTooltip = autoTooltip && mgr != nil
	if mgr != nil {
		mgr.AddListener(b)
		b.refreshAutoTooltip()
	}
}

// CommandID returns the bound command id, zero when unbound.
func (b *Button) CommandID() command.ID { return b.cmdID }

// commandBinding returns the live binding, or nil when unbound or the
// manager has closed.
func (b *Button) commandBinding() (*command.Manager, command.ID) {
	if b.cmdManager == nil || b.cmdID == 0 || b.cmdManager.Closed() {
		return nil, 0
	}
	return b.cmdManager, b.cmdID
}

// CommandInvoked flashes the button when its bound command fires,
// wherever the invocation came from. Part of command.Listener.
func (b *Button) CommandInvoked(info command.Info) {
	b.postOrRun(func() {
		if b.cmdID != 0 && info.ID == b.cmdID {
			b.flash()
		}
	})
}

// CommandListChanged refreshes the auto-generated tooltip. Part of
// command.Listener.
func (b *Button) CommandListChanged() {
	b.postOrRun(b.refreshAutoTooltip)
}

// postOrRun serializes manager callbacks onto the UI goroutine when a
// window is attached.
func (b *Button) postOrRun(fn func()) {
	if win := b.Window(); win != nil {
		win.Post(fn)
		return
	}
	fn()
}

func (b *Button) refreshAutoTooltip() {
	if !b.autoTooltip {
		return
	}
	mgr, id := b.commandBinding()
	if mgr == nil {
		return
	}
	info, ok := mgr.Info(id)
	if !ok {
		return
	}
	tip := info.Name
	if info.ShortcutLabel != "" {
		tip = fmt.Sprintf("%s (%s)", info.Name, info.ShortcutLabel)
	}
	b.tooltip = tip
}

// AddShortcut registers a key combination that triggers the button
// from anywhere in its window.
func (b *Button) AddShortcut(kp keys.KeyPress) {
	if kp.IsZero() {
		return
	}
	b.shortcuts = append(b.shortcuts, kp)
	if win := b.Window(); win != nil {
		win.AddKeyListener(b)
	}
}

// ClearShortcuts drops all registered shortcuts and detaches the
// button from window key routing.
func (b *Button) ClearShortcuts() {
	b.shortcuts = nil
	b.keyDown = false
	if win := b.Window(); win != nil {
		win.RemoveKeyListener(b)
	}
	b.updateState()
}

// IsRegisteredForShortcut reports exact-match membership of kp in the
// shortcut set.
func (b *Button) IsRegisteredForShortcut(kp keys.KeyPress) bool {
	for _, s := range b.shortcuts {
		if s.Equals(kp) {
			return true
		}
	}
	return false
}

// SetWindow moves the button's window bindings when it is attached,
// reparented, or detached. Scheduled tasks belong to the old window's
// scheduler and are cancelled.
func (b *Button) SetWindow(win core.Window) {
	old := b.Window()
	if old == win {
		return
	}
	if old != nil {
		old.RemoveKeyListener(b)
	}
	b.interruptGesture()
	b.BaseWidget.SetWindow(win)
	if win != nil && len(b.shortcuts) > 0 {
		win.AddKeyListener(b)
	}
	b.updateState()
}

// KeyPressed triggers the button when a registered shortcut matches.
// Part of core.KeyListener.
func (b *Button) KeyPressed(ev *tcell.EventKey) bool {
	if !b.Enabled() || !b.Visible() || b.needsRelease {
		return false
	}
	for _, kp := range b.shortcuts {
		if kp.Match(ev) {
			b.flash()
			b.dispatchClick(ev.Modifiers())
			return true
		}
	}
	return false
}

// KeyStateChanged drives the pressed visual while a shortcut key is
// physically held. It never dispatches a click; hosts that cannot
// observe key releases simply never call it. Part of
// core.KeyListener.
func (b *Button) KeyStateChanged(ks core.KeyState) bool {
	if len(b.shortcuts) == 0 {
		return false
	}
	held := false
	if b.Enabled() && b.Visible() {
		for _, kp := range b.shortcuts {
			if ks.IsKeyDown(kp) {
				held = true
				break
			}
		}
	}
	if held == b.keyDown {
		return false
	}
	b.keyDown = held
	b.updateState()
	return true
}

// HandleKey activates a focused button on space or enter.
func (b *Button) HandleKey(ev *tcell.EventKey) bool {
	if !b.Enabled() || !b.Visible() || b.needsRelease {
		return false
	}
	if ev.Rune() == ' ' || ev.Key() == tcell.KeyEnter {
		b.flash()
		b.dispatchClick(ev.Modifiers())
		return true
	}
	return false
}

// HandleMouse implements the press/drag/release gesture. The window
// forwards every event here once the button is pressed, so the release
// is seen even when it lands outside the bounds.
func (b *Button) HandleMouse(ev *tcell.EventMouse) bool {
	if !b.Enabled() || !b.Visible() {
		return false
	}
	x, y := ev.Position()
	inside := b.HitTest(x, y)
	primary := ev.Buttons()&tcell.Button1 != 0

	switch {
	case primary && !b.needsRelease && inside:
		b.needsRelease = true
		b.over = true
		b.heldMods = ev.Modifiers()
		b.downTime = core.Now()
		b.updateState()
		if b.repeat.enabled() {
			b.armRepeat()
		}
		if b.triggerOnDown {
			b.dispatchClick(ev.Modifiers())
		}
		return true

	case b.needsRelease && primary:
		if inside != b.over {
			b.over = inside
			b.updateState()
		}
		return true

	case b.needsRelease && !primary:
		b.needsRelease = false
		b.over = inside
		b.updateState()
		if inside && !b.triggerOnDown {
			b.dispatchClick(ev.Modifiers())
		}
		return true
	}
	return false
}

// MouseEnter marks the pointer inside. Part of core.HoverAware.
func (b *Button) MouseEnter() {
	if !b.Enabled() || !b.Visible() {
		return
	}
	b.over = true
	b.updateState()
}

// MouseLeave marks the pointer outside. Part of core.HoverAware.
func (b *Button) MouseLeave() {
	b.over = false
	b.updateState()
}

// Blur drops focus; an in-progress gesture is abandoned without a
// click.
func (b *Button) Blur() {
	b.BaseWidget.Blur()
	if b.needsRelease || b.keyDown || b.flashOn {
		b.interruptGesture()
	}
	b.updateState()
	b.Invalidate()
}

// SetEnabled toggles interactivity. Disabling mid-gesture abandons the
// gesture without a click; the visual state recomputes on re-enable.
func (b *Button) SetEnabled(on bool) {
	if on == b.Enabled() {
		return
	}
	b.BaseWidget.SetEnabled(on)
	if !on {
		b.interruptGesture()
	}
	b.updateState()
	b.Invalidate()
}

// SetVisible toggles visibility. Hiding mid-gesture abandons the
// gesture without a click.
func (b *Button) SetVisible(on bool) {
	if on == b.Visible() {
		return
	}
	b.BaseWidget.SetVisible(on)
	if !on {
		b.interruptGesture()
	}
	b.updateState()
	b.Invalidate()
}

// TriggerClick behaves as if the user clicked: a pressed flash plus a
// full click dispatch. It is ignored while disabled, hidden, or
// mid-gesture.
func (b *Button) TriggerClick() {
	if !b.Enabled() || !b.Visible() || b.needsRelease {
		return
	}
	b.flash()
	b.dispatchClick(0)
}

// SetRepeatSpeed configures auto-repeat in milliseconds: the delay
// before the first repeat, the spacing of subsequent repeats, and an
// optional floor the spacing accelerates toward while held. A
// non-positive initial delay disables auto-repeat and cancels any
// pending repeat.
func (b *Button) SetRepeatSpeed(initialMS, repeatMS, minMS int) {
	b.repeat = repeatConfig{
		initial: time.Duration(initialMS) * time.Millisecond,
		repeat:  time.Duration(repeatMS) * time.Millisecond,
		min:     time.Duration(minMS) * time.Millisecond,
	}
	if !b.repeat.enabled() {
		b.disarmRepeat()
	}
}

// SetState forces the visual state directly. It notifies like any
// other transition and never dispatches a click.
func (b *Button) SetState(s ButtonState) {
	b.setState(s)
}

// dispatchClick is the single convergence point for every trigger
// path: pointer, shortcut, keyboard activation, repeat timer, command,
// and TriggerClick. Order: toggle flip (silent), bound command, click
// hook, listeners.
func (b *Button) dispatchClick(mods tcell.ModMask) {
	if b.clickToggles {
		if b.radioGroupID != 0 {
			// Clicking a grouped button selects it; an already-on
			// member stays on with no redundant toggle change.
			b.SetToggleState(true, false)
		} else {
			b.SetToggleState(!b.toggleOn, false)
		}
	}
	if mgr, id := b.commandBinding(); mgr != nil {
		if err := mgr.Invoke(id); err != nil {
			log.Printf("button %q: %v", b.text, err)
		}
	}
	if b.OnClick != nil {
		b.OnClick(mods)
	}
	for _, l := range b.snapshotListeners() {
		l.ButtonClicked(b)
	}
}

func (b *Button) computeState() ButtonState {
	if !b.Enabled() || !b.Visible() {
		return StateNormal
	}
	if b.keyDown || b.flashOn || (b.needsRelease && b.over) {
		return StateDown
	}
	if b.over && !b.needsRelease {
		return StateOver
	}
	return StateNormal
}

func (b *Button) updateState() {
	b.setState(b.computeState())
}

// setState performs one state transition: notify once, repaint once,
// and keep the repeat timer pinned to the pressed state. Landing on
// the current state is a no-op.
func (b *Button) setState(s ButtonState) {
	if s == b.state {
		return
	}
	wasDown := b.state == StateDown
	b.state = s
	if wasDown {
		b.disarmRepeat()
	}
	b.Invalidate()
	for _, l := range b.snapshotListeners() {
		l.ButtonStateChanged(b)
	}
}

// flash shows the transient pressed visual for non-pointer triggers
// and schedules its relaxation.
func (b *Button) flash() {
	if b.state == StateDown {
		return
	}
	win := b.Window()
	if win == nil {
		return
	}
	b.cancelFlash()
	b.flashOn = true
	b.updateState()
	b.flashTask = win.Scheduler().Schedule(b.flashDur, func() {
		b.flashTask = nil
		b.flashOn = false
		b.updateState()
	})
}

func (b *Button) cancelFlash() {
	if b.flashTask != nil {
		b.flashTask.Cancel()
		b.flashTask = nil
	}
}

// armRepeat starts the auto-repeat chain for a fresh press.
func (b *Button) armRepeat() {
	b.disarmRepeat()
	if !b.repeat.enabled() {
		return
	}
	win := b.Window()
	if win == nil {
		return
	}
	b.repeatTask = win.Scheduler().Schedule(b.repeat.initial, b.repeatFired)
}

// repeatFired dispatches one auto-repeat click and schedules the next
// while the press is still live.
func (b *Button) repeatFired() {
	b.repeatTask = nil
	if b.state != StateDown || !b.needsRelease {
		return
	}
	b.dispatchClick(b.heldMods)
	if b.state != StateDown || !b.needsRelease || !b.repeat.enabled() {
		return
	}
	win := b.Window()
	if win == nil {
		return
	}
	held := core.Now().Sub(b.downTime)
	b.repeatTask = win.Scheduler().Schedule(b.repeat.nextInterval(held), b.repeatFired)
}

// disarmRepeat cancels the pending repeat synchronously.
func (b *Button) disarmRepeat() {
	if b.repeatTask != nil {
		b.repeatTask.Cancel()
		b.repeatTask = nil
	}
}

// interruptGesture abandons any in-progress press, keyboard hold, or
// flash without dispatching a click.
func (b *Button) interruptGesture() {
	b.needsRelease = false
	b.keyDown = false
	b.flashOn = false
	b.cancelFlash()
	b.disarmRepeat()
}

// Dispose severs every external binding: pending tasks, window key
// routing, the command subscription, and the listener list. No
// callback fires after it returns.
func (b *Button) Dispose() {
	b.interruptGesture()
	if win := b.Window(); win != nil {
		win.RemoveKeyListener(b)
	}
	if b.cmdManager != nil {
		b.cmdManager.RemoveListener(b)
		b.cmdManager = nil
		b.cmdID = 0
	}
	b.listeners = nil
}

// Draw renders via the OnPaint hook when set, else the default face.
func (b *Button) Draw(p *core.Painter) {
	if !b.Visible() {
		return
	}
	if b.OnPaint != nil {
		b.OnPaint(p, b.IsOver(), b.IsDown())
		return
	}
	b.defaultPaint(p)
}

func (b *Button) defaultPaint(p *core.Painter) {
	style := b.styleForState()
	p.Fill(b.Rect, ' ', style)
	if b.Rect.W < 2 || b.Rect.H < 1 {
		return
	}

	y := b.Rect.Y + b.Rect.H/2
	if !b.IsConnectedOnLeft() {
		p.SetCell(b.Rect.X, y, '[', style)
	}
	if !b.IsConnectedOnRight() {
		p.SetCell(b.Rect.X+b.Rect.W-1, y, ']', style)
	}

	label := core.TruncateText(b.text, b.Rect.W-2)
	lx := b.Rect.X + (b.Rect.W-core.TextWidth(label))/2
	p.DrawText(lx, y, label, style)
}

func (b *Button) styleForState() tcell.Style {
	switch {
	case !b.Enabled():
		return b.DisabledStyle
	case b.state == StateDown:
		return b.DownStyle
	case b.toggleOn:
		return b.OnStyle
	case b.state == StateOver:
		return b.OverStyle
	}
	return b.EffectiveStyle(b.Style)
}
