// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/buttonpad/app.go
// Summary: Assembles the pad UI: buttons, commands, persistence, hot reload.

package buttonpad

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/framegrace/texelkit/command"
	"github.com/framegrace/texelkit/config"
	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/keys"
	"github.com/framegrace/texelkit/widgets"
)

const appName = "buttonpad"

// App owns a pad of buttons built from a YAML definition. It registers
// the pad's commands, persists toggle state and click counts between
// runs, hot-reloads the definition when the file changes, and echoes
// button activity on a status bar.
type App struct {
	ui      *core.UIManager
	mgr     *command.Manager
	status  *widgets.StatusBar
	pane    *widgets.Pane
	store   *SessionStore
	watcher *Watcher

	cfg     *PadConfig
	entries map[string]*padEntry
	cmdIDs  []command.ID

	width, height int
}

// padEntry pairs a pad definition with the widget built from it. For
// checkboxes widget and button differ; button is the embedded core.
type padEntry struct {
	def    PadButton
	widget core.Widget
	button *widgets.Button
}

var _ widgets.ButtonListener = (*App)(nil)

// New builds the pad from the configured definition file, creating a
// starter file on first run.
func New(ui *core.UIManager) (*App, error) {
	appCfg := config.App(appName)

	dir, err := config.AppDir(appName)
	if err != nil {
		return nil, fmt.Errorf("resolve app dir: %w", err)
	}
	padPath := appCfg.GetString(appName, "pad_file", "pad.yaml")
	if !filepath.IsAbs(padPath) {
		padPath = filepath.Join(dir, padPath)
	}
	if !Exists(padPath) {
		if err := CreateDefaultPad(padPath); err != nil {
			return nil, err
		}
		log.Printf("[BUTTONPAD] wrote starter pad to %s", padPath)
	}

	watcher, err := NewWatcher(padPath)
	if err != nil {
		return nil, fmt.Errorf("load pad %s: %w", padPath, err)
	}

	a := &App{
		ui:      ui,
		mgr:     command.NewManager(),
		status:  widgets.NewStatusBar(),
		watcher: watcher,
	}

	if appCfg.GetBool(appName, "persist_state", true) {
		a.openStore()
	}

	ui.AddWidget(a.status)
	a.build(watcher.Get())

	if appCfg.GetBool(appName, "watch_pad", true) {
		watcher.OnReload(func(cfg *PadConfig) {
			ui.Post(func() { a.rebuild(cfg) })
		})
		watcher.Start()
	}

	return a, nil
}

func (a *App) openStore() {
	stateDir, err := config.StateDir()
	if err == nil {
		var store *SessionStore
		store, err = OpenSessionStore(filepath.Join(stateDir, "buttonpad.db"))
		if err == nil {
			a.store = store
			return
		}
	}
	log.Printf("[BUTTONPAD] session store unavailable, state will not persist: %v", err)
}

// Close stops the watcher, closes the command registry, and releases
// the session store.
func (a *App) Close() {
	a.watcher.Stop()
	a.mgr.Close()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Printf("[BUTTONPAD] close store: %v", err)
		}
	}
}

// CommandManager exposes the pad's command registry so hosts can bind
// their own invokers (menus, key handlers) to pad commands.
func (a *App) CommandManager() *command.Manager { return a.mgr }

// Button returns the built button for a pad definition id, nil if the
// current definition has no such button.
func (a *App) Button(id string) *widgets.Button {
	if e, ok := a.entries[id]; ok {
		return e.button
	}
	return nil
}

// Status returns the pad's status bar.
func (a *App) Status() *widgets.StatusBar { return a.status }

// Layout places the pad pane and status bar into a w by h area and
// positions every button. Call on startup and terminal resize.
func (a *App) Layout(w, h int) {
	a.width, a.height = w, h
	if w < 1 || h < 2 {
		return
	}
	a.status.SetPosition(0, h-1)
	a.status.Resize(w, 1)
	if a.pane != nil {
		a.pane.SetPosition(0, 0)
		a.pane.Resize(w, h-1)
		a.layoutPad()
	}
	a.ui.InvalidateAll()
}

func (a *App) build(cfg *PadConfig) {
	a.cfg = cfg
	a.entries = make(map[string]*padEntry)
	a.registerCommands(cfg)

	nameToID := make(map[string]command.ID, len(cfg.Commands))
	for _, c := range cfg.Commands {
		nameToID[c.Name] = command.ID(c.ID)
	}

	a.pane = widgets.NewPane(cfg.Title)
	a.ui.AddWidget(a.pane)

	for _, row := range cfg.Rows {
		for i := range row.Buttons {
			e := a.makeEntry(row.Buttons[i], nameToID)
			a.entries[e.def.ID] = e
			a.pane.AddChild(e.widget)
		}
	}

	a.restoreState()
}

// rebuild swaps the pad for a freshly loaded definition. Runs on the
// UI goroutine; removing the old pane disposes its buttons, which
// unhooks their shortcuts and command subscriptions.
func (a *App) rebuild(cfg *PadConfig) {
	if a.pane != nil {
		a.ui.RemoveWidget(a.pane)
		a.pane = nil
	}
	a.build(cfg)
	a.Layout(a.width, a.height)
	a.status.ShowSuccess("Pad reloaded")
}

// registerCommands replaces the registry contents with the commands the
// definition declares. The shortcut label on each command comes from
// the first button bound to it that has one, so auto-tooltips read
// "Save (Ctrl+S)".
func (a *App) registerCommands(cfg *PadConfig) {
	labels := make(map[string]string)
	for _, row := range cfg.Rows {
		for _, def := range row.Buttons {
			if def.Command == "" || def.Shortcut == "" {
				continue
			}
			if _, ok := labels[def.Command]; ok {
				continue
			}
			if kp, err := keys.Parse(def.Shortcut); err == nil {
				labels[def.Command] = kp.String()
			}
		}
	}

	for _, id := range a.cmdIDs {
		a.mgr.Unregister(id)
	}
	a.cmdIDs = a.cmdIDs[:0]

	for _, c := range cfg.Commands {
		info := command.Info{
			ID:            command.ID(c.ID),
			Name:          c.Name,
			Description:   c.Description,
			ShortcutLabel: labels[c.Name],
		}
		a.mgr.Register(info, func(ci command.Info) error {
			a.status.ShowSuccess("Command: " + ci.Name)
			return nil
		})
		a.cmdIDs = append(a.cmdIDs, command.ID(c.ID))
	}
}

func (a *App) makeEntry(def PadButton, nameToID map[string]command.ID) *padEntry {
	var (
		w   core.Widget
		btn *widgets.Button
	)
	if def.Kind == "checkbox" {
		cb := widgets.NewCheckbox(def.Label)
		w, btn = cb, &cb.Button
	} else {
		b := widgets.NewButton(def.Label)
		w, btn = b, b
		switch def.Kind {
		case "toggle":
			b.SetClickingTogglesState(true)
		case "radio":
			b.SetClickingTogglesState(true)
			b.SetRadioGroupID(def.Group)
		}
	}

	if def.Tooltip != "" {
		btn.SetTooltip(def.Tooltip)
	}
	if def.TriggerOnDown {
		btn.SetTriggeredOnMouseDown(true)
	}
	if def.Repeat != nil {
		btn.SetRepeatSpeed(def.Repeat.InitialMs, def.Repeat.RepeatMs, def.Repeat.MinMs)
	}
	if def.Shortcut != "" {
		// Validated at load time.
		if kp, err := keys.Parse(def.Shortcut); err == nil {
			btn.AddShortcut(kp)
		}
	}
	if flags := connectedFlags(def.Connected); flags != 0 {
		btn.SetConnectedEdges(flags)
	}
	if def.Command != "" {
		if id, ok := nameToID[def.Command]; ok {
			btn.SetCommandToTrigger(a.mgr, id, def.Tooltip == "")
		}
	}
	if def.Width > 0 {
		btn.Resize(def.Width, 1)
	}

	btn.AddButtonListener(a)
	return &padEntry{def: def, widget: w, button: btn}
}

func connectedFlags(edges []string) int {
	flags := 0
	for _, e := range edges {
		switch strings.ToLower(strings.TrimSpace(e)) {
		case "left":
			flags |= widgets.ConnectedOnLeft
		case "right":
			flags |= widgets.ConnectedOnRight
		case "top":
			flags |= widgets.ConnectedOnTop
		case "bottom":
			flags |= widgets.ConnectedOnBottom
		}
	}
	return flags
}

// restoreState replays persisted toggle values onto the new widgets and
// drops rows for buttons the definition no longer has.
func (a *App) restoreState() {
	if a.store == nil {
		return
	}
	saved, err := a.store.ToggleStates()
	if err != nil {
		log.Printf("[BUTTONPAD] restore failed: %v", err)
		return
	}
	for id, e := range a.entries {
		if saved[id] && e.button.ClickingTogglesState() {
			e.button.SetToggleState(true, false)
		}
	}

	keep := make(map[string]bool, len(a.entries))
	for id := range a.entries {
		keep[id] = true
	}
	if err := a.store.Forget(keep); err != nil {
		log.Printf("[BUTTONPAD] %v", err)
	}
}

// layoutPad positions buttons row by row under the pane title.
// Connected neighbors abut; everything else gets a one-cell gap.
func (a *App) layoutPad() {
	if a.cfg == nil || a.pane == nil {
		return
	}
	px, py := a.pane.Position()
	y := py + 2
	for _, row := range a.cfg.Rows {
		x := px + 2
		for i := range row.Buttons {
			e := a.entries[row.Buttons[i].ID]
			if e == nil {
				continue
			}
			e.widget.SetPosition(x, y)
			ew, _ := e.widget.Size()

			gap := 1
			if e.button.IsConnectedOnRight() {
				gap = 0
			} else if i+1 < len(row.Buttons) {
				if n := a.entries[row.Buttons[i+1].ID]; n != nil && n.button.IsConnectedOnLeft() {
					gap = 0
				}
			}
			x += ew + gap
		}
		y += 2
	}
}

func (a *App) entryFor(b *widgets.Button) *padEntry {
	for _, e := range a.entries {
		if e.button == b {
			return e
		}
	}
	return nil
}

// ButtonClicked persists state and echoes the click. Part of
// widgets.ButtonListener.
func (a *App) ButtonClicked(b *widgets.Button) {
	e := a.entryFor(b)
	if e == nil {
		return
	}

	if a.store != nil {
		a.persistToggles(e)
		clicks, err := a.store.RecordClick(e.def.ID)
		if err != nil {
			log.Printf("[BUTTONPAD] %v", err)
		} else {
			a.status.ShowMessage(fmt.Sprintf("%s clicked (%d total)", e.def.Label, clicks))
			return
		}
	}
	a.status.ShowMessage(fmt.Sprintf("%s clicked", e.def.Label))
}

// persistToggles saves the clicked button's toggle value. A radio click
// silently turns its group siblings off, so those rows are refreshed in
// the same pass.
func (a *App) persistToggles(clicked *padEntry) {
	if !clicked.button.ClickingTogglesState() {
		return
	}
	group := clicked.button.RadioGroupID()
	for _, e := range a.entries {
		if e != clicked {
			if group == 0 || e.button.RadioGroupID() != group {
				continue
			}
		}
		if err := a.store.SaveToggle(e.def.ID, e.button.ToggleState()); err != nil {
			log.Printf("[BUTTONPAD] %v", err)
		}
	}
}

// ButtonStateChanged echoes the hovered button's tooltip. Part of
// widgets.ButtonListener.
func (a *App) ButtonStateChanged(b *widgets.Button) {
	if b.State() != widgets.StateOver {
		return
	}
	tip := b.Tooltip()
	if tip == "" {
		tip = b.ButtonText()
	}
	a.status.ShowMessage(tip)
}
