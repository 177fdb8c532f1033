// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/screen.go
// Summary: Terminal host loop that drives a UIManager on a screen driver.

package adapter

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/core"
)

const defaultQuitKey = tcell.KeyCtrlC

// frameInterval paces recomposition. Input is handled as it arrives;
// drawing happens at most once per tick.
const frameInterval = 16 * time.Millisecond

// Host runs a core.UIManager on a terminal. A single goroutine owns
// the UI: input events, posted tasks and timer callbacks are all
// funneled into the Run loop, so widget code never needs locking of
// its own.
type Host struct {
	driver ScreenDriver
	ui     *core.UIManager

	// QuitKey ends the loop when pressed. Set before Run.
	QuitKey tcell.Key

	// OnResize, when set, runs on the UI goroutine after the screen
	// gains its initial size and on every terminal resize.
	OnResize func(w, h int)

	quit      chan struct{}
	refresh   chan bool
	tasks     chan func()
	closeOnce sync.Once
}

// NewHost wires a UIManager to a screen driver. The host installs
// itself as the manager's runner and refresh notifier.
func NewHost(driver ScreenDriver, ui *core.UIManager) *Host {
	h := &Host{
		driver:  driver,
		ui:      ui,
		QuitKey: defaultQuitKey,
		quit:    make(chan struct{}),
		refresh: make(chan bool, 1),
		tasks:   make(chan func(), 64),
	}
	ui.SetRefreshNotifier(h.refresh)
	ui.SetRunner(h.post)
	return h
}

func (h *Host) post(fn func()) {
	select {
	case h.tasks <- fn:
	case <-h.quit:
	}
}

// Run initializes the screen and blocks until Stop is called or the
// quit key is pressed.
func (h *Host) Run() error {
	if err := h.driver.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer h.driver.Fini()

	h.driver.SetStyle(tcell.StyleDefault)
	h.driver.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents | tcell.MouseMotionEvents)
	h.driver.HideCursor()

	w, ht := h.driver.Size()
	h.ui.Resize(w, ht)
	if h.OnResize != nil {
		h.OnResize(w, ht)
	}

	events := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := h.driver.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-h.quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	dirty := true
	for {
		select {
		case ev := <-events:
			h.handleEvent(ev)
			dirty = true
		case fn := <-h.tasks:
			fn()
			dirty = true
		case <-h.refresh:
			dirty = true
		case <-ticker.C:
			if dirty {
				h.draw()
				dirty = false
			}
		case <-h.quit:
			return nil
		}
	}
}

func (h *Host) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == h.QuitKey {
			h.Stop()
			return
		}
		h.ui.HandleKey(ev)
	case *tcell.EventMouse:
		h.ui.HandleMouse(ev)
	case *tcell.EventResize:
		w, ht := ev.Size()
		h.ui.Resize(w, ht)
		if h.OnResize != nil {
			h.OnResize(w, ht)
		}
		h.driver.Sync()
	}
}

func (h *Host) draw() {
	buf := h.ui.Render()
	for y, row := range buf {
		for x, cell := range row {
			h.driver.SetContent(x, y, cell.Ch, nil, cell.Style)
		}
	}
	h.driver.Show()
}

// Stop ends the run loop. Safe to call from any goroutine, any number
// of times.
func (h *Host) Stop() {
	h.closeOnce.Do(func() {
		close(h.quit)
	})
}
