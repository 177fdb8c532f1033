// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/host_test.go
// Summary: Exercises the terminal host loop on a simulation screen.
// Usage: Executed during `go test` to guard against regressions.

package adapter_test

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/adapter"
	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/keys"
	"github.com/framegrace/texelkit/widgets"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", msg)
}

func TestHostRunHandlesInputAndShutdown(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	ui := core.NewUIManager()

	clicks := make(chan struct{}, 8)
	btn := widgets.NewButton("OK")
	btn.SetPosition(1, 1)
	btn.AddShortcut(keys.MustParse("f5"))
	btn.OnClick = func(tcell.ModMask) { clicks <- struct{}{} }
	ui.AddWidget(btn)

	host := adapter.NewHost(adapter.NewTcellScreenDriver(screen), ui)
	resized := make(chan [2]int, 4)
	host.OnResize = func(w, h int) { resized <- [2]int{w, h} }

	errCh := make(chan error, 1)
	go func() { errCh <- host.Run() }()

	// Simulation screens come up 80x24.
	select {
	case wh := <-resized:
		if wh[0] != 80 || wh[1] != 24 {
			t.Errorf("initial size = %dx%d, want 80x24", wh[0], wh[1])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("host never reported its initial size")
	}

	// The frame ticker should get the button onto the screen.
	waitFor(t, func() bool {
		cells, w, _ := screen.GetContents()
		if w < 1 || len(cells) <= w+1 {
			return false
		}
		c := cells[w+1]
		return len(c.Runes) > 0 && c.Runes[0] == '['
	}, "initial draw")

	// Shortcut key routed through the event loop.
	screen.PostEvent(tcell.NewEventKey(tcell.KeyF5, 0, 0))
	select {
	case <-clicks:
	case <-time.After(2 * time.Second):
		t.Fatal("shortcut never clicked the button")
	}

	// Mouse press and release on the button.
	screen.PostEvent(tcell.NewEventMouse(2, 1, tcell.Button1, 0))
	screen.PostEvent(tcell.NewEventMouse(2, 1, tcell.ButtonNone, 0))
	select {
	case <-clicks:
	case <-time.After(2 * time.Second):
		t.Fatal("mouse click never reached the button")
	}

	// Terminal resize reaches the OnResize hook.
	screen.PostEvent(tcell.NewEventResize(50, 12))
	waitFor(t, func() bool {
		select {
		case wh := <-resized:
			return wh[0] == 50 && wh[1] == 12
		default:
			return false
		}
	}, "resize event to be handled")

	// Exit via the quit key.
	screen.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, 0))
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not exit after Ctrl-C")
	}
}

func TestHostStopFromAnotherGoroutine(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	ui := core.NewUIManager()
	host := adapter.NewHost(adapter.NewTcellScreenDriver(screen), ui)

	started := make(chan struct{}, 4)
	host.OnResize = func(int, int) {
		select {
		case started <- struct{}{}:
		default:
		}
	}

	errCh := make(chan error, 1)
	go func() { errCh <- host.Run() }()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("host never started")
	}

	host.Stop()
	host.Stop() // idempotent

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not exit after Stop")
	}
}

func TestHostPostRunsOnUIThread(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	ui := core.NewUIManager()
	host := adapter.NewHost(adapter.NewTcellScreenDriver(screen), ui)

	errCh := make(chan error, 1)
	go func() { errCh <- host.Run() }()

	ran := make(chan struct{})
	ui.Post(func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("posted task never ran")
	}

	host.Stop()
	<-errCh
}
