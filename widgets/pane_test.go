package widgets_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/keys"
	"github.com/framegrace/texelkit/widgets"
)

func newTestPane(ui *core.UIManager, title string) *widgets.Pane {
	p := widgets.NewPane(title)
	p.SetPosition(0, 0)
	p.Resize(30, 8)
	ui.AddWidget(p)
	return p
}

func TestPaneRoutesMouseToChild(t *testing.T) {
	ui, _ := newTestUI(t)
	p := newTestPane(ui, "Pad")

	b := widgets.NewButton("OK")
	b.SetPosition(2, 2)
	p.AddChild(b)
	rec := &clickRecorder{}
	b.AddButtonListener(rec)

	clickAt(ui, 3, 2)
	if rec.clicks != 1 {
		t.Fatalf("clicks = %d, want 1", rec.clicks)
	}
}

func TestPaneChildrenShareRadioGroups(t *testing.T) {
	ui, _ := newTestUI(t)
	p := newTestPane(ui, "Pad")

	a := widgets.NewButton("A")
	a.SetPosition(2, 2)
	b := widgets.NewButton("B")
	b.SetPosition(10, 2)
	for _, x := range []*widgets.Button{a, b} {
		x.SetClickingTogglesState(true)
		x.SetRadioGroupID(1)
		p.AddChild(x)
	}

	clickAt(ui, 3, 2)
	clickAt(ui, 11, 2)
	if a.ToggleState() || !b.ToggleState() {
		t.Fatalf("group state = %v/%v, want off/on", a.ToggleState(), b.ToggleState())
	}
}

// Children added before the pane joins a window still get their window
// bindings when it does.
func TestPaneLateAttachWiresShortcuts(t *testing.T) {
	ui, _ := newTestUI(t)

	p := widgets.NewPane("Pad")
	p.SetPosition(0, 0)
	p.Resize(30, 8)
	b := widgets.NewButton("Save")
	b.SetPosition(2, 2)
	b.AddShortcut(keys.MustParse("ctrl+s"))
	p.AddChild(b)
	rec := &clickRecorder{}
	b.AddButtonListener(rec)

	ui.AddWidget(p)
	ui.HandleKey(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl))
	if rec.clicks != 1 {
		t.Fatalf("clicks = %d, want 1", rec.clicks)
	}
}

func TestPaneRemoveChildDisposes(t *testing.T) {
	ui, _ := newTestUI(t)
	p := newTestPane(ui, "Pad")

	b := widgets.NewButton("Save")
	b.SetPosition(2, 2)
	b.AddShortcut(keys.MustParse("f5"))
	p.AddChild(b)
	rec := &clickRecorder{}
	b.AddButtonListener(rec)

	p.RemoveChild(b)
	if ui.HandleKey(tcell.NewEventKey(tcell.KeyF5, 0, 0)) {
		t.Fatal("removed child still consumed its shortcut")
	}
	if rec.clicks != 0 {
		t.Fatalf("clicks = %d, want 0", rec.clicks)
	}
	if got := p.WidgetAt(3, 2); got != p {
		t.Fatalf("WidgetAt after removal = %T, want the pane", got)
	}
}

func TestPaneWidgetAtFindsDeepestChild(t *testing.T) {
	ui, _ := newTestUI(t)
	outer := newTestPane(ui, "Outer")

	inner := widgets.NewPane("Inner")
	inner.SetPosition(1, 1)
	inner.Resize(20, 5)
	outer.AddChild(inner)

	b := widgets.NewButton("OK")
	b.SetPosition(2, 3)
	inner.AddChild(b)

	if got := outer.WidgetAt(3, 3); got != core.Widget(b) {
		t.Fatalf("WidgetAt(3,3) = %T, want the button", got)
	}
	if got := outer.WidgetAt(25, 7); got != core.Widget(outer) {
		t.Fatalf("WidgetAt(25,7) = %T, want the outer pane", got)
	}
	if got := outer.WidgetAt(35, 3); got != nil {
		t.Fatalf("WidgetAt outside = %T, want nil", got)
	}
}

func TestPaneCycleFocusStopsAtBoundary(t *testing.T) {
	ui, _ := newTestUI(t)
	p := newTestPane(ui, "Pad")

	b1 := widgets.NewButton("One")
	b1.SetPosition(2, 2)
	b2 := widgets.NewButton("Two")
	b2.SetPosition(12, 2)
	p.AddChild(b1)
	p.AddChild(b2)

	if !p.CycleFocus(true) {
		t.Fatal("first forward cycle should land on the first child")
	}
	if ui.Focused() != core.Widget(b1) {
		t.Fatalf("focused = %T, want first child", ui.Focused())
	}
	if !p.CycleFocus(true) {
		t.Fatal("second forward cycle should land on the second child")
	}
	if ui.Focused() != core.Widget(b2) {
		t.Fatalf("focused = %T, want second child", ui.Focused())
	}
	if p.CycleFocus(true) {
		t.Fatal("cycling past the last child must hand off")
	}
	if !p.CycleFocus(false) {
		t.Fatal("backward cycle should land on the first child")
	}
	if ui.Focused() != core.Widget(b1) {
		t.Fatalf("focused = %T, want first child", ui.Focused())
	}
	if p.CycleFocus(false) {
		t.Fatal("cycling before the first child must hand off")
	}
}

func TestPaneDrawTitleAndChildren(t *testing.T) {
	ui, _ := newTestUI(t)
	p := newTestPane(ui, "Pad")

	b := widgets.NewButton("OK")
	b.SetPosition(2, 2)
	p.AddChild(b)

	buf := ui.Render()
	if buf[0][0].Ch != 'P' || buf[0][1].Ch != 'a' || buf[0][2].Ch != 'd' {
		t.Fatalf("title row = %q%q%q", buf[0][0].Ch, buf[0][1].Ch, buf[0][2].Ch)
	}
	if buf[2][2].Ch != '[' {
		t.Fatalf("child not drawn: %q", buf[2][2].Ch)
	}

	b.SetVisible(false)
	buf = ui.Render()
	if buf[2][2].Ch != ' ' {
		t.Fatalf("hidden child still drawn: %q", buf[2][2].Ch)
	}
}
