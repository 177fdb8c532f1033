package widgets_test

import (
	"testing"

	"github.com/framegrace/texelkit/widgets"
)

func TestCheckboxClickTogglesAndFiresOnChange(t *testing.T) {
	ui, _ := newTestUI(t)
	cb := widgets.NewCheckbox("Mute")
	cb.SetPosition(1, 1)
	ui.AddWidget(cb)

	var got []bool
	cb.OnChange = func(checked bool) { got = append(got, checked) }

	clickAt(ui, 4, 1)
	clickAt(ui, 4, 1)

	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Fatalf("OnChange sequence = %v, want [true false]", got)
	}
	if cb.Checked() {
		t.Fatal("checkbox should be unchecked after two clicks")
	}
}

func TestCheckboxSetCheckedIsSilent(t *testing.T) {
	ui, _ := newTestUI(t)
	cb := widgets.NewCheckbox("Mute")
	cb.SetPosition(1, 1)
	ui.AddWidget(cb)

	fired := false
	cb.OnChange = func(bool) { fired = true }
	rec := &clickRecorder{}
	cb.AddButtonListener(rec)

	cb.SetChecked(true)
	if !cb.Checked() {
		t.Fatal("SetChecked(true) not applied")
	}
	if fired || rec.states != 0 || rec.clicks != 0 {
		t.Fatalf("SetChecked notified: fired=%v states=%d clicks=%d", fired, rec.states, rec.clicks)
	}
}

func TestCheckboxDraw(t *testing.T) {
	ui, _ := newTestUI(t)
	cb := widgets.NewCheckbox("Mute")
	cb.SetPosition(0, 0)
	ui.AddWidget(cb)

	rowText := func() string {
		buf := ui.Render()
		rs := make([]rune, 0, 10)
		for x := 0; x < 10; x++ {
			rs = append(rs, buf[0][x].Ch)
		}
		return string(rs)
	}

	if got := rowText(); got != "  [ ] Mute" {
		t.Fatalf("unchecked row = %q", got)
	}

	cb.SetChecked(true)
	if got := rowText(); got != "  [X] Mute" {
		t.Fatalf("checked row = %q", got)
	}

	ui.Focus(cb)
	if got := rowText(); got != "> [X] Mute" {
		t.Fatalf("focused row = %q", got)
	}
}

// A checkbox shares radio groups with plain buttons through the same
// toggle interface.
func TestCheckboxJoinsRadioGroup(t *testing.T) {
	ui, _ := newTestUI(t)
	cb := widgets.NewCheckbox("A")
	cb.SetPosition(1, 1)
	cb.SetRadioGroupID(5)
	ui.AddWidget(cb)

	b := widgets.NewButton("B")
	b.SetPosition(12, 1)
	b.SetClickingTogglesState(true)
	b.SetRadioGroupID(5)
	ui.AddWidget(b)

	cb.SetChecked(true)
	b.SetToggleState(true, false)
	if cb.Checked() {
		t.Fatal("turning the button on must uncheck the grouped checkbox")
	}
	if !b.ToggleState() {
		t.Fatal("button should be on")
	}
}
