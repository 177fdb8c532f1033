package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/core"
)

// Checkbox is a toggle preset over Button that displays a checked or
// unchecked state.
// Format: [X] Label or [ ] Label
// When focused, shows a cursor: > [X] Label
type Checkbox struct {
	Button

	// OnChange fires after each click with the new checked value.
	OnChange func(checked bool)
}

var _ core.Widget = (*Checkbox)(nil)
var _ Toggler = (*Checkbox)(nil)

// NewCheckbox creates a checkbox. Width is calculated from the label.
func NewCheckbox(label string) *Checkbox {
	c := &Checkbox{Button: *NewButton(label)}
	c.SetClickingTogglesState(true)

	// Width: "> [X] " + label (includes the cursor when focused)
	c.Resize(core.TextWidth(label)+6, 1)

	c.OnClick = func(mods tcell.ModMask) {
		if c.OnChange != nil {
			c.OnChange(c.ToggleState())
		}
	}
	return c
}

// Checked reports the toggle value.
func (c *Checkbox) Checked() bool { return c.ToggleState() }

// SetChecked sets the toggle value without notifying listeners.
func (c *Checkbox) SetChecked(on bool) { c.SetToggleState(on, false) }

// Draw renders the checkbox with its current state.
func (c *Checkbox) Draw(p *core.Painter) {
	if !c.Visible() {
		return
	}
	style := c.styleForState()
	p.Fill(core.Rect{X: c.Rect.X, Y: c.Rect.Y, W: c.Rect.W, H: 1}, ' ', style)

	cursor := "  "
	if c.IsFocused() {
		cursor = "> "
	}
	check := "[ ] "
	if c.ToggleState() {
		check = "[X] "
	}
	p.DrawText(c.Rect.X, c.Rect.Y, cursor+check+c.ButtonText(), style)
}
