package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/theme"
)

// StatusBar is a one-row message strip. Each message carries a
// severity that picks its foreground color.
type StatusBar struct {
	core.BaseWidget
	Style tcell.Style

	successStyle tcell.Style
	warningStyle tcell.Style
	errorStyle   tcell.Style

	text  string
	style tcell.Style
}

// NewStatusBar creates an empty status bar.
func NewStatusBar() *StatusBar {
	s := &StatusBar{}

	tm := theme.Get()
	bg := tm.GetColor("statusbar", "bg", tcell.ColorBlack)
	fg := tm.GetColor("statusbar", "fg", tcell.ColorSilver)
	s.Style = tcell.StyleDefault.Foreground(fg).Background(bg)
	s.successStyle = tcell.StyleDefault.
		Foreground(tm.GetColor("statusbar", "success_fg", tcell.ColorGreen)).Background(bg)
	s.warningStyle = tcell.StyleDefault.
		Foreground(tm.GetColor("statusbar", "warning_fg", tcell.ColorYellow)).Background(bg)
	s.errorStyle = tcell.StyleDefault.
		Foreground(tm.GetColor("statusbar", "error_fg", tcell.ColorRed)).Background(bg)

	s.style = s.Style
	return s
}

// ShowMessage displays an informational message.
func (s *StatusBar) ShowMessage(msg string) { s.show(msg, s.Style) }

// ShowSuccess displays a success message.
func (s *StatusBar) ShowSuccess(msg string) { s.show(msg, s.successStyle) }

// ShowWarning displays a warning message.
func (s *StatusBar) ShowWarning(msg string) { s.show(msg, s.warningStyle) }

// ShowError displays an error message.
func (s *StatusBar) ShowError(msg string) { s.show(msg, s.errorStyle) }

// Clear empties the bar.
func (s *StatusBar) Clear() { s.show("", s.Style) }

// Text returns the message currently displayed.
func (s *StatusBar) Text() string { return s.text }

func (s *StatusBar) show(msg string, style tcell.Style) {
	if msg == s.text && style == s.style {
		return
	}
	s.text = msg
	s.style = style
	s.Invalidate()
}

func (s *StatusBar) Draw(p *core.Painter) {
	p.Fill(s.Rect, ' ', s.Style)
	if s.text == "" || s.Rect.H < 1 || s.Rect.W < 3 {
		return
	}
	text := core.TruncateText(s.text, s.Rect.W-2)
	p.DrawText(s.Rect.X+1, s.Rect.Y, text, s.style)
}
