package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/theme"
)

// Label is a static single-line text widget.
type Label struct {
	core.BaseWidget
	Text  string
	Style tcell.Style
}

// NewLabel creates a label sized to its text.
func NewLabel(text string) *Label {
	l := &Label{Text: text}

	tm := theme.Get()
	fg := tm.GetColor("ui", "text_fg", tcell.ColorWhite)
	bg := tm.GetColor("ui", "surface_bg", tcell.ColorBlack)
	l.Style = tcell.StyleDefault.Foreground(fg).Background(bg)

	l.Resize(core.TextWidth(text), 1)
	return l
}

// SetText replaces the label text.
func (l *Label) SetText(s string) {
	if s == l.Text {
		return
	}
	l.Text = s
	l.Invalidate()
}

func (l *Label) Draw(p *core.Painter) {
	p.Fill(l.Rect, ' ', l.Style)
	text := core.TruncateText(l.Text, l.Rect.W)
	p.DrawText(l.Rect.X, l.Rect.Y, text, l.Style)
}
