package core

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Painter draws into a shared cell buffer, clipped to one region.
// The UIManager hands widgets a Painter scoped to the area being
// recomposed; writes outside the clip are dropped.
type Painter struct {
	buf  [][]Cell
	clip Rect
}

// NewPainter wraps a buffer with a clip region.
func NewPainter(buf [][]Cell, clip Rect) *Painter {
	return &Painter{buf: buf, clip: clip}
}

// Clip returns the painter's clip region.
func (p *Painter) Clip() Rect { return p.clip }

// SetCell writes one cell if it falls inside the clip and the buffer.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.clip.Contains(x, y) {
		return
	}
	if y < 0 || y >= len(p.buf) {
		return
	}
	row := p.buf[y]
	if x < 0 || x >= len(row) {
		return
	}
	row[x] = Cell{Ch: ch, Style: style}
}

// Fill paints a rectangle with one rune.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			p.SetCell(x, y, ch, style)
		}
	}
}

// DrawText draws a string starting at (x, y) and returns the x after
// the last cell written. Wide runes advance two cells and blank the
// shadow cell; zero-width runes are skipped.
func (p *Painter) DrawText(x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		p.SetCell(x, y, ch, style)
		if w == 2 {
			p.SetCell(x+1, y, ' ', style)
		}
		x += w
	}
	return x
}

// TextWidth returns the number of cells a string occupies.
func TextWidth(s string) int { return runewidth.StringWidth(s) }

// TruncateText shortens a string to fit the given cell width.
func TruncateText(s string, w int) string {
	return runewidth.Truncate(s, w, "")
}
