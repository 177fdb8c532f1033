package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/theme"
)

// Pane is a rectangular container that owns child widgets: it wires
// their parent, window, and invalidation links, recurses hit-testing,
// and cycles focus among them.
type Pane struct {
	core.BaseWidget
	Title string
	Style tcell.Style

	children []core.Widget
}

var (
	_ core.Widget         = (*Pane)(nil)
	_ core.ChildContainer = (*Pane)(nil)
	_ core.HitTester      = (*Pane)(nil)
	_ core.FocusCycler    = (*Pane)(nil)
)

// NewPane creates an empty pane.
func NewPane(title string) *Pane {
	p := &Pane{Title: title}

	tm := theme.Get()
	fg := tm.GetColor("ui", "surface_fg", tcell.ColorWhite)
	bg := tm.GetColor("ui", "surface_bg", tcell.ColorBlack)
	p.Style = tcell.StyleDefault.Foreground(fg).Background(bg)
	return p
}

// AddChild appends w and wires it into the tree.
func (p *Pane) AddChild(w core.Widget) {
	p.children = append(p.children, w)
	p.wireChild(w)
	p.Invalidate()
}

// RemoveChild detaches and disposes w. Unknown widgets are ignored.
func (p *Pane) RemoveChild(w core.Widget) {
	idx := -1
	for i, c := range p.children {
		if c == w {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	p.children = append(p.children[:idx], p.children[idx+1:]...)

	if d, ok := w.(core.Disposer); ok {
		d.Dispose()
	}
	if wa, ok := w.(core.WindowAware); ok {
		wa.SetWindow(nil)
	}
	if pa, ok := w.(core.ParentAware); ok {
		pa.SetParent(nil)
	}
	if ia, ok := w.(core.InvalidationAware); ok {
		ia.SetInvalidator(nil)
	}
	p.Invalidate()
}

// Children returns the child list in z-order.
func (p *Pane) Children() []core.Widget {
	out := make([]core.Widget, len(p.children))
	copy(out, p.children)
	return out
}

func (p *Pane) wireChild(w core.Widget) {
	if pa, ok := w.(core.ParentAware); ok {
		pa.SetParent(p)
	}
	if ia, ok := w.(core.InvalidationAware); ok {
		ia.SetInvalidator(func(r core.Rect) {
			if win := p.Window(); win != nil {
				win.Invalidate(r)
			}
		})
	}
	if wa, ok := w.(core.WindowAware); ok {
		wa.SetWindow(p.Window())
	}
}

// SetWindow propagates the window link through the subtree.
func (p *Pane) SetWindow(win core.Window) {
	p.BaseWidget.SetWindow(win)
	for _, c := range p.children {
		if wa, ok := c.(core.WindowAware); ok {
			wa.SetWindow(win)
		}
	}
}

// VisitChildren implements core.ChildContainer over a snapshot, so
// callbacks may mutate the child list.
func (p *Pane) VisitChildren(fn func(core.Widget)) {
	snapshot := make([]core.Widget, len(p.children))
	copy(snapshot, p.children)
	for _, c := range snapshot {
		fn(c)
	}
}

// WidgetAt returns the deepest child under the point, or the pane
// itself when the point is inside but misses every child.
func (p *Pane) WidgetAt(x, y int) core.Widget {
	if !p.HitTest(x, y) {
		return nil
	}
	for i := len(p.children) - 1; i >= 0; i-- {
		c := p.children[i]
		if ht, ok := c.(core.HitTester); ok {
			if w := ht.WidgetAt(x, y); w != nil {
				return w
			}
		}
		if c.HitTest(x, y) {
			return c
		}
	}
	return p
}

// CycleFocus moves window focus to the next focusable child, handing
// off to the window's root cycling at the boundary.
func (p *Pane) CycleFocus(forward bool) bool {
	win := p.Window()
	if win == nil {
		return false
	}
	var focusables []core.Widget
	for _, c := range p.children {
		if c.Focusable() {
			focusables = append(focusables, c)
		}
	}
	if len(focusables) == 0 {
		return false
	}

	cur := -1
	focused := win.Focused()
	for i, c := range focusables {
		if c == focused {
			cur = i
			break
		}
	}

	var next int
	if forward {
		next = cur + 1
		if next >= len(focusables) {
			return false
		}
	} else {
		if cur < 0 {
			next = len(focusables) - 1
		} else {
			next = cur - 1
			if next < 0 {
				return false
			}
		}
	}
	win.Focus(focusables[next])
	return true
}

// Draw fills the pane, renders the title row, then the children in
// z-order.
func (p *Pane) Draw(pt *core.Painter) {
	pt.Fill(p.Rect, ' ', p.Style)
	if p.Title != "" && p.Rect.H > 0 {
		title := core.TruncateText(p.Title, p.Rect.W)
		pt.DrawText(p.Rect.X, p.Rect.Y, title, p.Style.Bold(true))
	}
	for _, c := range p.children {
		type visibler interface{ Visible() bool }
		if v, ok := c.(visibler); ok && !v.Visible() {
			continue
		}
		c.Draw(pt)
	}
}
