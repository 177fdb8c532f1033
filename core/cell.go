package core

import "github.com/gdamore/tcell/v2"

// Cell is a single screen cell: one rune plus its style.
type Cell struct {
	Ch    rune
	Style tcell.Style
}
