package core

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 2}
	cases := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 3, false},
		{2, 5, false},
		{1, 3, false},
		{2, 2, false},
	}
	for _, c := range cases {
		if got := r.Contains(c.x, c.y); got != c.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 4, H: 4}
	if !a.Overlaps(Rect{X: 3, Y: 3, W: 4, H: 4}) {
		t.Fatal("overlapping rects reported disjoint")
	}
	if a.Overlaps(Rect{X: 4, Y: 0, W: 2, H: 2}) {
		t.Fatal("edge-adjacent rects reported overlapping")
	}
	if a.Overlaps(Rect{X: 10, Y: 10, W: 2, H: 2}) {
		t.Fatal("disjoint rects reported overlapping")
	}
	if a.Overlaps(Rect{X: 1, Y: 1, W: 0, H: 5}) {
		t.Fatal("empty rect reported overlapping")
	}
}

func TestRectUnionAndIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 3, H: 3}
	b := Rect{X: 2, Y: 1, W: 4, H: 4}

	if got := a.Union(b); got != (Rect{X: 0, Y: 0, W: 6, H: 5}) {
		t.Fatalf("Union = %+v", got)
	}
	if got := a.Intersect(b); got != (Rect{X: 2, Y: 1, W: 1, H: 2}) {
		t.Fatalf("Intersect = %+v", got)
	}
	if got := a.Intersect(Rect{X: 5, Y: 5, W: 2, H: 2}); !got.Empty() {
		t.Fatalf("disjoint Intersect = %+v, want empty", got)
	}
}

func TestMergeRects(t *testing.T) {
	// Touching rects coalesce; a distant one stays separate; empties
	// are dropped.
	in := []Rect{
		{X: 0, Y: 0, W: 2, H: 2},
		{X: 2, Y: 0, W: 2, H: 2},
		{X: 10, Y: 10, W: 1, H: 1},
		{X: 5, Y: 5, W: 0, H: 3},
	}
	out := mergeRects(in)
	if len(out) != 2 {
		t.Fatalf("merged to %d rects: %+v", len(out), out)
	}
	if out[0] != (Rect{X: 0, Y: 0, W: 4, H: 2}) {
		t.Fatalf("merged rect = %+v", out[0])
	}
	if out[1] != (Rect{X: 10, Y: 10, W: 1, H: 1}) {
		t.Fatalf("distant rect = %+v", out[1])
	}
}

func TestTouchOrOverlapCorner(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 2, H: 2}
	if !touchOrOverlap(a, Rect{X: 2, Y: 2, W: 2, H: 2}) {
		t.Fatal("corner-adjacent rects should merge")
	}
	if touchOrOverlap(a, Rect{X: 3, Y: 3, W: 2, H: 2}) {
		t.Fatal("diagonal gap should not merge")
	}
}
