package geom

import (
	"image"
	"testing"
)

func TestRectIsEmptyIsNull(t *testing.T) {
	tests := []struct {
		name      string
		r         Rect
		wantEmpty bool
		wantNull  bool
	}{
		{"zero", Rect{}, true, true},
		{"point", PointRect(Pt(3, 4)), true, true},
		{"horizontal line", RectFromPoints(Pt(0, 5), Pt(10, 5)), true, false},
		{"regular", NewRect(0, 0, 10, 10), false, false},
		{"flipped", RectFromPoints(Pt(10, 10), Pt(0, 0)), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsEmpty(); got != tt.wantEmpty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.wantEmpty)
			}
			if got := tt.r.IsNull(); got != tt.wantNull {
				t.Errorf("IsNull() = %v, want %v", got, tt.wantNull)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"null left", Rect{}, NewRect(1, 1, 2, 2), NewRect(1, 1, 2, 2)},
		{"null right", NewRect(1, 1, 2, 2), Rect{}, NewRect(1, 1, 2, 2)},
		{"line contributes", RectFromPoints(Pt(0, 5), Pt(10, 5)), NewRect(2, 2, 2, 2), RectFromPoints(Pt(0, 2), Pt(10, 5))},
		{"disjoint", NewRect(0, 0, 1, 1), NewRect(5, 5, 1, 1), NewRect(0, 0, 6, 6)},
		{"flipped is normalized", RectFromPoints(Pt(4, 4), Pt(2, 2)), NewRect(0, 0, 1, 1), NewRect(0, 0, 4, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	if got, want := a.Intersect(NewRect(5, 5, 10, 10)), NewRect(5, 5, 5, 5); got != want {
		t.Errorf("Intersect() = %v, want %v", got, want)
	}
	if got := a.Intersect(NewRect(20, 20, 5, 5)); got != (Rect{}) {
		t.Errorf("Intersect() of disjoint rects = %v, want zero Rect", got)
	}
	if a.Intersects(NewRect(10, 0, 5, 5)) {
		t.Error("rects sharing only an edge should not intersect")
	}
	if !a.Intersects(NewRect(9, 9, 5, 5)) {
		t.Error("overlapping rects should intersect")
	}
}

func TestRectBounded(t *testing.T) {
	bounds := NewRect(0, 0, 100, 100)
	tests := []struct {
		name string
		r    Rect
		want Rect
	}{
		{"inside", NewRect(10, 10, 5, 5), NewRect(10, 10, 5, 5)},
		{"left overflow", NewRect(-5, 5, 10, 10), NewRect(0, 5, 10, 10)},
		{"bottom right overflow", NewRect(90, 90, 20, 20), NewRect(80, 80, 20, 20)},
		{"larger than bounds", NewRect(-10, -10, 200, 50), NewRect(0, 0, 200, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Bounded(bounds); got != tt.want {
				t.Errorf("Bounded() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectAdjustedVisually(t *testing.T) {
	r := RectFromPoints(Pt(10, 10), Pt(0, 0))
	got := r.AdjustedVisually(-1, -1, 2, 2)
	want := RectFromPoints(Pt(12, 12), Pt(-1, -1))
	if got != want {
		t.Errorf("AdjustedVisually() = %v, want %v", got, want)
	}
}

func TestRectScaledAndAligned(t *testing.T) {
	r := NewRect(0.5, 0.5, 1, 1)
	if got, want := r.AlignedOut(), image.Rect(0, 0, 2, 2); got != want {
		t.Errorf("AlignedOut() = %v, want %v", got, want)
	}
	if got, want := r.Scaled(2), NewRect(1, 1, 2, 2); got != want {
		t.Errorf("Scaled(2) = %v, want %v", got, want)
	}
	if got := r.Scaled(1); got != r {
		t.Errorf("Scaled(1) = %v, want %v", got, r)
	}
}

func TestRectMoveCenter(t *testing.T) {
	r := NewRect(0, 0, 10, 4).MoveCenter(Pt(50, 50))
	if got, want := r, NewRect(45, 48, 10, 4); got != want {
		t.Errorf("MoveCenter() = %v, want %v", got, want)
	}
}

func TestEllipseContains(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(5, 5), true},
		{Pt(10, 5), true},
		{Pt(1, 1), false},
		{Pt(20, 20), false},
	}
	for _, tt := range tests {
		if got := EllipseContains(r, tt.p); got != tt.want {
			t.Errorf("EllipseContains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if EllipseContains(PointRect(Pt(1, 1)), Pt(1, 1)) {
		t.Error("degenerate ellipse should contain nothing")
	}
}

func TestDevicePixelRounding(t *testing.T) {
	if got := DPX(2); got != 0.5 {
		t.Errorf("DPX(2) = %v, want 0.5", got)
	}
	if got := DPRRound(1.3, 2); got != 1.5 {
		t.Errorf("DPRRound(1.3, 2) = %v, want 1.5", got)
	}
	if got := DPRCeil(1.1, 2); got != 1.5 {
		t.Errorf("DPRCeil(1.1, 2) = %v, want 1.5", got)
	}
	if got := DPRFloor(1.4, 2); got != 1 {
		t.Errorf("DPRFloor(1.4, 2) = %v, want 1", got)
	}
	if got, want := RawSize(Pt(100, 50), 1.5), image.Pt(150, 75); got != want {
		t.Errorf("RawSize() = %v, want %v", got, want)
	}
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp(5, 0, 3) = %v, want 3", got)
	}
}
