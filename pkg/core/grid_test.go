package core

import "testing"

func TestIndexPeriodic(t *testing.T) {
	sizes := [][2]int{{1, 1}, {5, 3}, {100, 70}, {7, 11}}
	for _, sz := range sizes {
		w, h := sz[0], sz[1]
		for x := -2 * w; x <= 2*w; x++ {
			for y := -2 * h; y <= 2*h; y++ {
				want := Index(x, y, w, h)
				if want < 0 || want >= w*h {
					t.Fatalf("Index(%d,%d,%d,%d)=%d out of range", x, y, w, h, want)
				}
				for k := -3; k <= 3; k++ {
					if got := Index(x+k*w, y+k*h, w, h); got != want {
						t.Fatalf("Index(%d,%d) shifted by k=%d on %dx%d = %d, want %d", x, y, k, w, h, got, want)
					}
				}
			}
		}
	}
}

func TestCoordInvertsIndex(t *testing.T) {
	w, h := 9, 4
	for x := -20; x <= 20; x++ {
		for y := -20; y <= 20; y++ {
			cx, cy := Coord(Index(x, y, w, h), w)
			if cx != Wrap(x, w) || cy != Wrap(y, h) {
				t.Fatalf("Coord(Index(%d,%d)) = (%d,%d), want (%d,%d)", x, y, cx, cy, Wrap(x, w), Wrap(y, h))
			}
		}
	}
	for i := 0; i < w*h; i++ {
		x, y := Coord(i, w)
		if Index(x, y, w, h) != i {
			t.Fatalf("Index(Coord(%d)) = %d", i, Index(x, y, w, h))
		}
	}
}

func TestWrapNegative(t *testing.T) {
	cases := []struct{ v, bound, want int }{
		{-1, 10, 9},
		{-10, 10, 0},
		{-11, 10, 9},
		{10, 10, 0},
		{23, 10, 3},
	}
	for _, c := range cases {
		if got := Wrap(c.v, c.bound); got != c.want {
			t.Errorf("Wrap(%d,%d)=%d, want %d", c.v, c.bound, got, c.want)
		}
	}
}

func TestByteGridWrapsEdges(t *testing.T) {
	g := NewByteGrid(4, 3)
	g.Set(-1, -1, 7)
	if g.At(3, 2) != 7 {
		t.Fatalf("expected (-1,-1) to alias (3,2)")
	}
	if g.Cells()[len(g.Cells())-1] != 7 {
		t.Fatalf("expected last slot to hold the wrapped value")
	}
	g.Clear()
	for i, v := range g.Cells() {
		if v != 0 {
			t.Fatalf("cell %d not cleared", i)
		}
	}
}

func TestViewByteGridSharesStorage(t *testing.T) {
	buf := make([]uint8, 6)
	g := ViewByteGrid(buf, 3, 2)
	g.Set(4, 3, 9)
	if buf[Index(1, 1, 3, 2)] != 9 {
		t.Fatalf("view did not write through: %v", buf)
	}
}
