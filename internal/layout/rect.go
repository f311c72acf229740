package layout

// Rect is an axis-aligned screen region in pixel video space.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Area returns the covered area in square pixels.
func (r Rect) Area() int {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Center returns the midpoint of the rect.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// ContainsPoint reports whether (x, y) lies inside the rect.
func (r Rect) ContainsPoint(x, y int) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Overlaps reports whether two rects intersect with positive area.
// Degenerate rects and rects that merely share an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	if r.Area() == 0 || other.Area() == 0 {
		return false
	}
	return r.X < other.X+other.Width &&
		other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height &&
		other.Y < r.Y+r.Height
}

// Pair identifies two overlapping rects by their indices, A < B.
type Pair struct {
	A int
	B int
}

// CheckAll returns every pairwise overlap among rects, each unordered
// pair reported once. The input is never modified.
func CheckAll(rects []Rect) []Pair {
	var pairs []Pair
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Overlaps(rects[j]) {
				pairs = append(pairs, Pair{A: i, B: j})
			}
		}
	}
	return pairs
}
