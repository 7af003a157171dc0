package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 20, 20)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"origin", 0, 0, true},
		{"inside", 3, 3, true},
		{"last cell", 19, 19, true},
		{"right edge (exclusive)", 20, 4, false},
		{"bottom edge (exclusive)", 4, 20, false},
		{"negative x", -1, 4, false},
		{"negative y", 4, -1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestRectInset(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		n        int
		expected Rect
	}{
		{"border", NewRect(0, 2, 80, 22), 1, NewRect(1, 3, 78, 20)},
		{"collapses to zero", NewRect(0, 0, 1, 1), 1, NewRect(1, 1, 0, 0)},
		{"zero inset", NewRect(3, 3, 4, 4), 0, NewRect(3, 3, 4, 4)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Inset(tc.n); got != tc.expected {
				t.Errorf("Inset(%d) = %+v, expected %+v", tc.n, got, tc.expected)
			}
		})
	}

	if !NewRect(0, 0, 1, 1).Inset(1).Empty() {
		t.Error("Fully inset rect should be empty")
	}
}
