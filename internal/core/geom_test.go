package core

import "testing"

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping", NewBox(0, 0, 40, 70), NewBox(20, 30, 40, 70), true},
		{"contained", NewBox(0, 0, 100, 100), NewBox(10, 10, 5, 5), true},
		{"touching horizontally", NewBox(0, 0, 40, 70), NewBox(40, 0, 40, 70), false},
		{"touching vertically", NewBox(0, 0, 40, 70), NewBox(0, 70, 40, 70), false},
		{"touching corner", NewBox(0, 0, 40, 70), NewBox(40, 70, 40, 70), false},
		{"vertical overlap only", NewBox(0, 0, 40, 70), NewBox(100, 10, 40, 70), false},
		{"horizontal overlap only", NewBox(0, 0, 40, 70), NewBox(10, 200, 40, 70), false},
		{"fractional overlap", NewBox(0, 0, 40, 70), NewBox(39.999, 69.5, 40, 70), true},
		{"above the playfield", NewBox(80, 510, 40, 70), NewBox(80, -70, 40, 70), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() reversed = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxEdges(t *testing.T) {
	b := NewBox(80, 510, 40, 70)
	if b.Right() != 120 {
		t.Errorf("Right() = %v, expected 120", b.Right())
	}
	if b.Bottom() != 580 {
		t.Errorf("Bottom() = %v, expected 580", b.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{1, 0, 2, 1},
		{-1, 0, 2, 0},
		{3, 0, 2, 2},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 7) != 3 || Min(7, 3) != 3 {
		t.Error("Min should return the smaller value")
	}
	if Max(3, 7) != 7 || Max(7, 3) != 7 {
		t.Error("Max should return the larger value")
	}
}
