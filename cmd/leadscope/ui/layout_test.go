package ui

import "testing"

func TestLayoutConfig(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		cols       int
		twoColDash bool
	}{
		{"unsized", 0, 0, 2, false},
		{"compact", 60, 20, 1, false},
		{"standard", 80, 24, 2, false},
		{"wide", 140, 40, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayoutConfig(tt.w, tt.h)
			if got := l.CardColumns(); got != tt.cols {
				t.Fatalf("CardColumns() = %d, want %d", got, tt.cols)
			}
			cw := l.CardWidth()
			if cw < CardMinWidth || cw > CardMaxWidth {
				t.Fatalf("CardWidth() = %d out of range", cw)
			}
			left, right := l.DashboardColumns()
			if (right > 0) != tt.twoColDash {
				t.Fatalf("DashboardColumns() = %d,%d", left, right)
			}
			if left <= 0 {
				t.Fatalf("left column must be positive, got %d", left)
			}
		})
	}
}

func TestContentHeightFloor(t *testing.T) {
	if h := NewLayoutConfig(80, 5).ContentHeight(); h != 3 {
		t.Fatalf("ContentHeight() = %d, want 3", h)
	}
}
