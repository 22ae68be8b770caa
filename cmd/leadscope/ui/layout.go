package ui

// Layout constants
const (
	ViewportHorizontalPadding = 4
	ViewportVerticalPadding   = 8

	HeaderHeight = 4
	FooterHeight = 2

	// Card grid
	CardGap      = 1
	CardMinWidth = 28
	CardMaxWidth = 48

	// Dashboard
	DashboardGutter   = 2
	DashboardTwoColAt = 90

	MinimumTerminalWidth = 40
	CompactModeWidth     = 80
)

// LayoutConfig provides computed layout dimensions based on terminal size.
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size.
// A zero size (before the first WindowSizeMsg) assumes a standard 80x24.
func NewLayoutConfig(width, height int) LayoutConfig {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// ContentWidth returns the usable content width.
func (l LayoutConfig) ContentWidth() int {
	return max(l.TerminalWidth-ViewportHorizontalPadding, MinimumTerminalWidth-ViewportHorizontalPadding)
}

// ContentHeight returns the usable height for a scrolling viewport.
func (l LayoutConfig) ContentHeight() int {
	return max(l.TerminalHeight-ViewportVerticalPadding, 3)
}

// CardColumns returns how many cards fit per row (1 or 2).
func (l LayoutConfig) CardColumns() int {
	if l.IsCompact {
		return 1
	}
	return 2
}

// CardWidth returns the outer width of one card in the grid.
func (l LayoutConfig) CardWidth() int {
	cols := l.CardColumns()
	w := (l.ContentWidth() - CardGap*(cols-1)) / cols
	return min(max(w, CardMinWidth), CardMaxWidth)
}

// DashboardColumns returns the left and right column widths; right is zero
// when the dashboard should stack in one column.
func (l LayoutConfig) DashboardColumns() (left, right int) {
	w := l.ContentWidth()
	if l.TerminalWidth < DashboardTwoColAt {
		return w, 0
	}
	left = (w - DashboardGutter) / 2
	right = w - DashboardGutter - left
	return left, right
}
