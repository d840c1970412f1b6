package tui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
)

// DefaultBarWidth is used when the terminal width is unknown.
const DefaultBarWidth = 50

// ProgressBar wraps the bubbles progress bar. It renders statically; the
// percentage is printed separately with two decimals.
type ProgressBar struct {
	bar   progress.Model
	width int
}

// NewProgressBar creates a bar of the given width, using a gradient when
// the terminal supports colors and a solid gray fill otherwise.
func NewProgressBar(width int) *ProgressBar {
	if width <= 0 {
		width = DefaultBarWidth
	}
	var bar progress.Model
	if HasColorSupport() {
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithScaledGradient("#0087AF", "#00D7FF"),
			progress.WithoutPercentage(),
		)
	} else {
		bar = progress.New(
			progress.WithWidth(width),
			progress.WithSolidFill("#808080"),
			progress.WithoutPercentage(),
		)
	}
	return &ProgressBar{bar: bar, width: width}
}

// Render returns the bar filled to ratio, clamped to [0, 1].
func (pb *ProgressBar) Render(ratio float64) string {
	return pb.bar.ViewAs(min(max(ratio, 0), 1))
}

// Width returns the bar width in cells.
func (pb *ProgressBar) Width() int {
	return pb.width
}

// SetWidth updates the bar width.
func (pb *ProgressBar) SetWidth(w int) {
	if w <= 0 {
		return
	}
	pb.width = w
	pb.bar.Width = w
}

// MarkerLine places the 1-based number of every event above a bar of the
// given width. Labels that would collide are pushed right; the line never
// exceeds width cells unless the labels alone need more room.
func MarkerLine(positions []float64, width int) string {
	if width <= 0 || len(positions) == 0 {
		return ""
	}

	line := []rune(strings.Repeat(" ", width))
	next := 0
	for i, pos := range positions {
		label := []rune(strconv.Itoa(i + 1))
		col := int(math.Round(min(max(pos, 0), 1) * float64(width-1)))
		if col+len(label) > width {
			col = width - len(label)
		}
		if col < next {
			col = next
		}
		for len(line) < col+len(label) {
			line = append(line, ' ')
		}
		copy(line[col:], label)
		next = col + len(label) + 1
	}
	return strings.TrimRight(string(line), " ")
}
