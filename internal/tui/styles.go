// Package tui renders timelines in the terminal: a static report and a live
// watch mode that recomputes the snapshot on every tick.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"cantwait/internal/timeline"
)

// Semantic colors. AdaptiveColor picks the variant for light or dark terminals.
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}
)

// Styles groups the lipgloss styles used by the renderers.
type Styles struct {
	Title   lipgloss.Style
	Marker  lipgloss.Style
	Past    lipgloss.Style
	Future  lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Number  lipgloss.Style
	Pending lipgloss.Style
	Running lipgloss.Style
	Done    lipgloss.Style
}

// NewStyles returns the default styles.
func NewStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Marker:  lipgloss.NewStyle().Foreground(ColorPrimary),
		Past:    lipgloss.NewStyle().Foreground(ColorSuccess),
		Future:  lipgloss.NewStyle().Foreground(ColorPrimary),
		Error:   lipgloss.NewStyle().Foreground(ColorError),
		Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
		Number:  lipgloss.NewStyle().Bold(true),
		Pending: lipgloss.NewStyle().Foreground(ColorWarning),
		Running: lipgloss.NewStyle().Foreground(ColorPrimary),
		Done:    lipgloss.NewStyle().Foreground(ColorSuccess),
	}
}

// ForPhase returns the style used for the percentage in a given phase.
func (s Styles) ForPhase(p timeline.Phase) lipgloss.Style {
	switch p {
	case timeline.PhasePending:
		return s.Pending
	case timeline.PhaseDone:
		return s.Done
	default:
		return s.Running
	}
}

// HasColorSupport reports whether colors should be used. NO_COLOR (any
// value) and TERM=dumb disable them.
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
