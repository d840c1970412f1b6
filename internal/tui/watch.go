package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cantwait/internal/clock"
	"cantwait/internal/timeline"
)

// WatchConfig holds configuration for watch mode.
type WatchConfig struct {
	// Interval is the time between two snapshots.
	Interval time.Duration
	// Clock supplies "now" on every tick.
	Clock clock.Clock
	// Title and Labels decorate the report.
	Title  string
	Labels []string
	// Width is the initial bar width, before the terminal reports its size.
	Width int
}

// DefaultWatchConfig returns the default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Interval: time.Second,
		Clock:    clock.RealClock{},
		Width:    DefaultBarWidth,
	}
}

// TickMsg signals time for a new snapshot.
type TickMsg time.Time

// WatchModel is the Bubble Tea model for watch mode. The ticker that drives
// it belongs to the Bubble Tea runtime; the model only reacts to TickMsg.
type WatchModel struct {
	state    timeline.State
	config   WatchConfig
	renderer *Renderer

	snap       timeline.Snapshot
	lastUpdate time.Time
	err        error
	quitting   bool
}

// NewWatchModel creates a model for a live timeline.
func NewWatchModel(state timeline.State, cfg WatchConfig) *WatchModel {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	return &WatchModel{
		state:    state,
		config:   cfg,
		renderer: NewRenderer(cfg.Width),
	}
}

// Init computes the first snapshot right away instead of waiting a full
// interval.
func (m *WatchModel) Init() tea.Cmd {
	return func() tea.Msg {
		return TickMsg(m.config.Clock.Now())
	}
}

// Update handles messages and returns the updated model and any commands.
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		// Leave room for the percentage after the bar.
		m.renderer.SetWidth(msg.Width - 10)
		return m, nil

	case TickMsg:
		m.refresh()
		return m, m.tick()
	}

	return m, nil
}

// View renders the current snapshot.
func (m *WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderer.Render(Report{
		Title:    m.config.Title,
		Labels:   m.config.Labels,
		State:    m.state,
		Snapshot: m.snap,
	}))
	if m.err != nil {
		fmt.Fprintf(&b, "\nError: %v\n", m.err)
	}
	if !m.lastUpdate.IsZero() {
		fmt.Fprintf(&b, "\nLast updated: %s", m.lastUpdate.Format("15:04:05"))
	}
	b.WriteString("\nPress 'q' to quit")
	return b.String()
}

// Snapshot returns the latest snapshot (useful for testing).
func (m *WatchModel) Snapshot() timeline.Snapshot {
	return m.snap
}

// LastUpdate returns the instant of the latest snapshot.
func (m *WatchModel) LastUpdate() time.Time {
	return m.lastUpdate
}

// IsQuitting returns true if the model is in quitting state.
func (m *WatchModel) IsQuitting() bool {
	return m.quitting
}

func (m *WatchModel) refresh() {
	now := m.config.Clock.Now()
	snap, err := m.state.Snapshot(now)
	m.err = err
	if err == nil {
		m.snap = snap
	}
	m.lastUpdate = now
}

func (m *WatchModel) tick() tea.Cmd {
	return tea.Tick(m.config.Interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Watch runs the live view until the user quits or ctx is cancelled.
func Watch(ctx context.Context, state timeline.State, cfg WatchConfig, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(
		NewWatchModel(state, cfg),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
