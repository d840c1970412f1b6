package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"cantwait/internal/timeline"
)

// Report is everything needed to draw a timeline once.
type Report struct {
	Title  string
	Labels []string
	State  timeline.State
	// Snapshot is only read when State is live.
	Snapshot timeline.Snapshot
}

// Renderer draws reports with a fixed set of styles and bar width.
type Renderer struct {
	styles Styles
	bar    *ProgressBar
}

// NewRenderer creates a renderer whose bar is width cells wide.
func NewRenderer(width int) *Renderer {
	return &Renderer{styles: NewStyles(), bar: NewProgressBar(width)}
}

// SetWidth resizes the progress bar.
func (r *Renderer) SetWidth(width int) {
	r.bar.SetWidth(width)
}

// Render draws the report. Invalid timelines list their errors and mark the
// offending inputs; insufficient ones ask for more events.
func (r *Renderer) Render(rep Report) string {
	var b strings.Builder
	if rep.Title != "" {
		b.WriteString(r.styles.Title.Render(rep.Title))
		b.WriteString("\n\n")
	}

	switch rep.State.Kind() {
	case timeline.Invalid:
		r.renderInvalid(&b, rep)
	case timeline.Insufficient:
		b.WriteString(r.styles.Muted.Render("Enter at least two events to start the countdown."))
		b.WriteString("\n")
	case timeline.Valid:
		r.renderSnapshot(&b, rep)
	}
	return b.String()
}

func (r *Renderer) renderInvalid(b *strings.Builder, rep Report) {
	implicated := make(map[int]bool)
	for _, idx := range rep.State.Validation().Implicated {
		implicated[idx] = true
	}

	for i, raw := range rep.State.Raw() {
		mark := " "
		if implicated[i] {
			mark = r.styles.Error.Render("✗")
		}
		fmt.Fprintf(b, "%s %s %s%s\n", mark, r.styles.Number.Render(fmt.Sprintf("%2d", i+1)), quote(raw), r.label(rep, i))
	}
	b.WriteString("\n")
	for _, msg := range rep.State.Validation().Messages() {
		b.WriteString(r.styles.Error.Render(msg))
		b.WriteString("\n")
	}
}

func (r *Renderer) renderSnapshot(b *strings.Builder, rep Report) {
	snap := rep.Snapshot

	b.WriteString(r.styles.Marker.Render(MarkerLine(snap.Markers, r.bar.Width())))
	b.WriteString("\n")
	b.WriteString(r.bar.Render(snap.Clamped()))
	b.WriteString(" ")
	b.WriteString(r.styles.ForPhase(snap.Phase()).Render(fmt.Sprintf("%.2f%%", snap.Percent())))
	b.WriteString("\n\n")

	for i, ev := range snap.Events {
		style := r.styles.Future
		if ev.Past {
			style = r.styles.Past
		}
		fmt.Fprintf(b, "%s %s%s\n",
			r.styles.Number.Render(fmt.Sprintf("%2d", ev.Number)),
			style.Render(ev.Text),
			r.label(rep, i),
		)
		fmt.Fprintf(b, "   %s\n", r.styles.Muted.Render(when(ev.At, snap.Now)))
	}
}

func (r *Renderer) label(rep Report, i int) string {
	if i >= len(rep.Labels) || rep.Labels[i] == "" {
		return ""
	}
	return " " + r.styles.Muted.Render("("+rep.Labels[i]+")")
}

// when prints the absolute time of an event and a coarse relative hint.
func when(at, now time.Time) string {
	return at.Format("2006-01-02 15:04:05 MST") + ", " + humanize.RelTime(at, now, "ago", "from now")
}

func quote(raw string) string {
	if raw == "" {
		return `""`
	}
	return raw
}
