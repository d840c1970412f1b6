package web

import (
	"fmt"
	"net/url"

	"cantwait/internal/timeline"
)

// minInputs is the number of event inputs the form always shows.
const minInputs = 2

type inputView struct {
	Number  int
	Value   string
	Invalid bool
}

type markerView struct {
	Number int
	Left   string
}

type eventView struct {
	Number int
	Text   string
	Past   bool
}

type snapshotView struct {
	Percent string
	Width   string
	Phase   string
	Markers []markerView
	Events  []eventView
}

// PageData is what the page template renders.
type PageData struct {
	Inputs    []inputView
	CanDelete bool

	Errors   []string
	Waiting  bool
	Snapshot *snapshotView

	// Query is the e=... part of the URL, used by the refresh script.
	Query     string
	RefreshMs int64
	Version   string

	// Share text: meta description when Snapshot is set (for link previews).
	ShareDescription string
}

// page builds the template data. With evaluate false only the form is
// filled; no validation runs.
func (s *Server) page(raws []string, evaluate bool) PageData {
	data := PageData{
		RefreshMs: s.refresh.Milliseconds(),
		Version:   s.version,
	}

	values := append([]string(nil), raws...)
	for len(values) < minInputs {
		values = append(values, "")
	}
	data.CanDelete = len(values) > minInputs
	for i, v := range values {
		data.Inputs = append(data.Inputs, inputView{Number: i + 1, Value: v})
	}

	if !evaluate {
		return data
	}

	state := timeline.Build(raws, s.opts...)
	switch state.Kind() {
	case timeline.Invalid:
		res := state.Validation()
		data.Errors = res.Messages()
		for _, idx := range res.Implicated {
			data.Inputs[idx].Invalid = true
		}
	case timeline.Insufficient:
		data.Waiting = true
	case timeline.Valid:
		snap, err := state.Snapshot(s.clock.Now())
		if err != nil {
			s.log.Error().Err(err).Msg("snapshot of valid timeline")
			return data
		}
		data.Snapshot = newSnapshotView(snap)
		data.Query = eventsQuery(raws)
		data.ShareDescription = fmt.Sprintf("%s of the way from event 1 to event %d.",
			data.Snapshot.Percent, len(snap.Events))
	}
	return data
}

func newSnapshotView(snap timeline.Snapshot) *snapshotView {
	v := &snapshotView{
		Percent: fmt.Sprintf("%.2f%%", snap.Percent()),
		Width:   fmt.Sprintf("%.2f", snap.Percent()),
		Phase:   phaseClass(snap.Phase()),
	}
	for i, m := range snap.Markers {
		v.Markers = append(v.Markers, markerView{Number: i + 1, Left: fmt.Sprintf("%.4f", 100*m)})
	}
	for _, ev := range snap.Events {
		v.Events = append(v.Events, eventView{Number: ev.Number, Text: ev.Text, Past: ev.Past})
	}
	return v
}

// phaseClass maps a phase to the bar colour class.
func phaseClass(p timeline.Phase) string {
	switch p {
	case timeline.PhasePending:
		return "warning"
	case timeline.PhaseDone:
		return "success"
	default:
		return "info"
	}
}

// eventsQuery encodes raws as repeated e parameters, keeping their order.
func eventsQuery(raws []string) string {
	v := url.Values{}
	for _, raw := range raws {
		v.Add("e", raw)
	}
	return v.Encode()
}

// eventsURL returns "/?e=...&e=...".
func eventsURL(raws []string) string {
	if len(raws) == 0 {
		return "/"
	}
	return "/?" + eventsQuery(raws)
}
