package timeline

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cantwait/internal/errors"
	"cantwait/internal/event"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuild_Valid(t *testing.T) {
	t.Parallel()

	state := Build([]string{"2013-01-01", "2015-01-01"}, WithLocation(time.UTC))
	require.Equal(t, Valid, state.Kind())
	assert.True(t, state.Live())
	assert.True(t, state.Validation().Valid())

	snap, err := state.Snapshot(date("2014-01-01"))
	require.NoError(t, err)

	assert.Greater(t, snap.Ratio, 0.0)
	assert.Less(t, snap.Ratio, 1.0)
	assert.InDelta(t, 0.5, snap.Ratio, 0.001)
	assert.Equal(t, []float64{0, 1}, snap.Markers)

	require.Len(t, snap.Events, 2)
	assert.True(t, snap.Events[0].Past)
	assert.Contains(t, snap.Events[0].Text, "ago")
	assert.Equal(t, "happened 52 weeks, 1 day, 0 hours, 0 minutes and 0 seconds ago", snap.Events[0].Text)
	assert.False(t, snap.Events[1].Past)
	assert.True(t, strings.HasPrefix(snap.Events[1].Text, "will happen in"))
	assert.Equal(t, 1, snap.Events[0].Number)
	assert.Equal(t, 2, snap.Events[1].Number)
	assert.Equal(t, int64(365*24*3600), snap.Events[1].Seconds)
	assert.Equal(t, PhaseRunning, snap.Phase())
}

func TestBuild_InvalidDate(t *testing.T) {
	t.Parallel()

	state := Build([]string{"bad-date", "2015-01-01"})
	require.Equal(t, Invalid, state.Kind())
	assert.False(t, state.Live())

	res := state.Validation()
	assert.Equal(t, []event.ValidationError{{Kind: event.InvalidDate, Index: 0}}, res.Errors)
	assert.Equal(t, []int{0}, res.Implicated)
}

func TestBuild_OutOfOrder(t *testing.T) {
	t.Parallel()

	state := Build([]string{"2015-01-01", "2013-01-01"})
	require.Equal(t, Invalid, state.Kind())

	res := state.Validation()
	assert.Equal(t, []event.ValidationError{{Kind: event.OutOfOrder, Index: 0, NextIndex: 1}}, res.Errors)
	assert.Equal(t, []int{0, 1}, res.Implicated)
}

func TestBuild_Insufficient(t *testing.T) {
	t.Parallel()

	for _, raws := range [][]string{nil, {}, {"2015-01-01"}} {
		state := Build(raws)
		assert.Equal(t, Insufficient, state.Kind())
		assert.True(t, state.Validation().Valid())
	}

	// A lone invalid entry is an error, not an insufficient timeline.
	assert.Equal(t, Invalid, Build([]string{""}).Kind())
}

func TestBuild_EqualTimestamps(t *testing.T) {
	t.Parallel()

	raws := []string{"2015-01-01", "2015-01-01"}
	assert.Equal(t, Invalid, Build(raws).Kind())

	// Allowed, but with no span there is nothing to measure.
	assert.Equal(t, Insufficient, Build(raws, WithOrdering(event.AllowEqual)).Kind())

	state := Build([]string{"2013-01-01", "2014-01-01", "2014-01-01", "2015-01-01"},
		WithOrdering(event.AllowEqual), WithLocation(time.UTC))
	require.Equal(t, Valid, state.Kind())
	snap, err := state.Snapshot(date("2014-01-01"))
	require.NoError(t, err)
	assert.True(t, snap.Events[1].Past)
	assert.True(t, snap.Events[2].Past)
	assert.Equal(t, "happened 0 seconds ago", snap.Events[1].Text)
}

func TestSnapshot_NotLive(t *testing.T) {
	t.Parallel()

	for _, state := range []State{Build(nil), Build([]string{"x", "y"}), {}} {
		_, err := state.Snapshot(time.Now())
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrTimelineNotLive))
	}
}

func TestSnapshot_Idempotent(t *testing.T) {
	t.Parallel()

	state := Build([]string{"2013-01-01", "2014-06-01T12:00:00Z", "2015-01-01"})
	now := date("2014-03-15").Add(1234 * time.Millisecond)

	first, err := state.Snapshot(now)
	require.NoError(t, err)
	second, err := state.Snapshot(now)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A later query does not disturb an earlier one.
	_, err = state.Snapshot(now.Add(time.Hour))
	require.NoError(t, err)
	third, err := state.Snapshot(now)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestSnapshot_PerEventTense(t *testing.T) {
	t.Parallel()

	state := Build([]string{"2013-01-01", "2014-01-01", "2015-01-01"})
	snap, err := state.Snapshot(date("2014-01-01"))
	require.NoError(t, err)

	// The middle event is reached exactly now: past tense, zero delta.
	assert.True(t, snap.Events[1].Past)
	assert.Equal(t, "happened 0 seconds ago", snap.Events[1].Text)
	assert.Less(t, snap.Ratio, 1.0)
}

func TestSnapshot_Phases(t *testing.T) {
	t.Parallel()

	state := Build([]string{"2013-01-01", "2015-01-01"})

	tests := []struct {
		now     string
		phase   Phase
		percent float64
	}{
		{now: "2012-06-01", phase: PhasePending, percent: 0},
		{now: "2013-01-01", phase: PhaseRunning, percent: 0},
		{now: "2015-01-01", phase: PhaseDone, percent: 100},
		{now: "2016-01-01", phase: PhaseDone, percent: 100},
	}
	for _, tc := range tests {
		snap, err := state.Snapshot(date(tc.now))
		require.NoError(t, err)
		assert.Equal(t, tc.phase, snap.Phase(), tc.now)
		assert.InDelta(t, tc.percent, snap.Percent(), 0, tc.now)
		assert.GreaterOrEqual(t, snap.Clamped(), 0.0)
		assert.LessOrEqual(t, snap.Clamped(), 1.0)
	}
}

func TestSnapshot_SubSecondRounding(t *testing.T) {
	t.Parallel()

	state := Build([]string{"2015-01-01T00:00:00Z", "2015-01-01T00:01:00Z"})
	snap, err := state.Snapshot(date("2015-01-01").Add(29500 * time.Millisecond))
	require.NoError(t, err)

	assert.InDelta(t, 0.5, snap.Ratio, 0)
	assert.Equal(t, "happened 30 seconds ago", snap.Events[0].Text)
	assert.Equal(t, "will happen in 31 seconds", snap.Events[1].Text)
}

func TestState_CopiesInputs(t *testing.T) {
	t.Parallel()

	raws := []string{"2013-01-01", "2015-01-01"}
	state := Build(raws)
	raws[0] = "mutated"

	assert.Equal(t, []string{"2013-01-01", "2015-01-01"}, state.Raw())
	got := state.Raw()
	got[1] = "mutated"
	assert.Equal(t, "2015-01-01", state.Raw()[1])
	assert.Len(t, state.Events(), 2)
}

func TestKindAndPhaseStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "valid", Valid.String())
	assert.Equal(t, "invalid", Invalid.String())
	assert.Equal(t, "insufficient", Insufficient.String())
	assert.Equal(t, "running", PhaseRunning.String())
	assert.Equal(t, "kind(7)", Kind(7).String())
	assert.Equal(t, "phase(7)", Phase(7).String())
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		state := Build([]string{"2013-01-01", "2015-01-01"}, WithLocation(time.UTC))
		sum := Summarize(state, date("2016-01-01"))

		assert.Equal(t, Valid, sum.State)
		assert.Empty(t, sum.Errors)
		require.NotNil(t, sum.Snapshot)
		require.NotNil(t, sum.Phase)
		assert.Equal(t, PhaseDone, *sum.Phase)
		assert.InDelta(t, 100.0, sum.Percent, 0.0001)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		state := Build([]string{"2015-01-01", "2013-01-01"}, WithLocation(time.UTC))
		sum := Summarize(state, date("2014-01-01"))

		assert.Equal(t, Invalid, sum.State)
		require.Len(t, sum.Errors, 1)
		assert.Equal(t, "Event 1 must happen before event 2.", sum.Errors[0].Message)
		assert.Equal(t, event.OutOfOrder, sum.Errors[0].Kind)
		assert.Equal(t, []int{0, 1}, sum.Implicated)
		assert.Nil(t, sum.Snapshot)
		assert.Nil(t, sum.Phase)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		state := Build([]string{"x", "2013-01-01"}, WithLocation(time.UTC))
		data, err := json.Marshal(Summarize(state, date("2014-01-01")))
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"state":"invalid","errors":[{"kind":"invalid_date","index":0,"message":"Event 1 must be a valid date."}],"implicated":[0],"percent":0}`,
			string(data))
	})
}

func TestBuild_BrowserStyleDates(t *testing.T) {
	t.Parallel()

	state := Build([]string{"2013/01/01", "January 1, 2015"}, WithLocation(time.UTC))
	require.Equal(t, Valid, state.Kind())

	snap, err := state.Snapshot(date("2014-01-01"))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, snap.Ratio, 0.001)
}
