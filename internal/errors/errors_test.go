package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Wrap(nil, "context"))

	err := Wrap(ErrConfigInvalid, "loading")
	assert.EqualError(t, err, "loading: invalid configuration")
	assert.True(t, Is(err, ErrConfigInvalid))
}

func TestWrapf(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Wrapf(nil, "file %s", "x"))

	err := Wrapf(ErrEventFile, "reading %s", "events.yaml")
	assert.EqualError(t, err, "reading events.yaml: invalid timeline file")
	assert.True(t, Is(err, ErrEventFile))
}

func TestIsThroughFmtWrap(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", Wrap(ErrTimelineNotLive, "inner"))
	assert.True(t, Is(err, ErrTimelineNotLive))
	assert.False(t, Is(err, ErrZeroSpan))
}
