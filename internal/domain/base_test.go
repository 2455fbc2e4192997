package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testEvent struct{ at time.Time }

func (e testEvent) Type() string { return "test" }
func (e testEvent) PublishedAt() time.Time { return e.at }

func TestAggregatePopEvents(t *testing.T) {
	var a Aggregate
	var src EventSource = &a

	a.PushEvent(testEvent{})
	a.PushEvent(testEvent{})

	require.Len(t, src.PopEvents(), 2)
	require.Empty(t, src.PopEvents())
}
