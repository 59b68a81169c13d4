package jobs

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler_AddAndRemove(t *testing.T) {
	s := NewScheduler(zap.NewNop(), nil)

	require.NoError(t, s.AddJob("b", "0 */30 * * * *", func() {}))
	require.NoError(t, s.AddJob("a", "@every 1h", func() {}))
	assert.Equal(t, []string{"a", "b"}, s.JobNames())

	assert.Error(t, s.AddJob("a", "@hourly", func() {}), "duplicate name")
	assert.Error(t, s.AddJob("c", "not a cron", func() {}))

	require.NoError(t, s.RemoveJob("a"))
	assert.Equal(t, []string{"b"}, s.JobNames())
	assert.Error(t, s.RemoveJob("a"))

	_, ok := s.NextRun("a")
	assert.False(t, ok)
}

func TestScheduler_RunsJobs(t *testing.T) {
	s := NewScheduler(zap.NewNop(), time.UTC)
	var runs atomic.Int32
	require.NoError(t, s.AddJob("tick", "* * * * * *", func() { runs.Add(1) }))

	s.Start()
	next, ok := s.NextRun("tick")
	assert.True(t, ok)
	assert.False(t, next.IsZero())

	assert.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	<-s.Stop().Done()
}

func TestScheduler_RecoversPanics(t *testing.T) {
	s := NewScheduler(zap.NewNop(), time.UTC)
	var runs atomic.Int32
	require.NoError(t, s.AddJob("boom", "* * * * * *", func() {
		runs.Add(1)
		panic("boom")
	}))

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 4*time.Second, 50*time.Millisecond)
	<-s.Stop().Done()
}
