package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweeper struct {
	calls  int
	maxAge time.Duration
}

func (f *fakeSweeper) Sweep(maxAge time.Duration) int {
	f.calls++
	f.maxAge = maxAge
	return 2
}

func TestStagingSweepJob(t *testing.T) {
	fs := &fakeSweeper{}
	NewStagingSweepJob(fs, 30*time.Minute).Run()

	assert.Equal(t, 1, fs.calls)
	assert.Equal(t, 30*time.Minute, fs.maxAge)
}

func TestScheduler(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.Add("@every 1m", NewStagingSweepJob(&fakeSweeper{}, time.Minute)))
	assert.Error(t, s.Add("not a spec", NewStagingSweepJob(&fakeSweeper{}, time.Minute)))
	assert.Equal(t, 1, s.Len())

	s.Start()
	s.Stop()
}
