package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfiler_LogsAfterInterval(t *testing.T) {
	p := NewProfiler()
	p.SetInterval(time.Hour)
	assert.False(t, p.Tick(10, 1))

	p.SetInterval(time.Nanosecond)
	p.SetInterval(0)
	time.Sleep(time.Millisecond)
	assert.True(t, p.Tick(10, 0))
	assert.Zero(t, p.tickCount)
	assert.Zero(t, p.updateCount)
	assert.Zero(t, p.commitCount)
}
