package process

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p := New(3, 5, 4, 1)
	assert.Equal(t, 3, p.ID)
	assert.Equal(t, 5, p.Arrival)
	assert.Equal(t, 4, p.Burst)
	assert.Equal(t, 1, p.Priority)
	assert.Equal(t, 0, p.Progress())
	assert.Equal(t, NotInSystem, p.State())
	_, ok := p.ExitTime()
	assert.False(t, ok)
}

func TestRunFor(t *testing.T) {
	tests := []struct {
		name      string
		burst     int
		runs      []int
		progress  int
		remaining int
		state     State
	}{
		{name: "partial", burst: 10, runs: []int{2}, progress: 2, remaining: 8, state: NotInSystem},
		{name: "exact", burst: 4, runs: []int{2, 2}, progress: 4, remaining: 0, state: Finished},
		{name: "clamped", burst: 5, runs: []int{2, 2, 2}, progress: 5, remaining: 0, state: Finished},
		{name: "zero ticks", burst: 3, runs: []int{0}, progress: 0, remaining: 3, state: NotInSystem},
		{name: "negative ticks", burst: 3, runs: []int{-4}, progress: 0, remaining: 3, state: NotInSystem},
		{name: "after finish", burst: 1, runs: []int{2, 2}, progress: 1, remaining: 0, state: Finished},
		{name: "huge quantum", burst: math.MaxInt - 1, runs: []int{3, math.MaxInt}, progress: math.MaxInt - 1, remaining: 0, state: Finished},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := New(0, 0, tc.burst, 0)
			var got int
			for _, ticks := range tc.runs {
				got = p.RunFor(ticks)
			}
			assert.Equal(t, tc.progress, got)
			assert.Equal(t, tc.progress, p.Progress())
			assert.Equal(t, tc.remaining, p.TimeToComplete())
			assert.Equal(t, tc.state, p.State())
		})
	}
}

func TestTransitions(t *testing.T) {
	p := New(1, 0, 3, 0)
	assert.False(t, p.Dispatch(), "cannot dispatch before admission")
	assert.True(t, p.Admit())
	assert.False(t, p.Admit(), "already ready")
	assert.True(t, p.Dispatch())
	assert.Equal(t, NotInSystem, p.State())

	p.RunFor(2)
	assert.True(t, p.Requeue())
	assert.Equal(t, Ready, p.State())

	assert.True(t, p.Dispatch())
	p.RunFor(2)
	assert.True(t, p.IsFinished())
	assert.False(t, p.Requeue(), "finished is terminal")
	assert.False(t, p.Admit(), "finished is terminal")
	assert.Equal(t, Finished, p.State())
}

func TestDerivedTimes(t *testing.T) {
	p := New(0, 1, 6, 0)

	_, err := p.TurnaroundTime()
	assert.ErrorIs(t, err, ErrNotAvailable)
	_, err = p.WaitTime()
	assert.ErrorIs(t, err, ErrNotAvailable)

	assert.Error(t, p.Complete(16), "cannot complete unfinished process")

	p.RunFor(6)
	require.NoError(t, p.Complete(16))
	require.NoError(t, p.Complete(30))
	exit, ok := p.ExitTime()
	require.True(t, ok)
	assert.Equal(t, 16, exit, "exit time never changes once set")

	for i := 0; i < 2; i++ {
		turnaround, err := p.TurnaroundTime()
		require.NoError(t, err)
		assert.Equal(t, 15, turnaround)
		wait, err := p.WaitTime()
		require.NoError(t, err)
		assert.Equal(t, 9, wait)
	}
}

func TestEqual(t *testing.T) {
	a := New(1, 0, 10, 0)
	b := New(1, 7, 2, 9)
	c := New(2, 0, 10, 0)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	var none *Process
	assert.True(t, none.Equal(nil))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "not-in-system", NotInSystem.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "finished", Finished.String())
	assert.Equal(t, "state(7)", State(7).String())
}
