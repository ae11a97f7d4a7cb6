package timer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anggasct/xsm"
	"github.com/anggasct/xsm/pkg/timer"
)

func TestScheduler_FiresInDeadlineOrder(t *testing.T) {
	s := timer.New()
	var fired []string
	record := func(name string) func() {
		return func() { fired = append(fired, name) }
	}

	s.Schedule("late", 300*time.Millisecond, record("late"))
	s.Schedule("early", 100*time.Millisecond, record("early"))
	s.Schedule("tie-first", 200*time.Millisecond, record("tie-first"))
	s.Schedule("tie-second", 200*time.Millisecond, record("tie-second"))

	assert.Equal(t, 4, s.Pending())
	next, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, 100*time.Millisecond, next)

	assert.Equal(t, 0, s.Advance(50*time.Millisecond))
	assert.Equal(t, 3, s.Advance(200*time.Millisecond))
	assert.Equal(t, []string{"early", "tie-first", "tie-second"}, fired)
	assert.Equal(t, 250*time.Millisecond, s.Now())

	assert.Equal(t, 1, s.Advance(time.Second))
	assert.Equal(t, 0, s.Pending())
	_, ok = s.Next()
	assert.False(t, ok)
}

func TestScheduler_Stop(t *testing.T) {
	s := timer.New()
	fired := 0

	first := s.Schedule("a", time.Second, func() { fired++ })
	s.Schedule("b", time.Second, func() { fired++ })

	assert.True(t, first.Stop())
	assert.False(t, first.Stop())
	assert.Equal(t, 1, s.Pending())

	s.Advance(time.Second)
	assert.Equal(t, 1, fired)

	handle := s.Schedule("c", 0, func() { fired++ })
	s.Advance(0)
	assert.Equal(t, 2, fired)
	assert.False(t, handle.Stop(), "a fired timer is no longer pending")
}

func TestScheduler_CallbackArmsTimer(t *testing.T) {
	s := timer.New()
	var fired []string

	s.Schedule("outer", 100*time.Millisecond, func() {
		fired = append(fired, "outer")
		s.Schedule("immediate", 0, func() { fired = append(fired, "immediate") })
		s.Schedule("later", time.Second, func() { fired = append(fired, "later") })
	})

	assert.Equal(t, 2, s.Advance(100*time.Millisecond))
	assert.Equal(t, []string{"outer", "immediate"}, fired)
	assert.Equal(t, 1, s.Pending())
}

func TestScheduler_HandleCarriesNameAndDeadline(t *testing.T) {
	s := timer.New()
	s.Advance(time.Second)

	h, ok := s.Schedule("JumpTimer", 250*time.Millisecond, nil).(*timer.Handle)
	require.True(t, ok)
	assert.Equal(t, "JumpTimer", h.Name)
	assert.Equal(t, 1250*time.Millisecond, h.Deadline)

	assert.Equal(t, 1, s.Advance(250*time.Millisecond), "nil callbacks are counted")
}

type entity struct {
	landed bool
}

func TestScheduler_DrivesStateTimeouts(t *testing.T) {
	s := timer.New()
	jump := xsm.Hooks[entity]{
		OnEnterFunc: func(st *xsm.State[entity], _ xsm.Args) {
			st.AddTimer("JumpTimer", 300*time.Millisecond)
		},
		OnTimeoutFunc: func(st *xsm.State[entity], name string) {
			st.ChangeState("Fall")
		},
	}
	fall := xsm.Hooks[entity]{
		OnEnterFunc: func(st *xsm.State[entity], _ xsm.Args) {
			st.Target().landed = true
		},
	}

	m, err := xsm.NewBuilder[entity]("Root", nil).
		State("Jump", jump).
		State("Fall", fall).
		Build(&entity{}, xsm.WithScheduler(s))
	require.NoError(t, err)
	require.NoError(t, m.Init())
	require.Equal(t, 1, s.Pending())

	step := 100 * time.Millisecond
	for i := 0; i < 3; i++ {
		m.Update(step)
		s.Advance(step)
	}
	assert.True(t, m.IsActive("Jump"), "the timeout request waits for the next frame")

	m.Update(step)
	assert.True(t, m.IsActive("Fall"))
	assert.True(t, m.Target().landed)
}

func TestScheduler_ExitCancelsStateTimers(t *testing.T) {
	s := timer.New()
	jump := xsm.Hooks[entity]{
		OnEnterFunc: func(st *xsm.State[entity], _ xsm.Args) {
			st.AddTimer("JumpTimer", time.Second)
		},
	}
	m, err := xsm.NewBuilder[entity]("Root", nil).
		State("Jump", jump).
		State("Fall", nil).
		Build(&entity{}, xsm.WithScheduler(s))
	require.NoError(t, err)
	require.NoError(t, m.Init())

	m.ChangeState("Fall")
	m.Update(time.Millisecond)

	assert.Equal(t, 0, s.Pending())
}
