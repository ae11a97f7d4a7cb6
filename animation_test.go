package xsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeAnimator is a do-nothing Animator used where calls are not asserted
type fakeAnimator struct {
	current string
}

func (a *fakeAnimator) HasAnimation(string) bool                      { return true }
func (a *fakeAnimator) Play(name string, _ float64, _ bool)           { a.current = name }
func (a *fakeAnimator) PlayBlended(name string, _, _ float64, _ bool) { a.current = name }
func (a *fakeAnimator) Stop(bool)                                     {}
func (a *fakeAnimator) Queue(string)                                  {}
func (a *fakeAnimator) CurrentAnimation() string                      { return a.current }
func (a *fakeAnimator) CurrentPosition() float64                      { return 0 }
func (a *fakeAnimator) CurrentLength() float64                        { return 1 }
func (a *fakeAnimator) Seek(float64)                                  {}

func newAnimatedMachine(t *testing.T, animator Animator) *Machine[TestEntity] {
	t.Helper()
	m, err := CreateSimpleTree(nil).Build(&TestEntity{}, WithAnimator(animator))
	require.NoError(t, err)
	require.NoError(t, m.Init())
	return m
}

func TestAnimation_PlaySwitchesAnimation(t *testing.T) {
	ctrl := gomock.NewController(t)
	animator := NewMockAnimator(ctrl)
	m := newAnimatedMachine(t, animator)

	gomock.InOrder(
		animator.EXPECT().HasAnimation("idle").Return(true),
		animator.EXPECT().CurrentAnimation().Return("walk"),
		animator.EXPECT().Stop(true),
		animator.EXPECT().Play("idle", 1.0, false),
	)

	m.State("A1").Play("idle")
}

func TestAnimation_PlayKeepsCurrentAnimation(t *testing.T) {
	ctrl := gomock.NewController(t)
	animator := NewMockAnimator(ctrl)
	m := newAnimatedMachine(t, animator)

	animator.EXPECT().HasAnimation("idle").Return(true)
	animator.EXPECT().CurrentAnimation().Return("idle")

	m.State("A1").Play("idle")
}

func TestAnimation_UnknownAnimationIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	animator := NewMockAnimator(ctrl)
	m := newAnimatedMachine(t, animator)

	animator.EXPECT().HasAnimation("dance").Return(false).Times(3)

	a1 := m.State("A1")
	a1.Play("dance")
	a1.PlayBlend("dance", 0.2, 1.0, false)
	a1.Queue("dance")
}

func TestAnimation_InactiveStateNeverDrivesTheAnimator(t *testing.T) {
	ctrl := gomock.NewController(t)
	animator := NewMockAnimator(ctrl)
	m := newAnimatedMachine(t, animator)

	// no expectations: any call fails the test
	a2 := m.State("A2")
	a2.Play("idle")
	a2.PlayBackwards("idle")
	a2.PlayBlend("idle", 0.5, 1.0, false)
	a2.PlaySync("idle", 1.0, false)
	a2.Pause()
	a2.StopAnimation(true)
	a2.Queue("idle")
}

func TestAnimation_PlayBackwards(t *testing.T) {
	ctrl := gomock.NewController(t)
	animator := NewMockAnimator(ctrl)
	m := newAnimatedMachine(t, animator)

	gomock.InOrder(
		animator.EXPECT().HasAnimation("land").Return(true),
		animator.EXPECT().CurrentAnimation().Return(""),
		animator.EXPECT().Stop(true),
		animator.EXPECT().Play("land", -1.0, true),
	)

	m.State("A1").PlayBackwards("land")
}

func TestAnimation_PlayBlend(t *testing.T) {
	ctrl := gomock.NewController(t)
	animator := NewMockAnimator(ctrl)
	m := newAnimatedMachine(t, animator)

	gomock.InOrder(
		animator.EXPECT().HasAnimation("run").Return(true),
		animator.EXPECT().CurrentAnimation().Return("walk"),
		animator.EXPECT().PlayBlended("run", 0.25, 1.5, false),
	)

	m.State("A1").PlayBlend("run", 0.25, 1.5, false)
}

func TestAnimation_PlaySyncKeepsRelativePosition(t *testing.T) {
	ctrl := gomock.NewController(t)
	animator := NewMockAnimator(ctrl)
	m := newAnimatedMachine(t, animator)

	gomock.InOrder(
		animator.EXPECT().HasAnimation("run").Return(true),
		animator.EXPECT().CurrentAnimation().Return("walk"),
		animator.EXPECT().CurrentLength().Return(2.0),
		animator.EXPECT().CurrentPosition().Return(0.5),
		animator.EXPECT().HasAnimation("run").Return(true),
		animator.EXPECT().CurrentAnimation().Return("walk"),
		animator.EXPECT().Stop(true),
		animator.EXPECT().Play("run", 1.0, false),
		animator.EXPECT().CurrentLength().Return(4.0),
		animator.EXPECT().Seek(1.0),
	)

	m.State("A1").PlaySync("run", 1.0, false)
}

func TestAnimation_PauseStopQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	animator := NewMockAnimator(ctrl)
	m := newAnimatedMachine(t, animator)

	gomock.InOrder(
		animator.EXPECT().Stop(false),
		animator.EXPECT().Stop(true),
		animator.EXPECT().HasAnimation("fall").Return(true),
		animator.EXPECT().Queue("fall"),
	)

	a1 := m.State("A1")
	a1.Pause()
	a1.StopAnimation(true)
	a1.Queue("fall")
}

func TestAnimation_IsPlaying(t *testing.T) {
	ctrl := gomock.NewController(t)
	animator := NewMockAnimator(ctrl)
	m := newAnimatedMachine(t, animator)

	animator.EXPECT().CurrentAnimation().Return("idle").Times(2)

	assert.True(t, m.State("A1").IsPlaying("idle"))
	assert.False(t, m.State("A2").IsPlaying("walk"))
}

func TestAnimation_NoAnimator(t *testing.T) {
	m, _, _ := newTestMachine(t, CreateSimpleTree)
	a1 := m.State("A1")

	assert.NotPanics(t, func() {
		a1.Play("idle")
		a1.PlaySync("idle", 1, false)
		a1.Pause()
	})
	assert.False(t, a1.IsPlaying("idle"))
}

func TestAnimation_StateAnimatorOverride(t *testing.T) {
	shared := &fakeAnimator{}
	own := &fakeAnimator{}
	b := NewBuilder[TestEntity]("Root", nil).
		State("A", nil, WithStateAnimator(own)).
		State("B", nil)
	m, err := b.Build(&TestEntity{}, WithAnimator(shared))
	require.NoError(t, err)
	require.NoError(t, m.Init())

	m.State("A").Play("idle")

	assert.Equal(t, "idle", own.current)
	assert.Equal(t, "", shared.current)
}
