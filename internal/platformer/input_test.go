package platformer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_Edges(t *testing.T) {
	in := NewInput()

	in.Press(ActionJump)
	assert.True(t, in.IsPressed(ActionJump))
	assert.True(t, in.IsJustPressed(ActionJump))

	in.EndFrame()
	in.Press(ActionJump)
	assert.True(t, in.IsPressed(ActionJump))
	assert.False(t, in.IsJustPressed(ActionJump), "holding is not a new press")

	in.Release(ActionJump)
	assert.False(t, in.IsPressed(ActionJump))
	assert.True(t, in.IsJustReleased(ActionJump))

	in.EndFrame()
	in.Release(ActionJump)
	assert.False(t, in.IsJustReleased(ActionJump))
}

func TestLoadScript(t *testing.T) {
	script, err := LoadScript(strings.NewReader(`
name: hop
events:
  - at: 2
    press: [right]
  - at: 4
    tap: [jump]
  - at: 6
    release: [right]
`))
	require.NoError(t, err)

	assert.Equal(t, "hop", script.Name)
	assert.Equal(t, 7, script.Frames, "defaults to one frame past the last event")
	assert.Equal(t, uint64(6), script.LastFrame())

	in := NewInput()
	held := make(map[uint64][]string)
	for f := uint64(1); f <= 7; f++ {
		script.Apply(f, in)
		for _, a := range []string{ActionRight, ActionJump} {
			if in.IsPressed(a) {
				held[f] = append(held[f], a)
			}
		}
		if f == 5 {
			assert.True(t, in.IsJustReleased(ActionJump), "a tap releases on the next frame")
		}
		in.EndFrame()
	}

	assert.Empty(t, held[1])
	assert.Equal(t, []string{ActionRight}, held[2])
	assert.Equal(t, []string{ActionRight, ActionJump}, held[4])
	assert.Equal(t, []string{ActionRight}, held[5])
	assert.Empty(t, held[6])
}

func TestLoadScript_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "unknown action",
			source: "events:\n  - at: 1\n    press: [fly]\n",
			want:   "unknown action 'fly'",
		},
		{
			name:   "frame zero",
			source: "events:\n  - at: 0\n    press: [jump]\n",
			want:   "events start at frame 1",
		},
		{
			name:   "malformed",
			source: "events: [",
			want:   "decode input script",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript(strings.NewReader(tt.source))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestScript_SameFrameReleaseAndPress(t *testing.T) {
	script, err := NewScript("again",
		Event{At: 1, Press: []string{ActionJump}},
		Event{At: 2, Release: []string{ActionJump}, Press: []string{ActionJump}},
	)
	require.NoError(t, err)

	in := NewInput()
	script.Apply(1, in)
	in.EndFrame()
	script.Apply(2, in)

	assert.True(t, in.IsPressed(ActionJump))
	assert.True(t, in.IsJustPressed(ActionJump))
	assert.True(t, in.IsJustReleased(ActionJump))
}

func TestScript_NilApply(t *testing.T) {
	var script *Script
	in := NewInput()

	script.Apply(1, in)

	assert.False(t, in.IsPressed(ActionJump))
}
