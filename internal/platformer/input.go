package platformer

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Actions understood by the character
const (
	ActionLeft      = "left"
	ActionRight     = "right"
	ActionJump      = "jump"
	ActionCrouch    = "crouch"
	ActionPrevColor = "prev_color"
	ActionNextColor = "next_color"
)

var knownActions = map[string]bool{
	ActionLeft: true, ActionRight: true, ActionJump: true,
	ActionCrouch: true, ActionPrevColor: true, ActionNextColor: true,
}

// Input is the per-frame action state
type Input struct {
	held         map[string]bool
	justPressed  map[string]bool
	justReleased map[string]bool
}

// NewInput creates an input with nothing held
func NewInput() *Input {
	return &Input{
		held:         make(map[string]bool),
		justPressed:  make(map[string]bool),
		justReleased: make(map[string]bool),
	}
}

// EndFrame forgets the edges of the frame that just ended
func (in *Input) EndFrame() {
	clear(in.justPressed)
	clear(in.justReleased)
}

// Press holds action down
func (in *Input) Press(action string) {
	if !in.held[action] {
		in.justPressed[action] = true
	}
	in.held[action] = true
}

// Release lets go of action
func (in *Input) Release(action string) {
	if in.held[action] {
		in.justReleased[action] = true
	}
	delete(in.held, action)
}

// IsPressed reports whether action is held
func (in *Input) IsPressed(action string) bool {
	return in.held[action]
}

// IsJustPressed reports whether action went down this frame
func (in *Input) IsJustPressed(action string) bool {
	return in.justPressed[action]
}

// IsJustReleased reports whether action went up this frame
func (in *Input) IsJustReleased(action string) bool {
	return in.justReleased[action]
}

// Event changes the input at frame At. Tapped actions are pressed at At and
// released one frame later.
type Event struct {
	At      uint64   `yaml:"at"`
	Press   []string `yaml:"press"`
	Release []string `yaml:"release"`
	Tap     []string `yaml:"tap"`
}

// Script is a timeline of input events
type Script struct {
	Name   string  `yaml:"name"`
	Frames int     `yaml:"frames"`
	Events []Event `yaml:"events"`

	byFrame map[uint64][]Event
}

// LoadScript decodes and validates a YAML input script
func LoadScript(r io.Reader) (*Script, error) {
	var s Script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode input script: %w", err)
	}
	if err := s.index(); err != nil {
		return nil, err
	}
	return &s, nil
}

// NewScript builds a script from events
func NewScript(name string, events ...Event) (*Script, error) {
	s := &Script{Name: name, Events: events}
	if err := s.index(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Script) index() error {
	s.byFrame = make(map[uint64][]Event)
	var last uint64
	for _, e := range s.Events {
		if e.At == 0 {
			return fmt.Errorf("input script %q: events start at frame 1", s.Name)
		}
		for _, group := range [][]string{e.Press, e.Release, e.Tap} {
			for _, a := range group {
				if !knownActions[a] {
					return fmt.Errorf("input script %q: unknown action '%s' at frame %d", s.Name, a, e.At)
				}
			}
		}
		press := append(append([]string{}, e.Press...), e.Tap...)
		s.byFrame[e.At] = append(s.byFrame[e.At], Event{At: e.At, Press: press, Release: e.Release})
		if len(e.Tap) > 0 {
			s.byFrame[e.At+1] = append(s.byFrame[e.At+1], Event{At: e.At + 1, Release: e.Tap})
		}
		if e.At+1 > last {
			last = e.At + 1
		}
	}
	if s.Frames <= 0 {
		s.Frames = int(last)
	}
	return nil
}

// Apply feeds the events of frame into in. Releases go first so that an
// action released and pressed on the same frame ends up held.
func (s *Script) Apply(frame uint64, in *Input) {
	if s == nil {
		return
	}
	for _, e := range s.byFrame[frame] {
		for _, a := range e.Release {
			in.Release(a)
		}
	}
	for _, e := range s.byFrame[frame] {
		for _, a := range e.Press {
			in.Press(a)
		}
	}
}

// LastFrame returns the last frame carrying an event
func (s *Script) LastFrame() uint64 {
	frames := make([]uint64, 0, len(s.byFrame))
	for f := range s.byFrame {
		frames = append(frames, f)
	}
	if len(frames) == 0 {
		return 0
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i] < frames[j] })
	return frames[len(frames)-1]
}
