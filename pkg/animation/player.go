// Package animation provides an in-memory animation player that implements
// xsm.Animator. Playback advances with the frame loop; no rendering happens.
package animation

import (
	"fmt"
	"io"
	"math"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/anggasct/xsm"
)

// Clip describes one animation of the library
type Clip struct {
	Name   string  `yaml:"name"`
	Length float64 `yaml:"length"`
	Loop   bool    `yaml:"loop"`
}

// Library is the on-disk layout of an animation library
type Library struct {
	Animations []Clip `yaml:"animations"`
}

// LoadLibrary reads a YAML animation library
func LoadLibrary(r io.Reader) ([]Clip, error) {
	var lib Library
	if err := yaml.NewDecoder(r).Decode(&lib); err != nil {
		return nil, fmt.Errorf("decode animation library: %w", err)
	}
	for _, c := range lib.Animations {
		if c.Name == "" {
			return nil, fmt.Errorf("animation library: clip without a name")
		}
		if c.Length <= 0 {
			return nil, fmt.Errorf("animation library: clip '%s' has length %v", c.Name, c.Length)
		}
	}
	return lib.Animations, nil
}

// Player plays clips on a virtual timeline. CurrentAnimation is empty while
// nothing is playing, like most engine animation players.
type Player struct {
	clips     map[string]Clip
	assigned  string
	position  float64
	speed     float64
	blend     float64
	playing   bool
	queue     []string
	listeners []func(name string)
}

var _ xsm.Animator = (*Player)(nil)

// NewPlayer creates a player for the given clips
func NewPlayer(clips ...Clip) *Player {
	p := &Player{clips: make(map[string]Clip, len(clips))}
	for _, c := range clips {
		p.clips[c.Name] = c
	}
	return p
}

// OnFinished registers fn to be called with the clip name whenever a
// non-looping clip reaches its end
func (p *Player) OnFinished(fn func(name string)) {
	p.listeners = append(p.listeners, fn)
}

// HasAnimation reports whether the clip exists
func (p *Player) HasAnimation(name string) bool {
	_, ok := p.clips[name]
	return ok
}

// Play starts a clip. A negative speed plays it backwards.
func (p *Player) Play(name string, speed float64, fromEnd bool) {
	p.PlayBlended(name, 0, speed, fromEnd)
}

// PlayBlended starts a clip blending from the current pose over blend seconds
func (p *Player) PlayBlended(name string, blend float64, speed float64, fromEnd bool) {
	clip, ok := p.clips[name]
	if !ok {
		return
	}
	p.assigned = name
	p.speed = speed
	p.blend = blend
	p.playing = true
	p.position = 0
	if fromEnd {
		p.position = clip.Length
	}
}

// Stop stops playback, rewinding the clip when reset is set
func (p *Player) Stop(reset bool) {
	p.playing = false
	if reset {
		p.position = 0
		p.queue = p.queue[:0]
	}
}

// Queue plays name once the current clip finishes, or right away when idle
func (p *Player) Queue(name string) {
	if !p.HasAnimation(name) {
		return
	}
	if !p.playing {
		p.Play(name, 1.0, false)
		return
	}
	p.queue = append(p.queue, name)
}

// CurrentAnimation returns the playing clip, empty when stopped
func (p *Player) CurrentAnimation() string {
	if !p.playing {
		return ""
	}
	return p.assigned
}

// AssignedAnimation returns the last clip played, even when stopped
func (p *Player) AssignedAnimation() string {
	return p.assigned
}

// CurrentPosition returns the playback position in seconds
func (p *Player) CurrentPosition() float64 {
	return p.position
}

// CurrentLength returns the length of the assigned clip in seconds
func (p *Player) CurrentLength() float64 {
	return p.clips[p.assigned].Length
}

// Seek moves the playback position, clamped to the clip
func (p *Player) Seek(t float64) {
	p.position = math.Max(0, math.Min(t, p.CurrentLength()))
}

// Speed returns the playback speed of the assigned clip
func (p *Player) Speed() float64 {
	return p.speed
}

// Blend returns the blend time the assigned clip was started with
func (p *Player) Blend() float64 {
	return p.blend
}

// Queued returns the clips waiting to play
func (p *Player) Queued() []string {
	out := make([]string, len(p.queue))
	copy(out, p.queue)
	return out
}

// Advance moves playback forward by delta. A looping clip wraps; any other
// clip stops at its end, notifies the finished listeners and then hands over
// to the next queued clip unless a listener already started one.
func (p *Player) Advance(delta time.Duration) {
	if !p.playing {
		return
	}
	clip := p.clips[p.assigned]
	p.position += p.speed * delta.Seconds()

	ended := (p.speed >= 0 && p.position >= clip.Length) || (p.speed < 0 && p.position <= 0)
	if !ended {
		return
	}
	if clip.Loop && clip.Length > 0 {
		p.position = math.Mod(p.position, clip.Length)
		if p.position < 0 {
			p.position += clip.Length
		}
		return
	}

	p.position = math.Max(0, math.Min(p.position, clip.Length))
	p.playing = false
	for _, fn := range p.listeners {
		fn(clip.Name)
	}
	if !p.playing && len(p.queue) > 0 {
		next := p.queue[0]
		p.queue = p.queue[1:]
		p.Play(next, 1.0, false)
	}
}
