package platformer

import (
	"bytes"
	_ "embed"
	"time"

	"github.com/anggasct/xsm"
	"github.com/anggasct/xsm/pkg/animation"
	"github.com/anggasct/xsm/pkg/log"
	"github.com/anggasct/xsm/pkg/timer"
)

//go:embed assets/animations.yaml
var animationsYAML []byte

//go:embed assets/demo.yaml
var demoYAML []byte

// DefaultClips returns the bundled animation library
func DefaultClips() []animation.Clip {
	clips, err := animation.LoadLibrary(bytes.NewReader(animationsYAML))
	if err != nil {
		panic(err)
	}
	return clips
}

// DemoScript returns the bundled input script
func DemoScript() *Script {
	s, err := LoadScript(bytes.NewReader(demoYAML))
	if err != nil {
		panic(err)
	}
	return s
}

// Game wires a player, its state tree, the animation player and a virtual
// timer clock into one deterministic frame loop
type Game struct {
	Player   *Player
	Machine  *xsm.Machine[Player]
	Animator *animation.Player
	Timers   *timer.Scheduler
	Script   *Script

	frame uint64
}

// Config describes a game
type Config struct {
	Params Params
	Level  []Platform
	Clips  []animation.Clip
	Script *Script
	Logger log.Logger
}

// DefaultConfig returns the stock character in the stock level
func DefaultConfig() Config {
	return Config{
		Params: DefaultParams(),
		Level:  DefaultLevel(),
		Clips:  DefaultClips(),
		Script: DemoScript(),
		Logger: log.NewNoopLogger(),
	}
}

// NewGame builds and initializes the state tree. opts are appended after
// the animator and scheduler of the game.
func NewGame(cfg Config, opts ...xsm.Option) (*Game, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewNoopLogger()
	}
	g := &Game{
		Player:   NewPlayer(cfg.Params, cfg.Level),
		Animator: animation.NewPlayer(cfg.Clips...),
		Timers:   timer.New(),
		Script:   cfg.Script,
	}

	all := append([]xsm.Option{
		xsm.WithAnimator(g.Animator),
		xsm.WithScheduler(g.Timers),
		xsm.WithLogger(cfg.Logger),
	}, opts...)

	m, err := NewTree(cfg.Logger).Build(g.Player, all...)
	if err != nil {
		return nil, err
	}
	g.Machine = m
	g.Animator.OnFinished(g.animationFinished)

	if err := m.Init(); err != nil {
		return nil, err
	}
	return g, nil
}

// animationFinished reacts to one-shot clips reaching their end
func (g *Game) animationFinished(name string) {
	switch name {
	case "Jump":
		g.Machine.State("Jump").Play("FlyUp")
	case "TopCurve":
		g.Machine.State("Fall").Play("Fall")
	case "Land":
		if land := g.Machine.State("Land"); land.Status() == xsm.StatusActive {
			land.ChangeState("Idle")
		}
	}
}

// Step runs one frame: scripted input, state tree, animation and then timers.
// Transitions requested by animation or timer callbacks apply on the next
// frame. Input edges are cleared once the frame is over, so presses made
// between two steps are seen by the next one.
func (g *Game) Step(delta time.Duration) {
	g.frame++
	g.Script.Apply(g.frame, g.Player.Input)

	// host ticks; the machine's sync mode picks the one that drives it
	g.Machine.Process(delta)
	g.Machine.PhysicsProcess(delta)
	g.Animator.Advance(delta)
	g.Timers.Advance(delta)
	g.Player.Input.EndFrame()
}

// Run steps the game frames times, calling after (if set) at the end of each frame
func (g *Game) Run(frames int, delta time.Duration, after func(frame uint64)) {
	for i := 0; i < frames; i++ {
		g.Step(delta)
		if after != nil {
			after(g.frame)
		}
	}
}

// Frame returns the number of frames stepped
func (g *Game) Frame() uint64 {
	return g.frame
}
