package platformer

import "math"

// Params are the tuning values of the character. Speeds are in units per
// second, times in seconds.
type Params struct {
	Gravity        float64 `yaml:"gravity"`
	Acceleration   float64 `yaml:"acceleration"`
	GroundSpeed    float64 `yaml:"ground_speed"`
	GroundFriction float64 `yaml:"ground_friction"`
	WalkMargin     float64 `yaml:"walk_margin"`
	RunMargin      float64 `yaml:"run_margin"`
	JumpSpeed      float64 `yaml:"jump_speed"`
	AirSpeed       float64 `yaml:"air_speed"`
	AirFriction    float64 `yaml:"air_friction"`
	CoyoteTime     float64 `yaml:"coyote_time"`
	PreJumpTime    float64 `yaml:"pre_jump_time"`
	JumpTime       float64 `yaml:"jump_time"`
}

// DefaultParams returns the stock tuning
func DefaultParams() Params {
	return Params{
		Gravity:        2500,
		Acceleration:   15,
		GroundSpeed:    680,
		GroundFriction: 6,
		WalkMargin:     80,
		RunMargin:      150,
		JumpSpeed:      450,
		AirSpeed:       610,
		AirFriction:    8,
		CoyoteTime:     0.1,
		PreJumpTime:    0.3,
		JumpTime:       0.3,
	}
}

// Platform is a horizontal floor segment. Y grows downwards.
type Platform struct {
	Left  float64 `yaml:"left"`
	Right float64 `yaml:"right"`
	Y     float64 `yaml:"y"`
}

// DefaultLevel is a floor with a step down at x=400
func DefaultLevel() []Platform {
	return []Platform{
		{Left: -2000, Right: 400, Y: 0},
		{Left: 400, Right: 4000, Y: 120},
	}
}

// Player is the entity the state tree acts on
type Player struct {
	Params
	Input *Input

	X, Y       float64
	VelX, VelY float64
	Dir        int
	FlipH      bool
	Color      string

	level   []Platform
	onFloor bool
	// FallSource names the state the last fall started from, if it was Walk or Jump
	FallSource string
}

// NewPlayer places a player 200 units left of the edge of the first platform
func NewPlayer(params Params, level []Platform) *Player {
	p := &Player{Params: params, Input: NewInput(), level: level}
	if len(level) > 0 {
		p.X = math.Max(level[0].Left, level[0].Right-200)
		p.Y = level[0].Y
		p.onFloor = true
	}
	return p
}

// IsOnFloor reports whether the last move ended on a platform
func (p *Player) IsOnFloor() bool {
	return p.onFloor
}

// MoveAndSlide integrates the velocity over dt seconds and stops the fall on
// the first platform crossed from above
func (p *Player) MoveAndSlide(dt float64) {
	prevY := p.Y
	p.X += p.VelX * dt
	p.Y += p.VelY * dt
	p.onFloor = false

	for _, pl := range p.level {
		if p.X < pl.Left || p.X > pl.Right {
			continue
		}
		if prevY <= pl.Y && p.Y >= pl.Y {
			p.Y = pl.Y
			p.VelY = 0
			p.onFloor = true
			return
		}
	}
}

func lerp(from, to, weight float64) float64 {
	return from + (to-from)*weight
}

func abs(v float64) float64 {
	return math.Abs(v)
}
