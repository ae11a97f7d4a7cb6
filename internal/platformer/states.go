package platformer

import (
	"fmt"
	"time"

	"github.com/anggasct/xsm"
	"github.com/anggasct/xsm/pkg/log"
)

// Timer names
const (
	TimerJump   = "JumpTimer"
	TimerCoyote = "CoyoteTime"
	TimerPreJmp = "PreJump"
)

type behavior = xsm.BaseBehavior[Player]

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

// NewTree declares the character state tree:
//
//	Root (regions)
//	├── Movement
//	│   ├── OnGround: Idle, Walk, Crouch, Land
//	│   └── InAir: Jump, Fall
//	└── Colors: Green, Orange, Purple
func NewTree(logger log.Logger) *xsm.Builder[Player] {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return xsm.NewBuilder[Player]("Root", nil, xsm.WithRegions()).
		State("Movement", movement{}).
		State("Movement/OnGround", onGround{}).
		State("Movement/OnGround/Idle", idle{}).
		State("Movement/OnGround/Walk", walk{}).
		State("Movement/OnGround/Crouch", crouch{}).
		State("Movement/OnGround/Land", land{}).
		State("Movement/InAir", inAir{}).
		State("Movement/InAir/Jump", &jump{}).
		State("Movement/InAir/Fall", fall{logger: logger}).
		State("Colors", regionColor{logger: logger}).
		State("Colors/Green", color{name: "Green", prev: "Purple", next: "Orange", logger: logger}).
		State("Colors/Orange", color{name: "Orange", prev: "Green", next: "Purple", logger: logger}).
		State("Colors/Purple", color{name: "Purple", prev: "Orange", next: "Green", logger: logger})
}

// movement reads the direction, applies gravity and moves the body once every
// state below it had its say on the velocity
type movement struct{ behavior }

func (movement) OnUpdate(s *xsm.State[Player], delta time.Duration) {
	p := s.Target()
	p.Dir = 0
	if p.Input.IsPressed(ActionLeft) {
		p.Dir = -1
		p.FlipH = true
	} else if p.Input.IsPressed(ActionRight) {
		p.Dir = 1
		p.FlipH = false
	}
	p.VelY += delta.Seconds() * p.Gravity
}

func (movement) AfterUpdate(s *xsm.State[Player], delta time.Duration) {
	s.Target().MoveAndSlide(delta.Seconds())
}

type onGround struct{ behavior }

func (onGround) OnUpdate(s *xsm.State[Player], delta time.Duration) {
	p := s.Target()
	dt := delta.Seconds()
	if p.Dir != 0 {
		p.VelX = lerp(p.VelX, p.GroundSpeed*float64(p.Dir), p.Acceleration*dt)
	} else {
		p.VelX = lerp(p.VelX, 0, p.GroundFriction*dt)
		if abs(p.VelX) < p.WalkMargin {
			p.VelX = 0
		}
	}

	switch {
	case p.Input.IsJustPressed(ActionJump):
		s.ChangeState("Jump")
	case !p.IsOnFloor():
		s.State("Fall").AddTimer(TimerCoyote, seconds(p.CoyoteTime))
		s.ChangeState("Fall")
	case abs(p.VelX) < p.WalkMargin && p.Input.IsJustPressed(ActionCrouch):
		s.ChangeState("Crouch")
	}
}

type idle struct{ behavior }

func (idle) OnEnter(s *xsm.State[Player], _ xsm.Args) {
	s.Play("Idle")
}

func (idle) OnUpdate(s *xsm.State[Player], _ time.Duration) {
	p := s.Target()
	if abs(p.VelX) > p.WalkMargin {
		s.ChangeState("Walk")
	}
}

type walk struct{ behavior }

func (walk) OnEnter(s *xsm.State[Player], _ xsm.Args) {
	s.Play("Walk")
}

func (walk) OnUpdate(s *xsm.State[Player], _ time.Duration) {
	p := s.Target()
	switch {
	case abs(p.VelX) < p.WalkMargin:
		s.ChangeState("Idle")
	case p.Dir == 0:
		if !s.IsPlaying("Brake") {
			s.Play("Brake")
		}
	case abs(p.VelX) > p.RunMargin:
		s.Play("Run")
	default:
		s.Play("Walk")
	}
}

type crouch struct{ behavior }

func (crouch) OnEnter(s *xsm.State[Player], _ xsm.Args) {
	s.Play("Crouch")
}

func (crouch) OnUpdate(s *xsm.State[Player], _ time.Duration) {
	if s.Target().Input.IsJustReleased(ActionCrouch) {
		s.ChangeState("Idle")
	}
}

// land plays the squash animation; the game moves on to Idle when it ends
type land struct{ behavior }

func (land) OnEnter(s *xsm.State[Player], _ xsm.Args) {
	s.Play("Land")
}

type inAir struct{ behavior }

func (inAir) OnUpdate(s *xsm.State[Player], delta time.Duration) {
	p := s.Target()
	dt := delta.Seconds()
	if p.Dir != 0 {
		p.VelX = lerp(p.VelX, p.AirSpeed*float64(p.Dir), p.Acceleration*dt)
		return
	}
	p.VelX = lerp(p.VelX, 0, p.AirFriction*dt)
	if abs(p.VelX) < p.WalkMargin {
		p.VelX = 0
	}
}

// jump keeps pushing upwards while the button is held, until JumpTimer fires
type jump struct {
	behavior
	jumping bool
}

func (j *jump) OnEnter(s *xsm.State[Player], _ xsm.Args) {
	s.Play("Jump")
	s.AddTimer(TimerJump, seconds(s.Target().JumpTime))
	j.jumping = true
}

func (j *jump) OnUpdate(s *xsm.State[Player], _ time.Duration) {
	p := s.Target()
	if p.Input.IsJustReleased(ActionJump) {
		j.jumping = false
	}
	if j.jumping {
		p.VelY = -p.JumpSpeed
	}
}

func (j *jump) OnExit(*xsm.State[Player], xsm.Args) {
	j.jumping = false
}

func (j *jump) OnTimeout(s *xsm.State[Player], _ string) {
	j.jumping = false
	s.ChangeState("Fall")
}

// Jumping reports whether the jump is still accelerating
func (j *jump) Jumping() bool {
	return j.jumping
}

type fall struct {
	behavior
	logger log.Logger
}

func (f fall) OnEnter(s *xsm.State[Player], _ xsm.Args) {
	p := s.Target()
	if p.VelY >= 0 {
		s.Play("Fall")
	} else {
		s.Play("FlyUp")
	}

	p.FallSource = ""
	for _, from := range []string{"Walk", "Jump"} {
		if s.WasActive(from, 0) {
			p.FallSource = from
			f.logger.Debug("falling", log.String("from", from))
			break
		}
	}
}

func (fall) OnUpdate(s *xsm.State[Player], _ time.Duration) {
	p := s.Target()
	if p.IsOnFloor() && s.HasTimer(TimerPreJmp) {
		s.ChangeState("Jump")
		return
	}
	if p.IsOnFloor() {
		s.ChangeState("Land")
		return
	}

	if p.VelY < 0 && p.VelY > -200 && !s.IsPlaying("TopCurve") {
		s.Play("TopCurve")
	}

	if p.Input.IsJustPressed(ActionJump) {
		if s.HasTimer(TimerCoyote) {
			s.ChangeState("Jump")
		} else {
			s.AddTimer(TimerPreJmp, seconds(p.PreJumpTime))
		}
	}
}

// regionColor reports the color before and after a switch
type regionColor struct {
	behavior
	logger log.Logger
}

func colorInput(p *Player) bool {
	return p.Input.IsJustPressed(ActionPrevColor) || p.Input.IsJustPressed(ActionNextColor)
}

func (r regionColor) OnUpdate(s *xsm.State[Player], _ time.Duration) {
	if colorInput(s.Target()) {
		if sub := s.ActiveSubState(); sub != nil {
			r.logger.Info("leaving color", log.String("color", sub.Name()))
		}
	}
}

func (r regionColor) AfterUpdate(s *xsm.State[Player], _ time.Duration) {
	if colorInput(s.Target()) {
		if sub := s.ActiveSubState(); sub != nil {
			r.logger.Info("now color", log.String("color", sub.Name()))
		}
	}
}

type color struct {
	behavior
	name, prev, next string
	logger           log.Logger
}

func (c color) OnEnter(s *xsm.State[Player], args xsm.Args) {
	s.Target().Color = c.name
	if msg, ok := xsm.ArgsAs[string](args); ok {
		c.logger.Debug(msg, log.String("color", c.name))
	}
}

func (c color) OnUpdate(s *xsm.State[Player], _ time.Duration) {
	in := s.Target().Input
	switch {
	case in.IsJustPressed(ActionPrevColor):
		s.ChangeStateWith(c.prev, xsm.EnterArgs(fmt.Sprintf("switching to %s", c.prev)))
	case in.IsJustPressed(ActionNextColor):
		s.ChangeStateWith(c.next, xsm.EnterArgs(fmt.Sprintf("switching to %s", c.next)))
	}
}
