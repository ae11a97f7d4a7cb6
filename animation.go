package xsm

//go:generate mockgen -package xsm -source animation.go -destination animation_mock.go

// Animator is the animation playback service states drive. The machine never
// owns its lifecycle.
type Animator interface {
	HasAnimation(name string) bool
	Play(name string, speed float64, fromEnd bool)
	PlayBlended(name string, blend float64, speed float64, fromEnd bool)
	Stop(reset bool)
	Queue(name string)
	CurrentAnimation() string
	CurrentPosition() float64
	CurrentLength() float64
	Seek(t float64)
}

// activeAnimator returns the animator if the state may drive it right now
func (s *State[E]) activeAnimator() Animator {
	if s.status != StatusActive {
		return nil
	}
	return s.Animator()
}

// Play plays anim at normal speed unless it is already the current animation
func (s *State[E]) Play(anim string) {
	s.PlayWith(anim, 1.0, false)
}

// PlayWith plays anim with a custom speed, optionally from its end, unless it
// is already the current animation
func (s *State[E]) PlayWith(anim string, speed float64, fromEnd bool) {
	a := s.activeAnimator()
	if a == nil || !a.HasAnimation(anim) {
		return
	}
	if a.CurrentAnimation() != anim {
		a.Stop(true)
		a.Play(anim, speed, fromEnd)
	}
}

// PlayBackwards plays anim in reverse from its end
func (s *State[E]) PlayBackwards(anim string) {
	s.PlayWith(anim, -1.0, true)
}

// PlayBlend blends anim in over the current animation
func (s *State[E]) PlayBlend(anim string, blend float64, speed float64, fromEnd bool) {
	a := s.activeAnimator()
	if a == nil || !a.HasAnimation(anim) {
		return
	}
	if a.CurrentAnimation() != anim {
		a.PlayBlended(anim, blend, speed, fromEnd)
	}
}

// PlaySync switches to anim keeping the relative position of the current animation
func (s *State[E]) PlaySync(anim string, speed float64, fromEnd bool) {
	a := s.activeAnimator()
	if a == nil || !a.HasAnimation(anim) {
		return
	}
	current := a.CurrentAnimation()
	if current == anim || current == "" {
		s.PlayWith(anim, speed, fromEnd)
		return
	}
	ratio := 0.0
	if length := a.CurrentLength(); length > 0 {
		ratio = a.CurrentPosition() / length
	}
	s.PlayWith(anim, speed, fromEnd)
	a.Seek(ratio * a.CurrentLength())
}

// Pause stops the current animation where it is
func (s *State[E]) Pause() {
	s.StopAnimation(false)
}

// StopAnimation stops the current animation, optionally rewinding it
func (s *State[E]) StopAnimation(reset bool) {
	if a := s.activeAnimator(); a != nil {
		a.Stop(reset)
	}
}

// Queue plays anim after the current one finishes
func (s *State[E]) Queue(anim string) {
	a := s.activeAnimator()
	if a == nil || !a.HasAnimation(anim) {
		return
	}
	a.Queue(anim)
}

// IsPlaying reports whether anim is the current animation
func (s *State[E]) IsPlaying(anim string) bool {
	a := s.Animator()
	if a == nil {
		return false
	}
	return a.CurrentAnimation() == anim
}
