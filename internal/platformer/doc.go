// Package platformer is a small side-scroller character driven by an xsm
// state tree. A Movement region handles ground and air control with jump,
// coyote and pre-jump timers, while a Colors region cycles the tint of the
// character. Input comes from a YAML script so a run is fully deterministic.
package platformer
