// Package timer provides timer services for xsm state timeouts.
//
// Scheduler runs on a virtual clock advanced by the frame loop, so timeouts
// are deterministic and fire on the loop's own thread. Realtime uses wall
// clock timers and hands expired callbacks back to the loop through Drain.
package timer
