// Package log defines the structured logging port used by the state machine
// runtime and its tooling. The runtime only depends on the Logger interface;
// the zerolog adapter is what the CLI wires in.
package log
