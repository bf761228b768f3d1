// Package state holds the match state machine shared by the gameplay and
// menu scenes.
package state

// MatchState represents the current state of a Pong match
type MatchState int

const (
	MatchIdle MatchState = iota // no match in progress
	MatchServing
	MatchPlaying
	MatchOver
)

// String returns the string representation of the match state
func (s MatchState) String() string {
	switch s {
	case MatchIdle:
		return "Idle"
	case MatchServing:
		return "Serving"
	case MatchPlaying:
		return "Playing"
	case MatchOver:
		return "Over"
	default:
		return "Unknown"
	}
}

// InProgress reports whether a match can be resumed.
func (s MatchState) InProgress() bool {
	return s == MatchServing || s == MatchPlaying
}

// CanTransition reports whether next is a legal successor of s.
func (s MatchState) CanTransition(next MatchState) bool {
	switch s {
	case MatchIdle:
		return next == MatchServing
	case MatchServing:
		return next == MatchPlaying || next == MatchIdle
	case MatchPlaying:
		return next == MatchServing || next == MatchOver || next == MatchIdle
	case MatchOver:
		return next == MatchServing || next == MatchIdle
	default:
		return false
	}
}
