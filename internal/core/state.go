package core

// PlaybackState is where the annotation loop stands for the current item.
type PlaybackState int

const (
	StatePlaying PlaybackState = iota
	StatePaused
	StateTerminated
)

func (s PlaybackState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
