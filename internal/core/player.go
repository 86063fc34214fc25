package core

import (
	"context"
)

// Player defines the playback operations the annotation loop relies on.
//
// Add, Play, Pause and Quit are fire-and-forget: the player does not answer
// them. GetTime is the only query and returns the player's own time string,
// which callers treat as opaque.
type Player interface {
	// Playlist control
	Add(ctx context.Context, path string) error

	// Playback control
	Play(ctx context.Context) error
	Pause(ctx context.Context) error

	// State queries
	GetTime(ctx context.Context) (string, error)

	// Lifecycle
	Quit(ctx context.Context) error
}
