// Package vlc speaks VLC's line-oriented remote-control (rc) interface over
// the player's standard input and output.
package vlc

import "strings"

// PromptMarker is prepended by the rc interface, sometimes more than once,
// to the lines it prints.
const PromptMarker = "> "

// BannerLines is the number of greeting lines printed before the first prompt.
const BannerLines = 2

// RC commands.
const (
	cmdAdd     = "add"
	cmdPlay    = "play"
	cmdPause   = "pause"
	cmdGetTime = "get_time"
	cmdQuit    = "quit"
)

// StripPrompt removes every leading repetition of PromptMarker from line and
// trims the surrounding whitespace of what is left.
func StripPrompt(line string) string {
	s := strings.TrimRight(line, "\r\n")
	for strings.HasPrefix(s, PromptMarker) {
		s = s[len(PromptMarker):]
	}
	return strings.TrimSpace(s)
}
