package core

import "path/filepath"

// Playlist is the ordered list of media files to annotate.
type Playlist struct {
	Items        []string `json:"items"`
	CurrentIndex int      `json:"current_index"`
}

// NewPlaylist returns a playlist positioned before its first item.
func NewPlaylist(items []string) *Playlist {
	return &Playlist{Items: items, CurrentIndex: -1}
}

// Next advances to the following item. It returns false once the list is exhausted.
func (p *Playlist) Next() (string, bool) {
	if p == nil || p.CurrentIndex+1 >= len(p.Items) {
		return "", false
	}
	p.CurrentIndex++
	return p.Items[p.CurrentIndex], true
}

// Current returns the item being annotated, or "" before the first Next.
func (p *Playlist) Current() string {
	if p == nil || p.CurrentIndex < 0 || p.CurrentIndex >= len(p.Items) {
		return ""
	}
	return p.Items[p.CurrentIndex]
}

// Upcoming returns items after the current position.
func (p *Playlist) Upcoming() []string {
	if p == nil || p.CurrentIndex >= len(p.Items)-1 {
		return nil
	}
	return p.Items[p.CurrentIndex+1:]
}

// Len returns the total number of items.
func (p *Playlist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Items)
}

// IsEmpty returns true if the playlist has no items.
func (p *Playlist) IsEmpty() bool {
	return p.Len() == 0
}

// DisplayName returns the base name of a media path for on-screen use.
func DisplayName(path string) string {
	return filepath.Base(path)
}
