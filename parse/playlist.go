package parse

import (
	"fmt"
	"net/url"
)

// Segment is one media segment reference from a playlist, already
// resolved to an absolute URI.
type Segment struct {
	URI      string
	Duration float64
	Sequence int
}

// Playlist is the result of resolving one manifest. The segment order is
// the manifest order; it is the concatenation order and must never be
// reordered.
type Playlist struct {
	URL      *url.URL
	Segments []Segment
}

// ParseError reports a manifest that could not be interpreted as a media
// playlist.
type ParseError struct {
	URL    string
	Reason string
}

func (e *ParseError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("parse %s: %s", e.URL, e.Reason)
	}
	return "parse playlist: " + e.Reason
}
