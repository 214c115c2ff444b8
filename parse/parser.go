// Package parse resolves an m3u8 manifest into an ordered list of
// absolute segment URIs.
package parse

import (
	"bufio"
	"bytes"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/grafov/m3u8"
	"github.com/pkg/errors"

	"github.com/seppedelanghe/m3u8-downloader/tool"
)

const (
	masterMarker = "#EXT-X-STREAM-INF"
	extInfMarker = "#EXTINF:"

	reasonNoSegments = "no segment references found"
	reasonMaster     = "master playlists are unsupported, pass a media playlist URL"
)

// FromURL fetches the manifest at link and resolves it into a Playlist.
func FromURL(client *tool.Client, link string) (*Playlist, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, errors.Wrap(err, "invalid manifest URL")
	}
	body, err := client.Get(u.String())
	if err != nil {
		return nil, err
	}
	//noinspection GoUnhandledErrorResult
	defer body.Close()
	return Parse(body, u)
}

// Parse interprets manifest text read from r, resolving relative segment
// references against base. The m3u8 decoder handles well-formed
// playlists; manifests it yields nothing for fall through to a plain
// line scan.
func Parse(r io.Reader, base *url.URL) (*Playlist, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}

	segments, err := decode(data, base)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		if segments, err = scan(data, base); err != nil {
			return nil, err
		}
	}
	if len(segments) == 0 {
		return nil, &ParseError{URL: base.String(), Reason: reasonNoSegments}
	}
	return &Playlist{URL: base, Segments: segments}, nil
}

// decode runs the m3u8 decoder over the manifest. A nil slice with a nil
// error means the decoder found nothing usable and the caller should
// fall back to scan.
func decode(data []byte, base *url.URL) ([]Segment, error) {
	pl, listType, err := m3u8.DecodeFrom(bytes.NewReader(data), false)
	if err != nil {
		return nil, nil
	}
	if listType == m3u8.MASTER {
		return nil, &ParseError{URL: base.String(), Reason: reasonMaster}
	}
	media, ok := pl.(*m3u8.MediaPlaylist)
	if !ok {
		return nil, nil
	}
	var segments []Segment
	for _, seg := range media.Segments {
		if seg == nil {
			break
		}
		segments = append(segments, Segment{
			URI:      tool.ResolveURL(base, seg.URI),
			Duration: seg.Duration,
			Sequence: len(segments),
		})
	}
	return segments, nil
}

// lineKind tags one manifest line.
type lineKind int

const (
	lineBlank lineKind = iota
	lineDirective
	lineSegment
)

// classifyLine tags a manifest line as blank, a directive, or a segment
// reference.
func classifyLine(line string) (lineKind, string) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return lineBlank, ""
	case strings.HasPrefix(line, "#"):
		return lineDirective, line
	default:
		return lineSegment, line
	}
}

// scan treats every non-blank, non-directive line as a segment reference,
// in textual order.
func scan(data []byte, base *url.URL) ([]Segment, error) {
	var (
		segments []Segment
		duration float64
	)
	s := bufio.NewScanner(bytes.NewReader(data))
	for s.Scan() {
		kind, text := classifyLine(s.Text())
		switch kind {
		case lineBlank:
		case lineDirective:
			if strings.HasPrefix(text, masterMarker) {
				return nil, &ParseError{URL: base.String(), Reason: reasonMaster}
			}
			if strings.HasPrefix(text, extInfMarker) {
				duration = parseExtInf(text)
			}
		case lineSegment:
			segments = append(segments, Segment{
				URI:      tool.ResolveURL(base, text),
				Duration: duration,
				Sequence: len(segments),
			})
			duration = 0
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "scan manifest")
	}
	return segments, nil
}

// parseExtInf extracts the duration from an #EXTINF directive. Malformed
// durations read as zero.
func parseExtInf(line string) float64 {
	v := strings.TrimPrefix(line, extInfMarker)
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return d
}
