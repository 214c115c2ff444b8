// Package dl runs the download pipeline: resolve the playlist once, then
// fetch every segment sequentially and append it to a single output file.
package dl

import (
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"github.com/seppedelanghe/m3u8-downloader/conf"
	"github.com/seppedelanghe/m3u8-downloader/parse"
	"github.com/seppedelanghe/m3u8-downloader/progress"
	"github.com/seppedelanghe/m3u8-downloader/tool"
	"github.com/seppedelanghe/m3u8-downloader/writer"
)

// State tracks an assembler run. Transitions are strictly forward:
// NotStarted → InProgress → Completed or Failed. There are no retries and
// no mid-segment cancellation.
type State int

const (
	NotStarted State = iota
	InProgress
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Config carries the collaborators for a run. Zero values select default
// HTTP options, no progress output and a null logger.
type Config struct {
	Options  conf.Options
	Reporter progress.Reporter
	Logger   hclog.Logger
}

// Downloader resolves one playlist and assembles its segments into a
// single output file. A Downloader serves exactly one run and holds no
// process-wide state.
type Downloader struct {
	playlist *parse.Playlist
	client   *tool.Client
	reporter progress.Reporter
	logger   hclog.Logger

	state   State
	current int
}

// NewTask fetches and resolves the playlist at link and prepares a run.
// A manifest that cannot be retrieved or parsed fails here, before any
// output file is touched.
func NewTask(link string, cfg Config) (*Downloader, error) {
	if cfg.Reporter == nil {
		cfg.Reporter = progress.Nop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	opts := cfg.Options.WithDefaults()

	client := tool.NewClient(opts.Timeout, opts.UserAgent, opts.Headers)
	pl, err := parse.FromURL(client, link)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug("playlist resolved", "url", link, "segments", len(pl.Segments))

	return &Downloader{
		playlist: pl,
		client:   client,
		reporter: cfg.Reporter,
		logger:   cfg.Logger,
		state:    NotStarted,
	}, nil
}

// Playlist returns the resolved playlist.
func (d *Downloader) Playlist() *parse.Playlist { return d.playlist }

// State reports where the run currently is.
func (d *Downloader) State() State { return d.state }

// Current returns the zero-based index of the segment the run last
// worked on. Only meaningful once the state has left NotStarted.
func (d *Downloader) Current() int { return d.current }

// Start downloads every segment, in manifest order, into a single file at
// output. Each fetch blocks; one progress update is emitted per completed
// segment. The first fetch or write failure aborts the run, which may
// leave a partial output file behind.
func (d *Downloader) Start(output string) error {
	if d.state != NotStarted {
		return errors.Errorf("task already %s", d.state)
	}

	out, err := writer.NewFile(output)
	if err != nil {
		d.state = Failed
		return err
	}
	//noinspection GoUnhandledErrorResult
	defer out.Close()

	d.state = InProgress
	total := len(d.playlist.Segments)
	d.reporter.Start(total)

	for i, seg := range d.playlist.Segments {
		d.current = i
		b, err := d.client.GetBytes(seg.URI)
		if err != nil {
			d.state = Failed
			return errors.Wrapf(err, "segment %d/%d", i+1, total)
		}
		if err := out.AppendSegment(b); err != nil {
			d.state = Failed
			return errors.Wrapf(err, "segment %d/%d", i+1, total)
		}
		d.logger.Debug("segment done", "index", i+1, "total", total, "bytes", len(b))
		d.reporter.Update(i+1, total)
	}

	if err := out.Close(); err != nil {
		d.state = Failed
		return err
	}
	d.reporter.Finish()
	d.state = Completed
	d.logger.Info("assembly finished", "segments", total, "output", output)
	return nil
}
