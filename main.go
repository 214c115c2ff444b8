// Command m3u8-downloader fetches an HLS (m3u8) media playlist and
// reassembles its segments into a single video file.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/seppedelanghe/m3u8-downloader/conf"
	"github.com/seppedelanghe/m3u8-downloader/dl"
	"github.com/seppedelanghe/m3u8-downloader/parse"
	"github.com/seppedelanghe/m3u8-downloader/progress"
	"github.com/seppedelanghe/m3u8-downloader/tool"
	"github.com/seppedelanghe/m3u8-downloader/writer"
)

var (
	flagURL       string
	flagOut       string
	flagTimeout   time.Duration
	flagUserAgent string
	flagHeaders   string
	flagRemux     bool
	flagFFmpeg    string
	flagConcat    string
	flagQuiet     bool
	flagVerbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "m3u8-downloader",
		Short:         "Download an HLS (m3u8) playlist into a single video file",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runE,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&flagURL, "url", "", "m3u8 playlist URL, required unless --concat is given")
	flags.StringVar(&flagOut, "out", "", "output video path, required")
	flags.DurationVar(&flagTimeout, "timeout", conf.DefaultTimeout, "timeout per HTTP request")
	flags.StringVar(&flagUserAgent, "user-agent", "", "User-Agent header for all requests")
	flags.StringVar(&flagHeaders, "headers", "", "path to a JSON file of extra request headers")
	flags.BoolVar(&flagRemux, "remux", false, "run the finished file through an ffmpeg stream copy")
	flags.StringVar(&flagFFmpeg, "ffmpeg", "", "path to the ffmpeg executable")
	flags.StringVar(&flagConcat, "concat", "", "assemble segment files from this directory instead of downloading")
	flags.BoolVar(&flagQuiet, "quiet", false, "suppress the progress bar")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	_ = rootCmd.MarkFlagRequired("out")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", describe(err))
		os.Exit(1)
	}
}

func runE(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	var reporter progress.Reporter = progress.Nop{}

	if flagConcat != "" {
		if !flagQuiet {
			reporter = progress.NewBar("Merging segments")
		}
		logger.Info("assembling local segments", "dir", flagConcat, "out", flagOut)
		if err := dl.Concat(flagConcat, "", flagOut, reporter); err != nil {
			return err
		}
		return finalize(logger)
	}

	if flagURL == "" {
		return errors.New("--url is required")
	}

	headers, err := conf.LoadHeaders(flagHeaders)
	if err != nil {
		return err
	}
	opts := conf.Options{
		Timeout:   flagTimeout,
		UserAgent: flagUserAgent,
		Headers:   headers,
	}

	if !flagQuiet {
		reporter = progress.NewBar("Downloading segments")
	}

	logger.Debug("resolving playlist", "url", flagURL)
	task, err := dl.NewTask(flagURL, dl.Config{
		Options:  opts,
		Reporter: reporter,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	logger.Info("playlist resolved", "segments", len(task.Playlist().Segments))

	if err := task.Start(flagOut); err != nil {
		return err
	}
	return finalize(logger)
}

func finalize(logger hclog.Logger) error {
	if flagRemux {
		logger.Info("remuxing output", "out", flagOut)
		if err := writer.Remux(flagOut, flagFFmpeg); err != nil {
			return err
		}
	}
	logger.Info("done", "out", flagOut)
	return nil
}

func newLogger() hclog.Logger {
	level := hclog.Info
	if flagQuiet {
		level = hclog.Warn
	}
	if flagVerbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:  "m3u8-downloader",
		Level: level,
	})
}

// describe names the failing stage for CLI output.
func describe(err error) string {
	var (
		pe *parse.ParseError
		fe *tool.FetchError
		we *writer.WriteError
	)
	switch {
	case errors.As(err, &pe):
		return fmt.Sprintf("playlist parsing failed: %s", err)
	case errors.As(err, &fe):
		return fmt.Sprintf("download failed: %s", err)
	case errors.As(err, &we):
		return fmt.Sprintf("writing output failed: %s", err)
	}
	return err.Error()
}
