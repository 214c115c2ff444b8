package writer

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Remux rewrites the assembled file in place through an ffmpeg stream
// copy, fixing container-level glitches left by plain concatenation.
func Remux(path, ffmpegPath string) error {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	// keep the extension so ffmpeg can infer the container
	ext := filepath.Ext(path)
	tmp := strings.TrimSuffix(path, ext) + ".remux" + ext
	cmd := exec.Command(ffmpegPath, "-i", path, "-c", "copy", tmp)
	if err := cmd.Run(); err != nil {
		_ = os.Remove(tmp)
		return &WriteError{Path: path, Op: "remux", Err: fmt.Errorf("ffmpeg: %w", err)}
	}
	if err := os.Remove(path); err != nil {
		return &WriteError{Path: path, Op: "remux", Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &WriteError{Path: path, Op: "remux", Err: err}
	}
	return nil
}
