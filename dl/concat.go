package dl

import (
	"os"
	"path/filepath"

	"github.com/facette/natsort"
	"github.com/pkg/errors"

	"github.com/seppedelanghe/m3u8-downloader/progress"
	"github.com/seppedelanghe/m3u8-downloader/writer"
)

const defaultSegmentPattern = "*.ts"

// Concat assembles already-downloaded segment files from dir into a
// single file at output. Files are ordered by natural sort, so seg2.ts
// comes before seg10.ts. No network access is involved.
func Concat(dir, pattern, output string, reporter progress.Reporter) error {
	if pattern == "" {
		pattern = defaultSegmentPattern
	}
	if reporter == nil {
		reporter = progress.Nop{}
	}

	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return errors.Wrap(err, "list segment files")
	}
	if len(files) == 0 {
		return errors.Errorf("no segment files matching %s in %s", pattern, dir)
	}
	natsort.Sort(files)

	out, err := writer.NewFile(output)
	if err != nil {
		return err
	}
	//noinspection GoUnhandledErrorResult
	defer out.Close()

	reporter.Start(len(files))
	for i, fn := range files {
		b, err := os.ReadFile(fn)
		if err != nil {
			return errors.Wrapf(err, "read segment file %s", fn)
		}
		if err := out.AppendSegment(b); err != nil {
			return err
		}
		reporter.Update(i+1, len(files))
	}
	if err := out.Close(); err != nil {
		return err
	}
	reporter.Finish()
	return nil
}
