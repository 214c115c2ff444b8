package writer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeStubFFmpeg writes an executable that records its argv to argsFile
// and then runs extra shell code (which sees the output path as $last).
func writeStubFFmpeg(t *testing.T, dir, argsFile, extra string) string {
	t.Helper()
	stub := filepath.Join(dir, "ffmpeg-stub")
	script := fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$@\" > %q\nfor a; do last=$a; done\n%s\n", argsFile, extra)
	if err := os.WriteFile(stub, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return stub
}

func TestRemuxInvokesStreamCopy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.mp4")
	if err := os.WriteFile(path, []byte("concatenated"), 0644); err != nil {
		t.Fatal(err)
	}

	argsFile := filepath.Join(dir, "args.txt")
	stub := writeStubFFmpeg(t, dir, argsFile, `echo remuxed > "$last"`)

	if err := Remux(path, stub); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// the remuxed content replaced the original in place
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "remuxed\n" {
		t.Errorf("expected remuxed content in place, got %q", b)
	}

	// ffmpeg was called with a stream copy into the temporary file
	recorded, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Split(strings.TrimSpace(string(recorded)), "\n")
	tmp := filepath.Join(dir, "out.remux.mp4")
	want := []string{"-i", path, "-c", "copy", tmp}
	if len(got) != len(want) {
		t.Fatalf("expected args %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	// the temporary file was renamed away
	if _, err := os.Stat(tmp); !os.IsNotExist(err) {
		t.Errorf("expected temporary file to be gone, stat err: %v", err)
	}
}

func TestRemuxFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.mp4")
	if err := os.WriteFile(path, []byte("concatenated"), 0644); err != nil {
		t.Fatal(err)
	}

	argsFile := filepath.Join(dir, "args.txt")
	stub := writeStubFFmpeg(t, dir, argsFile, `echo partial > "$last"
exit 3`)

	err := Remux(path, stub)
	if err == nil {
		t.Fatal("expected an error when ffmpeg exits non-zero")
	}
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected *WriteError, got %T", err)
	}
	if we.Op != "remux" {
		t.Errorf("expected remux op, got %q", we.Op)
	}

	// original untouched, partial temporary file cleaned up
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "concatenated" {
		t.Errorf("expected original content intact, got %q", b)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.remux.mp4")); !os.IsNotExist(err) {
		t.Errorf("expected temporary file to be removed, stat err: %v", err)
	}
}
