package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWithDefaults(t *testing.T) {
	o := Options{}.WithDefaults()
	if o.Timeout != DefaultTimeout {
		t.Errorf("expected default timeout %s, got %s", DefaultTimeout, o.Timeout)
	}

	o = Options{Timeout: 5 * time.Second}.WithDefaults()
	if o.Timeout != 5*time.Second {
		t.Errorf("expected explicit timeout kept, got %s", o.Timeout)
	}
}

func TestLoadHeaders(t *testing.T) {
	file := filepath.Join(t.TempDir(), "headers.json")
	content := `{"Referer": "https://example.com/", "X-Token": "abc"}`
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	headers, err := LoadHeaders(file)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if headers["Referer"] != "https://example.com/" {
		t.Errorf("unexpected Referer: %q", headers["Referer"])
	}
	if headers["X-Token"] != "abc" {
		t.Errorf("unexpected X-Token: %q", headers["X-Token"])
	}
}

func TestLoadHeadersEmptyPath(t *testing.T) {
	headers, err := LoadHeaders("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if headers != nil {
		t.Errorf("expected nil headers, got %v", headers)
	}
}

func TestLoadHeadersInvalidJSON(t *testing.T) {
	file := filepath.Join(t.TempDir(), "headers.json")
	if err := os.WriteFile(file, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadHeaders(file); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}
