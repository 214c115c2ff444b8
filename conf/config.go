// Package conf holds the per-run settings shared by the playlist resolver
// and the segment assembler.
package conf

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// DefaultTimeout bounds every single HTTP request.
const DefaultTimeout = 30 * time.Second

// Options configures HTTP behavior for one run.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// WithDefaults fills unset fields with their defaults.
func (o Options) WithDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// LoadHeaders reads a JSON object of header name/value pairs from file.
// An empty path yields no headers.
func LoadHeaders(file string) (map[string]string, error) {
	if file == "" {
		return nil, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read headers file: %w", err)
	}
	var headers map[string]string
	if err := json.Unmarshal(data, &headers); err != nil {
		return nil, fmt.Errorf("parse headers file: %w", err)
	}
	return headers, nil
}
