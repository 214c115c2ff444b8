package tool

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// FetchError reports a failed HTTP retrieval: either a transport error or
// a non-success status code, during manifest or segment download.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s", e.URL, e.Err.Error())
	}
	return fmt.Sprintf("fetch %s: status code %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// HeaderTransport injects a fixed set of headers into every request.
type HeaderTransport struct {
	Headers map[string]string
	Base    http.RoundTripper
}

func (t *HeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range t.Headers {
		req.Header.Set(k, v)
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// Client retrieves manifests and segments over HTTP.
type Client struct {
	hc        *http.Client
	userAgent string
}

// NewClient builds a Client with the given request timeout, optional
// User-Agent and optional extra headers applied to every request.
func NewClient(timeout time.Duration, userAgent string, headers map[string]string) *Client {
	var transport http.RoundTripper = http.DefaultTransport
	if len(headers) != 0 {
		transport = &HeaderTransport{Headers: headers, Base: http.DefaultTransport}
	}
	return &Client{
		hc: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent: userAgent,
	}
}

// Get issues a GET for url and returns the response body. The caller owns
// the returned reader and must close it. Transport failures and non-2xx
// statuses yield a *FetchError.
func (c *Client) Get(url string) (io.ReadCloser, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

// GetBytes issues a GET for url and reads the whole body.
func (c *Client) GetBytes(url string) ([]byte, error) {
	body, err := c.Get(url)
	if err != nil {
		return nil, err
	}
	//noinspection GoUnhandledErrorResult
	defer body.Close()
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return b, nil
}
