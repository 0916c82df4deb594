package index

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/krabzholder/mayflower-reporter/internal/reporter"
)

// DefaultIndexPath is where the publishing pipeline writes the case index,
// relative to the site base URL.
const DefaultIndexPath = "_data/search.json"

// Client fetches the published case index from the static site.
type Client struct {
	base string
	path string
	hc   *http.Client
}

// NewClient builds a Client for the site at base, e.g.
// "https://reporter.example.org". The index is read from path under base.
func NewClient(base, path string, timeout time.Duration) *Client {
	if path == "" {
		path = DefaultIndexPath
	}
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		path: strings.TrimLeft(path, "/"),
		hc:   &http.Client{Timeout: timeout, Transport: tr},
	}
}

// Fetch retrieves the case index in source order. Any transport, status, or
// decode failure is returned as an error; callers that want the site's
// degrade-to-empty behavior apply Fallback to the result.
func (c *Client) Fetch(ctx context.Context) ([]reporter.Case, error) {
	u := c.base + "/" + c.path
	var cases []reporter.Case
	if err := c.getJSON(ctx, u, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "mayflower-reporter/1.0")
	res, err := c.do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("GET %s: status=%d body=%q", u, res.StatusCode, string(b))
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// do issues the request with a small bounded retry on transient failures.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	const maxAttempts = 3
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		r := req.Clone(req.Context())
		res, err := c.hc.Do(r)
		if err == nil {
			if res.StatusCode == 429 || res.StatusCode == 500 || res.StatusCode == 502 || res.StatusCode == 503 || res.StatusCode == 504 {
				_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 32*1024))
				_ = res.Body.Close()
				lastErr = fmt.Errorf("GET %s: status=%d", r.URL.String(), res.StatusCode)
			} else {
				return res, nil
			}
		} else {
			lastErr = err
		}
		if attempt < maxAttempts-1 {
			delay := time.Duration(250*(1<<attempt)) * time.Millisecond
			t := time.NewTimer(delay)
			select {
			case <-req.Context().Done():
				t.Stop()
				return nil, req.Context().Err()
			case <-t.C:
			}
		}
	}
	return nil, lastErr
}
