// Package fetch retrieves job-posting pages over HTTP, with a headless
// browser fallback for JavaScript-rendered boards.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; JobTracker/1.0)"

// Result holds the content retrieved from a URL.
type Result struct {
	URL        string
	HTML       string
	StatusCode int
}

// Error represents an error during page fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures fetch behavior.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	UseBrowser bool // fall back to headless Chrome for thin SPA pages
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Fetcher retrieves pages. Concurrent requests for the same URL are
// collapsed into a single round trip.
type Fetcher struct {
	client *http.Client
	opts   *Options
	group  singleflight.Group
}

// New creates a Fetcher with the given options (nil for defaults).
func New(opts *Options) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Fetcher{
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
	}
}

// Page retrieves the HTML document at urlStr. When browser fallback is
// enabled and the plain HTTP response carries too little visible content,
// the page is re-rendered in a headless browser.
func (f *Fetcher) Page(ctx context.Context, urlStr string) (*Result, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	v, err, _ := f.group.Do(urlStr, func() (any, error) {
		// Other callers may be sharing this flight; detach it from the
		// first caller's cancellation so their results don't die with it.
		return f.fetch(context.WithoutCancel(ctx), urlStr)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

func (f *Fetcher) fetch(ctx context.Context, urlStr string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	result := &Result{
		URL:        urlStr,
		HTML:       string(bodyBytes),
		StatusCode: resp.StatusCode,
	}

	if f.opts.UseBrowser && ShouldUseBrowser(result.HTML) {
		rendered, err := RenderWithBrowser(ctx, urlStr, f.opts.Timeout)
		if err != nil {
			// The plain response is still usable; keep it.
			return result, nil
		}
		result.HTML = rendered
	}

	return result, nil
}
