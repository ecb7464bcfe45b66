// Package fetcher retrieves raw feed and page documents over HTTP.
package fetcher

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"drupal-news/internal/domain/entity"
	"drupal-news/internal/observability/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// errTooManyRedirects is returned by CheckRedirect once MaxRedirects is hit.
var errTooManyRedirects = errors.New("too many redirects")

// HTTPFetcher performs anonymous GET requests with browser-like headers.
// It never retries and never logs; failures are returned as *entity.FetchError
// for the caller to report.
//
// Thread safety: HTTPFetcher is safe for concurrent use.
type HTTPFetcher struct {
	client *http.Client
	config Config
}

// New creates an HTTPFetcher with its own pooled client.
func New(cfg Config) *HTTPFetcher {
	client := &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12, // Enforce TLS 1.2+
			},
		},
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= cfg.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", errTooManyRedirects, len(via))
			}
			return nil
		},
	}
	return NewWithClient(client, cfg)
}

// NewWithClient creates an HTTPFetcher around an existing client.
// The per-request timeout from cfg is still applied through the context.
func NewWithClient(client *http.Client, cfg Config) *HTTPFetcher {
	return &HTTPFetcher{client: client, config: cfg}
}

// FetchHTML retrieves a listing page.
func (f *HTTPFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	return f.FetchText(ctx, url, AcceptHTML)
}

// FetchFeed retrieves an RSS or Atom document.
func (f *HTTPFetcher) FetchFeed(ctx context.Context, url string) (string, error) {
	return f.FetchText(ctx, url, AcceptFeed)
}

// FetchText issues a GET for url with the given Accept header and returns the
// response body as text.
func (f *HTTPFetcher) FetchText(ctx context.Context, url, accept string) (body string, err error) {
	ctx, span := tracing.GetTracer().Start(ctx, "fetcher.FetchText",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.url", url),
			attribute.String("http.accept", accept),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", &entity.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", f.config.AcceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return "", &entity.FetchError{
				URL: url,
				Err: fmt.Errorf("timeout of %v exceeded: %w", f.config.Timeout, context.DeadlineExceeded),
			}
		}
		return "", &entity.FetchError{URL: url, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &entity.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	// Read one byte past the limit so oversized bodies can be detected.
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodySize+1))
	if err != nil {
		return "", &entity.FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(data)) > f.config.MaxBodySize {
		return "", &entity.FetchError{
			URL: url,
			Err: fmt.Errorf("response exceeds %d bytes", f.config.MaxBodySize),
		}
	}

	return string(data), nil
}
