package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTimeout = 15 * time.Second
	defaultMaxBody = 2 << 20
)

// Observer receives one sample per outbound call.
type Observer interface {
	ObserveUpstream(source, outcome string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveUpstream(string, string, time.Duration) {}

// Option configures a provider.
type Option func(*upstream)

// WithBaseURL overrides the provider's default API root.
func WithBaseURL(baseURL string) Option {
	return func(u *upstream) {
		if v := strings.TrimSpace(baseURL); v != "" {
			u.baseURL = strings.TrimRight(v, "/")
		}
	}
}

// WithTimeout bounds every outbound call made by the provider.
func WithTimeout(timeout time.Duration) Option {
	return func(u *upstream) {
		if timeout > 0 {
			u.client.Timeout = timeout
		}
	}
}

func WithObserver(o Observer) Option {
	return func(u *upstream) {
		if o != nil {
			u.observer = o
		}
	}
}

// upstream holds the HTTP plumbing shared by all source clients. It keeps no
// state between calls.
type upstream struct {
	client   *http.Client
	baseURL  string
	tracer   trace.Tracer
	observer Observer
	maxBody  int64
}

func newUpstream(tracer trace.Tracer, baseURL string, opts []Option) upstream {
	u := upstream{
		client:   &http.Client{Timeout: defaultTimeout},
		baseURL:  baseURL,
		tracer:   tracer,
		observer: nopObserver{},
		maxBody:  defaultMaxBody,
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

// get performs exactly one GET and returns the body of a 2xx response.
// Every other outcome is an *UpstreamError.
func (u *upstream) get(ctx context.Context, source, path string) ([]byte, error) {
	ctx, span := u.tracer.Start(ctx, "provider."+source)
	defer span.End()

	url := strings.TrimRight(u.baseURL, "/") + path
	span.SetAttributes(attribute.String("upstream.url", url))

	start := time.Now()
	body, status, err := u.do(ctx, url)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
	}
	u.observer.ObserveUpstream(source, outcome, time.Since(start))
	if err != nil {
		return nil, &UpstreamError{Source: source, StatusCode: status, Err: err}
	}
	return body, nil
}

func (u *upstream) do(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, u.maxBody+1))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := truncate(strings.TrimSpace(string(body)), 200)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, resp.StatusCode, errors.New(msg)
	}
	if int64(len(body)) > u.maxBody {
		return nil, resp.StatusCode, fmt.Errorf("response exceeds %d bytes", u.maxBody)
	}
	return body, resp.StatusCode, nil
}
