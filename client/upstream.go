package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Aashish23092/gst-bank-api/metrics"
)

const (
	// DefaultTimeout bounds every provider call, including reading the body.
	DefaultTimeout = 10 * time.Second

	userAgent       = "gst-bank-api/1.0"
	maxResponseSize = 1 << 20
)

var errResponseTooLarge = fmt.Errorf("provider response exceeds %d bytes", maxResponseSize)

// upstream holds the static configuration shared by the provider clients.
type upstream struct {
	httpClient *http.Client
	timeout    time.Duration
	log        *zap.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

// Option configures a provider client.
type Option func(*upstream)

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(u *upstream) { u.timeout = timeout }
}

// WithHTTPClient replaces the default pooled HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(u *upstream) { u.httpClient = c }
}

// WithLogger sets the logger used for lookup events.
func WithLogger(l *zap.Logger) Option {
	return func(u *upstream) { u.log = l }
}

// WithMetrics records provider call counts and latencies.
func WithMetrics(m *metrics.Metrics) Option {
	return func(u *upstream) { u.metrics = m }
}

// WithClock overrides the clock used for fetchedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(u *upstream) { u.now = now }
}

func newUpstream(opts ...Option) upstream {
	u := upstream{
		timeout: DefaultTimeout,
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&u)
	}
	if u.httpClient == nil {
		u.httpClient = NewHTTPClient(u.timeout)
	}
	return u
}

// NewHTTPClient returns an HTTP client with pooled connections and dial,
// TLS and header timeouts no longer than timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dialer := &net.Dialer{
		Timeout:   min(5*time.Second, timeout),
		KeepAlive: 30 * time.Second,
	}

	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   min(5*time.Second, timeout),
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   timeout,
	}
}

// get performs a GET bounded by the client timeout and returns the status
// code and body. Only transport failures are returned as errors.
func (u *upstream) get(ctx context.Context, endpoint string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, redactURL(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return 0, nil, u.transportError(err)
	}
	defer resp.Body.Close()

	if resp.ContentLength > maxResponseSize {
		return 0, nil, errResponseTooLarge
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return 0, nil, u.transportError(err)
	}
	if len(body) > maxResponseSize {
		return 0, nil, errResponseTooLarge
	}
	return resp.StatusCode, body, nil
}

func (u *upstream) transportError(err error) error {
	err = redactURL(err)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out after %s", u.timeout)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("request timed out after %s", u.timeout)
	}
	return err
}

// redactURL drops the request URL from net/http errors. Provider URLs can
// carry API keys in their path.
func redactURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

// record logs and measures the outcome of a provider call.
func (u *upstream) record(provider, id string, start time.Time, err error) {
	elapsed := u.now().Sub(start)

	outcome := metrics.OutcomeSuccess
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			switch fe.Kind {
			case KindNetwork:
				outcome = metrics.OutcomeNetwork
			case KindNotFound:
				outcome = metrics.OutcomeNotFound
			default:
				outcome = metrics.OutcomeProvider
			}
		}
		u.log.Warn("provider lookup failed",
			zap.String("provider", provider),
			zap.String("id", id),
			zap.String("outcome", outcome),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	} else {
		u.log.Info("provider lookup succeeded",
			zap.String("provider", provider),
			zap.String("id", id),
			zap.Duration("elapsed", elapsed))
	}

	u.metrics.ObserveUpstream(provider, outcome, elapsed)
}

func (u *upstream) timestamp() string {
	return u.now().Format(time.RFC3339)
}

func isSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
