package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/rs/zerolog"
)

const (
	generatePath = "/api/generate"
	// maxResponseBytes caps how much of a non-streaming reply is buffered.
	maxResponseBytes = 32 << 20
	// maxErrorBody caps the backend error text carried into statusError.
	maxErrorBody = 4096
)

// Client talks to a running Ollama server over HTTP.
type Client struct {
	baseURL        string
	reqTimeout     time.Duration
	connectTimeout time.Duration
	httpClient     *http.Client
	api            *api.Client
	log            zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default transport. Its Timeout should be zero;
// the request bound is applied through the context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithConnectTimeout bounds TCP dialing on the default transport.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Client) { c.connectTimeout = d }
}

// WithLogger installs a structured logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient constructs a client for the server at baseURL. reqTimeout bounds each
// Generate call; zero disables the bound.
func NewClient(baseURL string, reqTimeout time.Duration, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend url must be absolute: %q", baseURL)
	}
	c := &Client{
		baseURL:        base.String(),
		reqTimeout:     reqTimeout,
		connectTimeout: 10 * time.Second,
		log:            zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.httpClient == nil {
		tr := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   c.connectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		}
		// Timeout stays zero: every call carries a context deadline instead.
		c.httpClient = &http.Client{Transport: tr, Timeout: 0}
	}
	c.api = api.NewClient(base, c.httpClient)
	return c, nil
}

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// Generate performs one non-streaming completion. Transport failures are
// returned as typed errors (see IsUnreachable, IsTimeout, IsHTTPStatus, IsMalformed).
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	var out GenerateResponse
	if c.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.reqTimeout)
		defer cancel()
	}
	req.Stream = false
	body, err := json.Marshal(req)
	if err != nil {
		return out, fmt.Errorf("encode generate request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		err = classify(c.baseURL, err)
		observeBackend(outcomeOf(err), time.Since(start))
		return out, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err := statusError{code: resp.StatusCode, status: statusText(resp.StatusCode, resp.Status), body: strings.TrimSpace(string(b))}
		observeBackend(outcomeOf(err), time.Since(start))
		return out, err
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		err = classify(c.baseURL, err)
		observeBackend(outcomeOf(err), time.Since(start))
		return out, err
	}
	c.log.Debug().Str("model", req.Model).RawJSON("raw", rawOrQuoted(raw)).Msg("ollama response")
	if err := json.Unmarshal(raw, &out); err != nil {
		err = malformedError{err: err}
		observeBackend(outcomeOf(err), time.Since(start))
		return GenerateResponse{}, err
	}
	observeBackend("ok", time.Since(start))
	return out, nil
}

// Probe checks that the server answers and that model has been pulled.
// An empty model skips the second check.
func (c *Client) Probe(ctx context.Context, model string) error {
	if err := c.api.Heartbeat(ctx); err != nil {
		return classify(c.baseURL, err)
	}
	if model == "" {
		return nil
	}
	list, err := c.api.List(ctx)
	if err != nil {
		return classify(c.baseURL, err)
	}
	for _, m := range list.Models {
		if sameModel(m.Name, model) || sameModel(m.Model, model) {
			return nil
		}
	}
	return modelMissingError{model: model}
}

// sameModel compares tags, treating a bare name as ":latest".
func sameModel(have, want string) bool {
	if have == "" {
		return false
	}
	return withTag(have) == withTag(want)
}

func withTag(name string) string {
	if i := strings.LastIndex(name, ":"); i > strings.LastIndex(name, "/") {
		return name
	}
	return name + ":latest"
}

// rawOrQuoted keeps the debug log valid JSON even when the body is not.
func rawOrQuoted(raw []byte) []byte {
	if json.Valid(raw) {
		return raw
	}
	q, _ := json.Marshal(string(raw))
	return q
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsUnreachable(err):
		return "unreachable"
	case IsTimeout(err):
		return "timeout"
	case IsHTTPStatus(err):
		return "http_status"
	case IsMalformed(err):
		return "malformed"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "transport"
	}
}
