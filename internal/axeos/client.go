package axeos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MinerClient is the set of operations the shell relays to a miner.
// This interface is implemented by *Client and can be used for testing.
type MinerClient interface {
	FetchTelemetry(ctx context.Context, address string) (Telemetry, error)
	Restart(ctx context.Context, address string) (RestartResult, error)
	ApplySettings(ctx context.Context, address string, patch SettingsPatch) (string, error)
}

// Ensure Client implements MinerClient at compile time.
var _ MinerClient = (*Client)(nil)

// Client talks to the AxeOS HTTP API of a single miner per call. It holds only
// immutable settings; every operation builds and tears down its own transport.
type Client struct {
	scheme          string
	userAgent       string
	probeTimeout    time.Duration
	restartTimeout  time.Duration
	settingsTimeout time.Duration
	logger          *zap.Logger
}

const (
	DefaultUserAgent = "axedeck/1.0"

	defaultScheme          = "http"
	defaultProbeTimeout    = 5 * time.Second
	defaultRestartTimeout  = 5 * time.Second
	defaultSettingsTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20

	restartPath  = "/api/system/restart"
	settingsPath = "/api/system"

	restartMessage  = "Restart command sent"
	settingsMessage = "Settings updated successfully"
)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for probe and command diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent overrides the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithProbeTimeout sets the per-endpoint timeout used by FetchTelemetry.
func WithProbeTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.probeTimeout = d
		}
	}
}

// WithRestartTimeout sets the timeout for the restart command.
func WithRestartTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.restartTimeout = d
		}
	}
}

// WithSettingsTimeout sets the timeout for settings patches.
func WithSettingsTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.settingsTimeout = d
		}
	}
}

// WithScheme sets the URL scheme used for bare host:port addresses.
func WithScheme(scheme string) Option {
	return func(c *Client) {
		if scheme = strings.TrimSpace(scheme); scheme != "" {
			c.scheme = scheme
		}
	}
}

// NewClient builds a Client with the default timeouts and user agent.
func NewClient(opts ...Option) *Client {
	c := &Client{
		scheme:          defaultScheme,
		userAgent:       DefaultUserAgent,
		probeTimeout:    defaultProbeTimeout,
		restartTimeout:  defaultRestartTimeout,
		settingsTimeout: defaultSettingsTimeout,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchTelemetry probes the known telemetry endpoints in order and returns the
// first JSON document served with a success status. Later endpoints are not
// contacted once one succeeds.
func (c *Client) FetchTelemetry(ctx context.Context, address string) (Telemetry, error) {
	if c == nil {
		return Telemetry{}, fmt.Errorf("client is nil")
	}
	base, err := baseURL(c.scheme, address)
	if err != nil {
		return Telemetry{}, err
	}

	httpClient, release := c.session(c.probeTimeout)
	defer release()

	probe, doc, failures, ok := tryInOrder(telemetryProbes,
		func(p telemetryProbe) string { return p.path },
		func(p telemetryProbe) (json.RawMessage, error) {
			return c.probe(ctx, httpClient, base+p.path, p)
		},
	)
	if !ok {
		c.logger.Warn("telemetry probes exhausted",
			zap.String("address", address),
			zap.Int("attempts", len(failures)),
		)
		return Telemetry{}, &UnreachableError{Address: address, Failures: failures}
	}

	c.logger.Debug("fetched telemetry",
		zap.String("address", address),
		zap.String("endpoint", probe.path),
		zap.Int("bytes", len(doc)),
	)
	return Telemetry{Address: address, Endpoint: probe.path, Document: doc}, nil
}

func (c *Client) probe(ctx context.Context, httpClient *http.Client, target string, p telemetryProbe) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		c.logger.Debug("probe request failed", zap.String("url", target), zap.Error(err))
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		c.logger.Debug("probe returned status", zap.String("url", target), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w %d", ErrBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(body) > maxBodyBytes {
		c.logger.Debug("probe body over limit", zap.String("url", target), zap.Int("limit", maxBodyBytes))
		return nil, fmt.Errorf("%w (over %d bytes)", ErrResponseTooLarge, maxBodyBytes)
	}
	doc, err := p.parse(body)
	if err != nil {
		c.logger.Debug("probe body rejected", zap.String("url", target), zap.Error(err))
		return nil, err
	}
	return doc, nil
}

// Restart asks the miner to reboot. Any completed response counts as success
// because the firmware may drop the connection while restarting; the status is
// reported back for diagnostics only. Exactly one attempt is made.
func (c *Client) Restart(ctx context.Context, address string) (RestartResult, error) {
	if c == nil {
		return RestartResult{}, fmt.Errorf("client is nil")
	}
	base, err := baseURL(c.scheme, address)
	if err != nil {
		return RestartResult{}, err
	}

	httpClient, release := c.session(c.restartTimeout)
	defer release()

	req, err := c.newRequest(ctx, http.MethodPost, base+restartPath, nil)
	if err != nil {
		return RestartResult{}, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		c.logger.Warn("restart request failed", zap.String("address", address), zap.Error(err))
		return RestartResult{}, &UnreachableError{
			Address:  address,
			Failures: []ProbeFailure{{Endpoint: restartPath, Err: err}},
		}
	}
	// The body is irrelevant and the connection may already be gone.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		c.logger.Info("restart answered with non-success status",
			zap.String("address", address),
			zap.Int("status", resp.StatusCode),
		)
	}
	return RestartResult{Message: restartMessage, StatusCode: resp.StatusCode}, nil
}

// ApplySettings sends the populated fields of patch to the miner. A non-2xx
// reply is returned as a *SettingsRejectedError carrying the body unmodified.
func (c *Client) ApplySettings(ctx context.Context, address string, patch SettingsPatch) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	base, err := baseURL(c.scheme, address)
	if err != nil {
		return "", err
	}
	payload, err := patch.Payload()
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}

	httpClient, release := c.session(c.settingsTimeout)
	defer release()

	req, err := c.newRequest(ctx, http.MethodPatch, base+settingsPath, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("sending settings patch",
		zap.String("address", address),
		zap.Strings("keys", patch.Keys()),
	)

	resp, err := httpClient.Do(req)
	if err != nil {
		c.logger.Warn("settings request failed", zap.String("address", address), zap.Error(err))
		return "", &UnreachableError{
			Address:  address,
			Failures: []ProbeFailure{{Endpoint: settingsPath, Err: err}},
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if isSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return settingsMessage, nil
	}

	// Whatever was read before a failure is still the firmware's message.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.logger.Warn("settings rejected",
		zap.String("address", address),
		zap.Int("status", resp.StatusCode),
	)
	return "", &SettingsRejectedError{StatusCode: resp.StatusCode, Body: string(body)}
}

// session returns an http.Client scoped to one operation and the function that
// releases its connections.
func (c *Client) session(timeout time.Duration) (*http.Client, func()) {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: -1,
		}).DialContext,
		DisableKeepAlives:     true,
		ResponseHeaderTimeout: timeout,
	}
	client := &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return client, transport.CloseIdleConnections
}

func (c *Client) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Del("Origin")
	return req, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// baseURL turns a caller-supplied address ("10.0.0.5", "10.0.0.5:8080" or a
// full URL) into scheme://host without a trailing path.
func baseURL(scheme, address string) (string, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return "", fmt.Errorf("miner address is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = scheme + "://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse miner address %q: %w", address, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("miner address %q has no host", address)
	}
	return u.Scheme + "://" + u.Host, nil
}
