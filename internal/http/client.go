package http

import (
	"context"
	"crypto/tls"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultTimeout is the transport timeout used when none is configured.
const DefaultTimeout = 30 * time.Second

// Client owns the base address and the transport that requests are sent
// through. It is read-only once constructed and safe to share.
type Client struct {
	rc                 *resty.Client
	baseURL            string
	headers            map[string]string
	insecureSkipVerify bool
	logger             *zap.Logger
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// NewClient creates a new HTTP client with the given options.
// Certificate verification is on unless WithInsecureSkipVerify(true) is given.
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		rc:      resty.New().SetTimeout(DefaultTimeout),
		headers: make(map[string]string),
		logger:  zap.NewNop(),
	}

	for _, option := range options {
		option(client)
	}

	client.rc.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: client.insecureSkipVerify}) //nolint:gosec // opt-in for local targets
	client.rc.SetLogger(client.logger.Sugar())

	return client
}

// WithBaseURL sets the address every request target is prefixed with.
// A trailing slash is removed so that paths can start with one.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithTimeout sets the timeout for the client
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.rc.SetTimeout(timeout)
	}
}

// WithInsecureSkipVerify disables certificate verification. Only meant for
// local development targets with self-signed certificates.
func WithInsecureSkipVerify(skip bool) ClientOption {
	return func(c *Client) {
		c.insecureSkipVerify = skip
	}
}

// WithHeader adds a header to every request sent by the client
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithLogger sets the logger exchanges are reported to.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewRequest creates an empty request bound to this client.
func (c *Client) NewRequest() *Request {
	return &Request{client: c}
}

// BaseURL returns the address request targets are built from.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// InsecureSkipVerify reports whether certificate verification is disabled.
func (c *Client) InsecureSkipVerify() bool {
	return c.insecureSkipVerify
}

// Timeout returns the transport timeout.
func (c *Client) Timeout() time.Duration {
	return c.rc.GetClient().Timeout
}

func (c *Client) do(ctx context.Context, req *Request) (*Response, error) {
	payload, err := req.encodeBody()
	if err != nil {
		return nil, err
	}

	rr := c.rc.R().
		SetContext(ctx).
		EnableTrace().
		SetHeaders(c.headers)

	if len(req.parameters) > 0 {
		rr.SetQueryParamsFromValues(req.queryValues())
	}
	if payload != nil {
		rr.SetHeader("Content-Type", jsonContentType).SetBody(payload)
	}

	method := req.method.String()
	log := c.logger.With(zap.String("method", method), zap.String("target", req.target))

	rresp, err := rr.Execute(method, req.target)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return nil, err
	}
	if rresp.RawResponse == nil {
		return nil, errors.New("http: transport returned no response")
	}

	trace := rresp.Request.TraceInfo()
	timing := TimingInfo{
		DNSLookupTime:    trace.DNSLookup,
		TCPConnectTime:   trace.TCPConnTime,
		TLSHandshakeTime: trace.TLSHandshake,
		ServerTime:       trace.ServerTime,
		TotalTime:        trace.TotalTime,
	}
	if timing.TotalTime <= 0 {
		timing.TotalTime = rresp.Time()
	}

	log.Debug("request completed",
		zap.Int("status", rresp.StatusCode()),
		zap.Duration("duration", timing.TotalTime),
		zap.Int("bytes", len(rresp.Body())),
	)

	return newResponse(req, rresp.StatusCode(), rresp.Status(), rresp.Header(), rresp.Body(), timing), nil
}
