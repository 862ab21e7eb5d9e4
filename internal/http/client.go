package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/decadog/internal/constants"
	"github.com/fivetwenty-io/decadog/pkg/api"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/net/http/httpguts"
)

// Client signs requests for one backend. It holds the base URL and a fixed
// header set built once at construction; every request gets its own copy.
type Client struct {
	baseURL   *url.URL
	headers   http.Header
	id        api.ClientID
	transport *retryablehttp.Client
	logger    *zap.Logger

	userAgent  string
	accept     string
	timeout    time.Duration
	httpClient *http.Client
}

// Request describes a call relative to the client's base URL. Segments are
// joined left to right; values taken from user input must be escaped with
// url.PathEscape by the caller.
type Request struct {
	Method   string
	Segments []string
	Query    url.Values
	Body     any
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request traces.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithAccept overrides the Accept header.
func WithAccept(accept string) Option {
	return func(c *Client) {
		if accept != "" {
			c.accept = accept
		}
	}
}

// WithTimeout sets the transport timeout for each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the pooled HTTP client used by the transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient validates the base URL and token and returns a signing client.
// The token is sent as "Authorization: token <token>".
func NewClient(baseURL, token string, options ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	authorization := constants.TokenScheme + token
	if !httpguts.ValidHeaderFieldValue(authorization) {
		return nil, &api.ConfigurationError{Description: "invalid token for Authorization header"}
	}

	client := &Client{
		baseURL:   base,
		id:        api.NewClientID([]byte(base.String()), []byte(token)),
		logger:    zap.NewNop(),
		userAgent: constants.DefaultUserAgent,
		accept:    constants.MediaTypeJSON,
		timeout:   constants.DefaultHTTPTimeout,
	}

	for _, option := range options {
		option(client)
	}

	if !httpguts.ValidHeaderFieldValue(client.userAgent) {
		return nil, &api.ConfigurationError{Description: fmt.Sprintf("invalid User-Agent header %q", client.userAgent)}
	}

	client.headers = http.Header{}
	client.headers.Set(constants.HeaderAuthorization, authorization)
	client.headers.Set(constants.HeaderAccept, client.accept)
	client.headers.Set(constants.HeaderUserAgent, client.userAgent)

	client.transport = client.newTransport()

	client.logger.Debug("created API client",
		zap.String("base_url", base.String()),
		zap.Stringer("client", client.id),
	)

	return client, nil
}

// ID returns the identity fingerprint of the client.
func (c *Client) ID() api.ClientID {
	return c.id
}

// BaseURL returns a copy of the normalized base URL.
func (c *Client) BaseURL() *url.URL {
	base := *c.baseURL

	return &base
}

// Logger returns the client's logger.
func (c *Client) Logger() *zap.Logger {
	return c.logger
}

// Target resolves segments against the base URL. Every segment must be a
// non-empty relative path: no scheme, host, leading slash, query, fragment or
// dot elements.
func (c *Client) Target(segments ...string) (*url.URL, error) {
	target := c.BaseURL()

	for _, segment := range segments {
		ref, err := parseSegment(segment)
		if err != nil {
			return nil, err
		}

		ensureTrailingSlash(target)
		target = target.ResolveReference(ref)
	}

	return target, nil
}

// Build resolves and signs req. The returned request carries its own copy
// of the header set.
func (c *Client) Build(ctx context.Context, req *Request) (*retryablehttp.Request, error) {
	target, err := c.Target(req.Segments...)
	if err != nil {
		return nil, err
	}

	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	var body any

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &api.ConfigurationError{Description: "encoding request body: " + err.Error()}
		}

		body = data
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, &api.ConfigurationError{Description: "building request: " + err.Error()}
	}

	httpReq.Header = c.headers.Clone()
	if body != nil {
		httpReq.Header.Set(constants.HeaderContentType, constants.MediaTypeJSON)
	}

	return httpReq, nil
}

// Do builds and sends req, returning the raw response. Failures before a
// response is received are returned as *api.TransportError.
func (c *Client) Do(ctx context.Context, req *Request) (*http.Response, error) {
	httpReq, err := c.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.transport.Do(httpReq)
	if err != nil {
		if resp != nil {
			drainAndClose(resp.Body)
		}

		return nil, &api.TransportError{Method: httpReq.Method, URL: httpReq.URL.String(), Err: err}
	}

	return resp, nil
}

// Send performs req and classifies the response, decoding a success body
// into T.
func Send[T any](ctx context.Context, c *Client, req *Request) (T, error) {
	var zero T

	resp, err := c.Do(ctx, req)
	if err != nil {
		return zero, err
	}

	return Classify[T](resp)
}

func (c *Client) newTransport() *retryablehttp.Client {
	transport := retryablehttp.NewClient()
	transport.Logger = nil
	transport.RetryMax = 0
	transport.CheckRetry = noRetry
	transport.ErrorHandler = retryablehttp.PassthroughErrorHandler

	if c.httpClient != nil {
		transport.HTTPClient = c.httpClient
	} else {
		transport.HTTPClient.Timeout = c.timeout
	}

	transport.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, _ int) {
		c.logger.Debug("HTTP request",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Stringer("client", c.id),
		)
	}

	transport.ResponseLogHook = func(_ retryablehttp.Logger, resp *http.Response) {
		c.logger.Debug("HTTP response",
			zap.String("method", resp.Request.Method),
			zap.String("url", resp.Request.URL.String()),
			zap.Int("status", resp.StatusCode),
			zap.Stringer("client", c.id),
		)
	}

	return transport
}

// noRetry stops after the first attempt. A done context still surfaces as
// the error.
func noRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	return false, ctx.Err()
}

func parseBaseURL(raw string) (*url.URL, error) {
	base, err := url.Parse(raw)
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, &api.ConfigurationError{Description: fmt.Sprintf("invalid base url %q", raw)}
	}

	base.RawQuery = ""
	base.Fragment = ""
	ensureTrailingSlash(base)

	return base, nil
}

func parseSegment(segment string) (*url.URL, error) {
	invalid := &api.ConfigurationError{Description: fmt.Sprintf("invalid path segment %q", segment)}

	if segment == "" || strings.HasPrefix(segment, "/") || strings.ContainsAny(segment, "?#") {
		return nil, invalid
	}

	ref, err := url.Parse(segment)
	if err != nil || ref.Scheme != "" || ref.Host != "" || ref.User != nil || ref.Opaque != "" {
		return nil, invalid
	}

	for element := range strings.SplitSeq(strings.TrimSuffix(ref.Path, "/"), "/") {
		if element == "" || element == "." || element == ".." {
			return nil, invalid
		}
	}

	return ref, nil
}

func ensureTrailingSlash(u *url.URL) {
	if strings.HasSuffix(u.Path, "/") {
		return
	}

	u.Path += "/"
	if u.RawPath != "" {
		u.RawPath += "/"
	}
}
