package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/panel-console/apierrors"
	panelerrors "github.com/jrsteele09/panel-console/internal/errors"
	"github.com/jrsteele09/panel-console/internal/ui"
	"github.com/jrsteele09/panel-console/tokens"
	"github.com/rs/zerolog/log"
)

const (
	headerRequestID   = "X-Request-ID"
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)

// Doer is the transport seam; *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Requester is what the resource services depend on.
type Requester interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Request describes one call relative to the base URL.
type Request struct {
	Method string
	Path   string
	Body   any // JSON encoded when non-nil
	Query  url.Values
}

// Response is a successful (status < 400) response with its body read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %w", panelerrors.ErrDecodeBody, err)
	}
	return nil
}

// UnauthorizedEvent is emitted once for every response with status 401.
type UnauthorizedEvent struct {
	Method    string
	Path      string
	RequestID string
}

// Client performs HTTP calls against the panel API, attaching the stored access
// token and tearing down the stored credentials on any 401.
type Client struct {
	baseURL url.URL
	doer    Doer
	tokens  tokens.Repo
	env     string

	observersLock sync.RWMutex
	observers     []func(UnauthorizedEvent)
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithEnv enables colourised request logging when env is "DEV".
func WithEnv(env string) Option {
	return func(c *Client) {
		c.env = env
	}
}

// New creates a client for baseURL (e.g. "https://panel.example.com/api/v1").
// The base URL cannot be changed afterwards.
func New(baseURL string, repo tokens.Repo, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("[client New] %w: %w", panelerrors.ErrInvalidBaseURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("[client New] %w: %q is not absolute", panelerrors.ErrInvalidBaseURL, baseURL)
	}
	if repo == nil {
		return nil, fmt.Errorf("[client New] token repo is required")
	}

	c := &Client{
		baseURL: *u,
		doer:    http.DefaultClient,
		tokens:  repo,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns a copy of the configured base URL.
func (c *Client) BaseURL() url.URL {
	return c.baseURL
}

// OnUnauthorized registers fn to be called after the client has cleared the
// stored tokens in response to a 401. Observers run synchronously in
// registration order.
func (c *Client) OnUnauthorized(fn func(UnauthorizedEvent)) {
	c.observersLock.Lock()
	defer c.observersLock.Unlock()
	c.observers = append(c.observers, fn)
}

// Do sends one request. Responses with status >= 400 are returned as
// *apierrors.HTTPError. There is no retry.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	requestID := uuid.New().String()

	httpReq, err := c.newHTTPRequest(ctx, req, requestID)
	if err != nil {
		return nil, err
	}

	if err := c.authorize(httpReq); err != nil {
		return nil, err
	}

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		log.Debug().Err(err).Str("request_id", requestID).Str("method", httpReq.Method).Str("path", req.Path).Msg("request failed")
		return nil, fmt.Errorf("[client Do] %s %s: %w", httpReq.Method, req.Path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("[client Do] read body: %w", err)
	}
	c.logResponse(httpReq.Method, req.Path, resp.StatusCode, requestID)

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(UnauthorizedEvent{Method: httpReq.Method, Path: req.Path, RequestID: requestID})
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, apierrors.NewHTTPError(resp.StatusCode, decodeErrorBody(body), body)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req Request, requestID string) (*http.Request, error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	target := c.resolve(req.Path)
	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("[client Do] %w: %w", panelerrors.ErrEncodeBody, err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("[client Do] %w", err)
	}
	httpReq.Header.Set(headerContentType, contentTypeJSON)
	httpReq.Header.Set(headerRequestID, requestID)
	return httpReq, nil
}

// resolve joins path onto the base URL. JoinPath keeps a trailing slash, which
// matters because "/users/" and "/users" are distinct backend routes.
func (c *Client) resolve(path string) *url.URL {
	return c.baseURL.JoinPath(path)
}

// authorize reads the access token from durable storage on every call.
func (c *Client) authorize(req *http.Request) error {
	token, ok, err := tokens.AccessToken(c.tokens)
	if err != nil {
		return fmt.Errorf("[client authorize] %w", err)
	}
	if !ok {
		return nil
	}
	tokens.Pair{AccessToken: token, TokenType: "bearer"}.OAuth2().SetAuthHeader(req)
	return nil
}

func (c *Client) handleUnauthorized(event UnauthorizedEvent) {
	if err := tokens.Clear(c.tokens); err != nil {
		log.Err(err).Str("request_id", event.RequestID).Msg("Failed to clear tokens after 401")
	}

	c.observersLock.RLock()
	observers := append([]func(UnauthorizedEvent){}, c.observers...)
	c.observersLock.RUnlock()

	for _, fn := range observers {
		fn(event)
	}
}

func (c *Client) logResponse(method, path string, status int, requestID string) {
	if c.env == "DEV" {
		log.Debug().Str("request_id", requestID).Msgf("[%-19s] %s %s", ui.ColourMethod(method), path, ui.ColourStatus(status))
		return
	}
	log.Debug().Str("request_id", requestID).Str("method", method).Str("path", path).Int("status", status).Msg("request")
}

func decodeErrorBody(body []byte) any {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil
	}
	return data
}
