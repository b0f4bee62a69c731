package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/neftit-lab/backend/pkg/xcontext"
)

// ErrNoEndpoint is returned when no base url of the generator could be reached.
var ErrNoEndpoint = errors.New("all endpoints got errors")

type Client interface {
	Header(name, value string) Client
	Query(query Parameter) Client
	Body(body Body) Client
	POST(ctx context.Context, opts ...Opt) (*Response, error)
	GET(ctx context.Context, opts ...Opt) (*Response, error)
}

type Generator interface {
	New(path string, args ...any) Client
}

type Body interface {
	ToReader() (io.Reader, string, error)
}

// Opt changes an outgoing request right before it is sent.
type Opt func(req *http.Request)

// Authorization sets the Authorization header to "<scheme> <token>".
func Authorization(scheme, token string) Opt {
	return func(req *http.Request) {
		req.Header.Set("Authorization", scheme+" "+token)
	}
}

func UserAgent(agent string) Opt {
	return func(req *http.Request) {
		req.Header.Set("User-Agent", agent)
	}
}

type defaultGenerator struct {
	baseURLs []string
}

// NewGenerator returns a Generator whose clients call the base urls in order, moving to the next
// one only when a url cannot be reached.
func NewGenerator(baseURLs ...string) *defaultGenerator {
	urls := make([]string, 0, len(baseURLs))
	for _, u := range baseURLs {
		urls = append(urls, strings.TrimSuffix(u, "/"))
	}

	return &defaultGenerator{baseURLs: urls}
}

func (g *defaultGenerator) New(path string, args ...any) Client {
	return &defaultClient{
		baseURLs: g.baseURLs,
		path:     fmt.Sprintf(path, args...),
		headers:  make(http.Header),
	}
}

type defaultClient struct {
	baseURLs []string
	path     string
	headers  http.Header
	query    Parameter
	body     Body
}

func (c *defaultClient) Header(name, value string) Client {
	c.headers.Set(name, value)
	return c
}

func (c *defaultClient) Query(query Parameter) Client {
	c.query = query
	return c
}

func (c *defaultClient) Body(body Body) Client {
	c.body = body
	return c
}

func (c *defaultClient) POST(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.do(ctx, http.MethodPost, opts)
}

func (c *defaultClient) GET(ctx context.Context, opts ...Opt) (*Response, error) {
	return c.do(ctx, http.MethodGet, opts)
}

func (c *defaultClient) do(ctx context.Context, method string, opts []Opt) (*Response, error) {
	for _, baseURL := range c.baseURLs {
		req, err := c.newRequest(ctx, method, baseURL, opts)
		if err != nil {
			return nil, err
		}

		resp, err := xcontext.HTTPClient(ctx).Do(req)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot call %s %s: %v", method, req.URL, err)
			continue
		}

		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot read body of %s %s: %v", method, req.URL, err)
			continue
		}

		return &Response{
			Code:    resp.StatusCode,
			Header:  resp.Header,
			Body:    decodeBody(raw),
			RawBody: raw,
		}, nil
	}

	return nil, ErrNoEndpoint
}

func (c *defaultClient) newRequest(ctx context.Context, method, baseURL string, opts []Opt) (*http.Request, error) {
	url := baseURL + c.path
	if len(c.query) > 0 {
		url += "?" + c.query.Encode()
	}

	var reader io.Reader
	var contentType string
	if c.body != nil {
		var err error
		reader, contentType, err = c.body.ToReader()
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	for name, values := range c.headers {
		req.Header[name] = append([]string{}, values...)
	}

	for _, opt := range opts {
		opt(req)
	}

	return req, nil
}
