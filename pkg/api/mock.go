package api

import (
	"context"
	"fmt"
)

// MockAPIGenerator hands out MockClient for every path and records the paths.
type MockAPIGenerator struct {
	MockClient MockAPIClient
	Paths      []string
}

func (m *MockAPIGenerator) New(path string, args ...any) Client {
	m.Paths = append(m.Paths, fmt.Sprintf(path, args...))
	return &m.MockClient
}

type MockAPIClient struct {
	POSTFunc func(ctx context.Context, opts ...Opt) (*Response, error)
	GETFunc  func(ctx context.Context, opts ...Opt) (*Response, error)

	Headers map[string]string
	Params  Parameter
	Payload Body
}

func (c *MockAPIClient) Header(name, value string) Client {
	if c.Headers == nil {
		c.Headers = map[string]string{}
	}
	c.Headers[name] = value
	return c
}

func (c *MockAPIClient) Query(query Parameter) Client {
	c.Params = query
	return c
}

func (c *MockAPIClient) Body(body Body) Client {
	c.Payload = body
	return c
}

func (c *MockAPIClient) POST(ctx context.Context, opts ...Opt) (*Response, error) {
	if c.POSTFunc == nil {
		return nil, ErrNoEndpoint
	}

	return c.POSTFunc(ctx, opts...)
}

func (c *MockAPIClient) GET(ctx context.Context, opts ...Opt) (*Response, error) {
	if c.GETFunc == nil {
		return nil, ErrNoEndpoint
	}

	return c.GETFunc(ctx, opts...)
}
