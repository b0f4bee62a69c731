package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mitchellh/mapstructure"
	"github.com/neftit-lab/backend/pkg/errorx"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"github.com/rs/cors"
)

type HandlerFunc[Request, Response any] func(context.Context, *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may return a new context for the following
// middlewares and the handler. A non-nil error stops the request.
type MiddlewareFunc func(context.Context) (context.Context, error)

// CloserFunc runs after the response is written, even if the request failed.
type CloserFunc func(context.Context)

type route struct {
	befores []MiddlewareFunc
	closers []CloserFunc
	handler func(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

type routeTable map[string]map[string]*route

type Router struct {
	base    context.Context
	routes  routeTable
	raw     map[string]http.Handler
	befores []MiddlewareFunc
	closers []CloserFunc
}

// New creates a router whose requests inherit the values of ctx (configs, logger, database...).
func New(ctx context.Context) *Router {
	return &Router{
		base:   ctx,
		routes: make(routeTable),
		raw:    make(map[string]http.Handler),
	}
}

// Branch returns a router sharing the routes of r. Middlewares added to the branch only apply to
// the routes registered on the branch.
func (r *Router) Branch() *Router {
	return &Router{
		base:    r.base,
		routes:  r.routes,
		raw:     r.raw,
		befores: append([]MiddlewareFunc{}, r.befores...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(middlewares ...MiddlewareFunc) {
	r.befores = append(r.befores, middlewares...)
}

func (r *Router) AddCloser(closers ...CloserFunc) {
	r.closers = append(r.closers, closers...)
}

// Handle registers a plain http.Handler for every method of pattern.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.raw[pattern] = handler
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodPost, pattern, handler)
}

func register[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	if _, ok := r.routes[pattern]; !ok {
		r.routes[pattern] = make(map[string]*route)
	}

	r.routes[pattern][method] = &route{
		befores: append([]MiddlewareFunc{}, r.befores...),
		closers: append([]CloserFunc{}, r.closers...),
		handler: func(ctx context.Context, w http.ResponseWriter, req *http.Request) error {
			var request Request
			if err := parseRequest(req, &request); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot parse request of %s: %v", pattern, err)
				return errorx.New(errorx.BadRequest, "Invalid request body").WithDetail(err.Error())
			}

			resp, err := handler(ctx, &request)
			if err != nil {
				return err
			}

			if err := writeJSON(w, http.StatusOK, resp); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
			}

			return nil
		},
	}
}

// Handler returns the http.Handler serving all registered routes with CORS enabled.
func (r *Router) Handler(allowedOrigins ...string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(r)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, ok := r.raw[req.URL.Path]; ok {
		h.ServeHTTP(w, req)
		return
	}

	rt, ok := r.routes[req.URL.Path][req.Method]
	if !ok {
		writeNotFound(w)
		return
	}

	ctx := context.Context(requestContext{Context: req.Context(), values: r.base})
	ctx = xcontext.WithHTTPRequest(ctx, req)

	err := func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				xcontext.Logger(ctx).Errorf("Panic when handling %s: %v", req.URL.Path, p)
				err = errorx.Unknown
			}
		}()

		for _, before := range rt.befores {
			newCtx, err := before(ctx)
			if err != nil {
				return err
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		return rt.handler(ctx, w, req)
	}()

	if err != nil {
		ctx = xcontext.WithError(ctx, err)
		writeError(ctx, w, err)
	}

	for _, closer := range rt.closers {
		closer(ctx)
	}
}

func parseRequest(req *http.Request, v any) error {
	switch req.Method {
	case http.MethodGet:
		query := map[string]any{}
		for key, values := range req.URL.Query() {
			if len(values) == 1 {
				query[key] = values[0]
			} else {
				query[key] = values
			}
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           v,
		})
		if err != nil {
			return err
		}

		return decoder.Decode(query)

	default:
		err := json.NewDecoder(req.Body).Decode(v)
		if errors.Is(err, io.EOF) {
			return nil
		}

		return err
	}
}

// requestContext carries the cancellation of the http request and falls back to the values of the
// router context.
type requestContext struct {
	context.Context
	values context.Context
}

func (c requestContext) Value(key any) any {
	if v := c.Context.Value(key); v != nil {
		return v
	}

	return c.values.Value(key)
}
