package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/neftit-lab/backend/pkg/errorx"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type echoResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing required parameter: name")
	}

	if req.Name == "panic" {
		panic("boom")
	}

	return &echoResponse{Success: true, Message: strings.Repeat(req.Name, req.Count)}, nil
}

func serve(t *testing.T, h http.Handler, method, target, body string) (int, map[string]any) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	result := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return rec.Code, result
}

func TestRouter(t *testing.T) {
	r := New(context.Background())
	POST(r, "/echo", echo)
	GET(r, "/echo-get", echo)

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "post ok",
			method:     http.MethodPost,
			target:     "/echo",
			body:       `{"name":"ab","count":2}`,
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"success": true, "message": "abab"},
		},
		{
			name:       "get with query",
			method:     http.MethodGet,
			target:     "/echo-get?name=x&count=3",
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"success": true, "message": "xxx"},
		},
		{
			name:       "domain error",
			method:     http.MethodPost,
			target:     "/echo",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantBody: map[string]any{
				"success": false,
				"code":    float64(errorx.BadRequest),
				"message": "Missing required parameter: name",
				"error":   "Missing required parameter: name",
			},
		},
		{
			name:       "invalid json",
			method:     http.MethodPost,
			target:     "/echo",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "panic",
			method:     http.MethodPost,
			target:     "/echo",
			body:       `{"name":"panic"}`,
			wantStatus: http.StatusInternalServerError,
			wantBody: map[string]any{
				"success": false,
				"code":    float64(errorx.Unknown.Code),
				"message": errorx.Unknown.Message,
				"error":   errorx.Unknown.Message,
			},
		},
		{
			name:       "not found",
			method:     http.MethodPost,
			target:     "/unknown",
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]any{"success": false, "message": "Endpoint not found"},
		},
		{
			name:       "wrong method",
			method:     http.MethodGet,
			target:     "/echo",
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]any{"success": false, "message": "Endpoint not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serve(t, r, tt.method, tt.target, tt.body)
			require.Equal(t, tt.wantStatus, status)
			if tt.wantBody != nil {
				require.Equal(t, tt.wantBody, body)
			}
		})
	}
}

func TestRouter_BranchMiddlewareAndCloser(t *testing.T) {
	r := New(context.Background())
	POST(r, "/public", echo)

	var closedErr error
	closed := 0

	guarded := r.Branch()
	guarded.Before(func(ctx context.Context) (context.Context, error) {
		if xcontext.HTTPRequest(ctx).Header.Get("Authorization") == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Unauthenticated")
		}
		return xcontext.WithRequestUserID(ctx, "admin"), nil
	})
	guarded.AddCloser(func(ctx context.Context) {
		closed++
		closedErr = xcontext.Error(ctx)
	})
	POST(guarded, "/private", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Success: true, Message: xcontext.RequestUserID(ctx)}, nil
	})

	status, _ := serve(t, r, http.MethodPost, "/public", `{"name":"a","count":1}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 0, closed)

	status, body := serve(t, r, http.MethodPost, "/private", `{}`)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, false, body["success"])
	require.Equal(t, 1, closed)
	require.Error(t, closedErr)

	req := httptest.NewRequest(http.MethodPost, "/private", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer x")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"message":"admin"}`, rec.Body.String())
	require.Equal(t, 2, closed)
	require.NoError(t, closedErr)
}

func TestRouter_RawHandler(t *testing.T) {
	r := New(context.Background())
	r.Handle("/metrics", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	status, body := serve(t, r.Handler(), http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["ok"])
}
