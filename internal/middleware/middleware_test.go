package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/neftit-lab/backend/config"
	"github.com/neftit-lab/backend/pkg/authenticator"
	"github.com/neftit-lab/backend/pkg/router"
	"github.com/neftit-lab/backend/pkg/testutil"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type whoamiRequest struct{}

type whoamiResponse struct {
	Success bool   `json:"success"`
	Subject string `json:"subject"`
}

func whoami(ctx context.Context, req *whoamiRequest) (*whoamiResponse, error) {
	return &whoamiResponse{Success: true, Subject: xcontext.RequestUserID(ctx)}, nil
}

func call(h http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(`{}`))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestOnlyAdmin(t *testing.T) {
	ctx := testutil.MockContext()
	engine := authenticator.NewTokenEngine[AdminToken](xcontext.Configs(ctx).Auth.AdminToken)

	r := router.New(ctx)
	r.Before(WithStartTime(), OnlyAdmin(engine))
	r.AddCloser(Logger(), Prometheus())
	router.POST(r, "/whoami", whoami)

	adminToken, err := engine.Generate("ops", AdminToken{Role: RoleAdmin})
	require.NoError(t, err)
	viewerToken, err := engine.Generate("bob", AdminToken{Role: "viewer"})
	require.NoError(t, err)
	foreignToken, err := authenticator.NewTokenEngine[AdminToken](config.TokenConfigs{
		Secret: "other", Expiration: time.Minute,
	}).Generate("eve", AdminToken{Role: RoleAdmin})
	require.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{name: "admin", token: adminToken, wantStatus: http.StatusOK},
		{name: "no token", wantStatus: http.StatusUnauthorized},
		{name: "foreign token", token: foreignToken, wantStatus: http.StatusUnauthorized},
		{name: "not admin", token: viewerToken, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(r, http.MethodPost, "/whoami", tt.token)
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.JSONEq(t, `{"success":true,"subject":"ops"}`, rec.Body.String())
			}
		})
	}
}

func TestRequireDiscordBotToken(t *testing.T) {
	cfg := testutil.MockConfigs()
	cfg.Discord.BotToken = ""
	ctx := xcontext.WithConfigs(testutil.MockContext(), cfg)

	r := router.New(ctx)
	r.Before(RequireDiscordBotToken())
	router.POST(r, "/verify", whoami)

	rec := call(r, http.MethodPost, "/verify", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Discord bot token not configured on server")

	r = router.New(testutil.MockContext())
	r.Before(RequireDiscordBotToken())
	router.POST(r, "/verify", whoami)

	rec = call(r, http.MethodPost, "/verify", "")
	require.Equal(t, http.StatusOK, rec.Code)
}
