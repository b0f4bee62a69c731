package middleware

import (
	"context"
	"strings"

	"github.com/neftit-lab/backend/pkg/authenticator"
	"github.com/neftit-lab/backend/pkg/errorx"
	"github.com/neftit-lab/backend/pkg/router"
	"github.com/neftit-lab/backend/pkg/xcontext"
)

const RoleAdmin = "admin"

// AdminToken is the payload of tokens issued to operators.
type AdminToken struct {
	Role string `json:"role"`
}

// OnlyAdmin rejects requests without a valid admin bearer token.
func OnlyAdmin(engine authenticator.TokenEngine[AdminToken]) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		auth := xcontext.HTTPRequest(ctx).Header.Get("Authorization")
		token, found := strings.CutPrefix(auth, "Bearer ")
		if !found || token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		sub, obj, err := engine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid admin token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		if obj.Role != RoleAdmin {
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		return xcontext.WithRequestUserID(ctx, sub), nil
	}
}
