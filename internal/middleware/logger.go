package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/neftit-lab/backend/pkg/errorx"
	"github.com/neftit-lab/backend/pkg/router"
	"github.com/neftit-lab/backend/pkg/xcontext"
)

// Logger writes one line per request. Domain errors are warnings, anything else is an error.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		log := xcontext.Logger(ctx)

		elapsed := time.Duration(0)
		if start := xcontext.StartTime(ctx); !start.IsZero() {
			elapsed = time.Since(start).Round(time.Millisecond)
		}

		err := xcontext.Error(ctx)
		var errx errorx.Error
		switch {
		case err == nil:
			log.Infof("%s %s (%s)", req.Method, req.URL.Path, elapsed)
		case errors.As(err, &errx):
			log.Warnf("%s %s (%s) code=%d: %s", req.Method, req.URL.Path, elapsed, errx.Code, errx.Message)
		default:
			log.Errorf("%s %s (%s): %v", req.Method, req.URL.Path, elapsed, err)
		}
	}
}
