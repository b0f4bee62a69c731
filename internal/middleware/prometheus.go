package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/neftit-lab/backend/internal/common"
	"github.com/neftit-lab/backend/pkg/errorx"
	"github.com/neftit-lab/backend/pkg/router"
	"github.com/neftit-lab/backend/pkg/xcontext"
)

func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithStartTime(ctx, time.Now()), nil
	}
}

func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		status := http.StatusOK
		if err := xcontext.Error(ctx); err != nil {
			status = errorx.HTTPStatus(err)
		}

		path := xcontext.HTTPRequest(ctx).URL.Path
		code := strconv.Itoa(status)

		common.IncCounter(common.HTTPRequestTotal, path, code)

		if startTime := xcontext.StartTime(ctx); !startTime.IsZero() {
			if histogram, ok := common.PromHistograms[common.HTTPRequestDurationSeconds]; ok {
				histogram.WithLabelValues(path, code).Observe(time.Since(startTime).Seconds())
			}
		}
	}
}
