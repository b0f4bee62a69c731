package nftclaim

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neftit-lab/backend/internal/common"
	"github.com/neftit-lab/backend/pkg/wallet"
	"github.com/neftit-lab/backend/pkg/xcontext"
)

type Attempt struct {
	Strategy string
	Err      error
}

// AggregateError is returned when every strategy failed.
type AggregateError struct {
	Attempts []Attempt
}

func (e *AggregateError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Strategy, a.Err))
	}

	return "all claim strategies failed: " + strings.Join(parts, "; ")
}

func (e *AggregateError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}

	return errs
}

type Runner struct {
	strategies []Strategy
}

func NewRunner(strategies ...Strategy) *Runner {
	return &Runner{strategies: strategies}
}

// Run tries the strategies in order and returns the first successful receipt. A rejection by the
// user stops the run.
func (r *Runner) Run(ctx context.Context, req ClaimRequest) (*ClaimReceipt, error) {
	aggregate := &AggregateError{}
	for _, strategy := range r.strategies {
		if err := ctx.Err(); err != nil {
			aggregate.Attempts = append(aggregate.Attempts, Attempt{Strategy: strategy.Name(), Err: err})
			break
		}

		receipt, err := strategy.Claim(ctx, req)
		if err == nil {
			common.IncCounter(common.NFTClaimAttemptTotal, strategy.Name(), "success")
			return receipt, nil
		}

		common.IncCounter(common.NFTClaimAttemptTotal, strategy.Name(), "failure")
		xcontext.Logger(ctx).Warnf("Claim strategy %s failed: %v", strategy.Name(), err)
		aggregate.Attempts = append(aggregate.Attempts, Attempt{Strategy: strategy.Name(), Err: err})

		if wallet.IsUserRejected(err) {
			break
		}
	}

	if len(aggregate.Attempts) == 0 {
		return nil, errors.New("no claim strategy configured")
	}

	return nil, aggregate
}
