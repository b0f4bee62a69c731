package discord

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRateLimit = errors.New("rate limit")
	ErrNotMember = errors.New("user is not a member of the guild")
)

// StatusError is an unsuccessful response other than 404 and 429.
type StatusError struct {
	Status int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("Discord API returned status: %d", e.Status)
}

// RateLimitError reports that a resource cannot be called before ResetAt.
type RateLimitError struct {
	ResetAt time.Time
}

func (e RateLimitError) Error() string {
	return fmt.Sprintf("rate limit until %s", e.ResetAt.Format(time.RFC3339))
}

func (e RateLimitError) Is(target error) bool {
	return target == ErrRateLimit
}

// IsRateLimit returns the reset time if err is, or wraps, a RateLimitError.
func IsRateLimit(err error) (time.Time, bool) {
	var rateErr RateLimitError
	if !errors.As(err, &rateErr) {
		return time.Time{}, false
	}

	return rateErr.ResetAt, true
}
