package testutil

import (
	"context"
	"errors"

	"github.com/neftit-lab/backend/internal/domain/scraper"
)

type MockTwitterScraper struct {
	ProfileFunc func(ctx context.Context, username string) (*scraper.Profile, error)

	ProfileCalls int
	Resets       int
}

func (s *MockTwitterScraper) Profile(ctx context.Context, username string) (*scraper.Profile, error) {
	s.ProfileCalls++
	if s.ProfileFunc != nil {
		return s.ProfileFunc(ctx, username)
	}

	return nil, errors.New("not implemented")
}

func (s *MockTwitterScraper) Delay(ctx context.Context) error {
	return nil
}

func (s *MockTwitterScraper) Status() string {
	if s.ProfileCalls > 0 && s.Resets == 0 {
		return scraper.StatusRunning
	}

	return scraper.StatusNotInitialized
}

func (s *MockTwitterScraper) Reset() {
	s.Resets++
}
