package scraper

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/neftit-lab/backend/config"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"golang.org/x/sync/singleflight"
)

const (
	StatusRunning        = "Running"
	StatusNotInitialized = "Not initialized"
)

// Session owns the http client used to load profile pages. It is created on first use and can be
// dropped with Reset; concurrent first uses share one initialization.
type Session struct {
	cfg   config.TwitterConfigs
	group singleflight.Group

	mu     sync.RWMutex
	client *http.Client
	inits  atomic.Int64

	randMu sync.Mutex
	rand   *rand.Rand
}

func NewSession(cfg config.TwitterConfigs) *Session {
	return &Session{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Session) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.client == nil {
		return StatusNotInitialized
	}

	return StatusRunning
}

// Initializations returns how many times the session has been created.
func (s *Session) Initializations() int64 {
	return s.inits.Load()
}

func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		s.client.CloseIdleConnections()
		s.client = nil
	}
}

func (s *Session) Close() {
	s.Reset()
}

// Profile loads and parses the public profile page of username.
func (s *Session) Profile(ctx context.Context, username string) (*Profile, error) {
	client, err := s.httpClient(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.ProfileURL+"/"+url.PathEscape(username), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent())
	req.Header.Set("Accept", "text/html")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile page of %s returned status %d", username, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if s.cfg.MaxPageSize > 0 {
		body = io.LimitReader(resp.Body, s.cfg.MaxPageSize)
	}

	return ParseProfile(username, body)
}

// Delay waits for a random duration between the configured bounds.
func (s *Session) Delay(ctx context.Context) error {
	d := s.cfg.DelayMin
	if spread := s.cfg.DelayMax - s.cfg.DelayMin; spread > 0 {
		s.randMu.Lock()
		d += time.Duration(s.rand.Int63n(int64(spread) + 1))
		s.randMu.Unlock()
	}

	if d <= 0 {
		return nil
	}

	xcontext.Logger(ctx).Debugf("Waiting %s before scraping", d)
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Session) httpClient(ctx context.Context) (*http.Client, error) {
	s.mu.RLock()
	client := s.client
	s.mu.RUnlock()
	if client != nil {
		return client, nil
	}

	v, err, _ := s.group.Do("init", func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.client != nil {
			return s.client, nil
		}

		xcontext.Logger(ctx).Infof("Initializing scraper session")
		s.client = &http.Client{
			Timeout:   s.cfg.Timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		}
		s.inits.Add(1)
		return s.client, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*http.Client), nil
}

func (s *Session) userAgent() string {
	if len(s.cfg.UserAgents) == 0 {
		return "Mozilla/5.0"
	}

	s.randMu.Lock()
	defer s.randMu.Unlock()
	return s.cfg.UserAgents[s.rand.Intn(len(s.cfg.UserAgents))]
}
