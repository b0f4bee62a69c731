package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/neftit-lab/backend/config"
	"github.com/neftit-lab/backend/pkg/logger"
	"github.com/neftit-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return xcontext.WithLogger(context.Background(), logger.NewLogger(logger.SILENCE))
}

func TestSession_Profile(t *testing.T) {
	agents := make(chan string, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/alice" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		agents <- r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(profilePage))
	}))
	defer server.Close()

	session := NewSession(config.TwitterConfigs{
		ProfileURL: server.URL,
		Timeout:    time.Second,
		UserAgents: []string{"test-agent"},
	})
	require.Equal(t, StatusNotInitialized, session.Status())

	ctx := testContext()
	profile, err := session.Profile(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, profile.Tweets, 2)
	require.Equal(t, "test-agent", <-agents)
	require.Equal(t, StatusRunning, session.Status())

	_, err = session.Profile(ctx, "nobody")
	require.Error(t, err)

	session.Reset()
	require.Equal(t, StatusNotInitialized, session.Status())
}

func TestSession_InitializesOnce(t *testing.T) {
	session := NewSession(config.TwitterConfigs{Timeout: time.Second})
	ctx := testContext()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = session.httpClient(ctx)
		}()
	}
	wg.Wait()

	require.Equal(t, int64(1), session.Initializations())

	session.Reset()
	_, err := session.httpClient(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), session.Initializations())
}

func TestSession_Delay(t *testing.T) {
	session := NewSession(config.TwitterConfigs{DelayMin: time.Hour, DelayMax: 2 * time.Hour})

	ctx, cancel := context.WithCancel(testContext())
	cancel()
	require.ErrorIs(t, session.Delay(ctx), context.Canceled)

	session = NewSession(config.TwitterConfigs{})
	require.NoError(t, session.Delay(testContext()))
}
