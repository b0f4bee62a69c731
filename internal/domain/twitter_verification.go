package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/structs"
	"github.com/neftit-lab/backend/config"
	"github.com/neftit-lab/backend/internal/domain/scraper"
	"github.com/neftit-lab/backend/internal/model"
	"github.com/neftit-lab/backend/pkg/errorx"
	"github.com/neftit-lab/backend/pkg/xcontext"
)

type TwitterScraper interface {
	Profile(ctx context.Context, username string) (*scraper.Profile, error)
	Delay(ctx context.Context) error
	Status() string
	Reset()
}

type TwitterVerificationDomain interface {
	VerifyRetweet(context.Context, *model.VerifyRetweetRequest) (*model.VerifyRetweetResponse, error)
	VerifyTweet(context.Context, *model.VerifyTweetRequest) (*model.VerifyTweetResponse, error)
	VerifyFollow(context.Context, *model.VerifyFollowRequest) (*model.VerifyFollowResponse, error)
	ResetBrowser(context.Context, *model.ResetBrowserRequest) (*model.ResetBrowserResponse, error)
	ClearCache(context.Context, *model.ClearCacheRequest) (*model.ClearCacheResponse, error)
	Health(context.Context, *model.TwitterHealthRequest) (*model.TwitterHealthResponse, error)
}

type twitterVerificationDomain struct {
	cfg     config.TwitterConfigs
	scraper TwitterScraper
	cache   *scraper.TaskCache
}

type tweetResult struct {
	found bool
	tweet string
}

func NewTwitterVerificationDomain(
	cfg config.TwitterConfigs, s TwitterScraper, cache *scraper.TaskCache,
) *twitterVerificationDomain {
	return &twitterVerificationDomain{cfg: cfg, scraper: s, cache: cache}
}

func (d *twitterVerificationDomain) VerifyRetweet(
	ctx context.Context, req *model.VerifyRetweetRequest,
) (*model.VerifyRetweetResponse, error) {
	if req.Username == "" || req.TweetURL == "" {
		return nil, errorx.New(errorx.BadRequest, "Username and tweet URL are required").
			WithDetail("Missing required parameters")
	}

	tweetID, ok := scraper.ExtractTweetID(req.TweetURL)
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Invalid tweet URL format").
			WithDetail("Could not extract tweet ID from URL")
	}

	verified, err := cachedCheck(ctx, d, scraper.RetweetKey(req.Username, tweetID), req.Username,
		func(p *scraper.Profile) bool { return p.HasRetweeted(tweetID) })
	if err != nil {
		return nil, errorx.New(errorx.BadResponse, "Failed to verify retweet").WithDetail("%v", err)
	}

	resp := &model.VerifyRetweetResponse{
		Success:    true,
		IsVerified: verified,
		Details: model.RetweetDetails{
			Username:  req.Username,
			TweetURL:  req.TweetURL,
			TweetID:   tweetID,
			CheckedAt: time.Now().UTC(),
		},
	}

	if verified {
		resp.Message = fmt.Sprintf("@%s has retweeted the specified tweet!", req.Username)
	} else {
		resp.Message = fmt.Sprintf("@%s has not retweeted the specified tweet", req.Username)
	}

	return resp, nil
}

func (d *twitterVerificationDomain) VerifyTweet(
	ctx context.Context, req *model.VerifyTweetRequest,
) (*model.VerifyTweetResponse, error) {
	if req.Username == "" || len(req.Keywords) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Username and keywords array are required").
			WithDetail("Missing or invalid parameters")
	}

	result, err := cachedCheck(ctx, d, scraper.TweetKey(req.Username, req.Keywords), req.Username,
		func(p *scraper.Profile) tweetResult {
			tweet, found := p.TweetWithKeywords(req.Keywords)
			return tweetResult{found: found, tweet: tweet}
		})
	if err != nil {
		return nil, errorx.New(errorx.BadResponse, "Failed to verify tweet").WithDetail("%v", err)
	}

	resp := &model.VerifyTweetResponse{
		Success:    true,
		IsVerified: result.found,
		Details: model.TweetDetails{
			Username:  req.Username,
			Keywords:  req.Keywords,
			Tweet:     result.tweet,
			CheckedAt: time.Now().UTC(),
		},
	}

	if result.found {
		resp.Message = fmt.Sprintf("@%s has posted a tweet containing the required keywords!", req.Username)
	} else {
		resp.Message = fmt.Sprintf("@%s has not posted a tweet with the required keywords", req.Username)
	}

	return resp, nil
}

func (d *twitterVerificationDomain) VerifyFollow(
	ctx context.Context, req *model.VerifyFollowRequest,
) (*model.VerifyFollowResponse, error) {
	if req.Username == "" || req.TargetUsername == "" {
		return nil, errorx.New(errorx.BadRequest, "Username and target username are required").
			WithDetail("Missing required parameters")
	}

	verified, err := cachedCheck(ctx, d, scraper.FollowKey(req.Username, req.TargetUsername), req.Username,
		func(p *scraper.Profile) bool { return p.Follows(req.TargetUsername) })
	if err != nil {
		return nil, errorx.New(errorx.BadResponse, "Failed to verify follow status").WithDetail("%v", err)
	}

	resp := &model.VerifyFollowResponse{
		Success:    true,
		IsVerified: verified,
		Details: model.FollowDetails{
			Username:       req.Username,
			TargetUsername: req.TargetUsername,
			CheckedAt:      time.Now().UTC(),
		},
	}

	if verified {
		resp.Message = fmt.Sprintf("@%s is following @%s!", req.Username, req.TargetUsername)
	} else {
		resp.Message = fmt.Sprintf("@%s is not following @%s", req.Username, req.TargetUsername)
	}

	return resp, nil
}

func (d *twitterVerificationDomain) ResetBrowser(
	ctx context.Context, req *model.ResetBrowserRequest,
) (*model.ResetBrowserResponse, error) {
	d.scraper.Reset()
	removed := d.cache.Clear()
	xcontext.Logger(ctx).Infof("Scraper session reset, %d cached results removed", removed)

	return &model.ResetBrowserResponse{
		Success: true,
		Message: "Browser instance and cache reset successfully",
	}, nil
}

func (d *twitterVerificationDomain) ClearCache(
	ctx context.Context, req *model.ClearCacheRequest,
) (*model.ClearCacheResponse, error) {
	removed := d.cache.Clear()

	return &model.ClearCacheResponse{
		Success: true,
		Message: fmt.Sprintf("Cache cleared successfully. Removed %d entries.", removed),
		Removed: removed,
	}, nil
}

func (d *twitterVerificationDomain) Health(
	ctx context.Context, req *model.TwitterHealthRequest,
) (*model.TwitterHealthResponse, error) {
	return &model.TwitterHealthResponse{
		Success:       true,
		Message:       "Twitter verification service is running",
		Timestamp:     time.Now().UTC(),
		BrowserStatus: d.scraper.Status(),
		CacheSize:     d.cache.Len(),
		Config: structs.Map(model.TwitterHealthConfig{
			DelayRange:   fmt.Sprintf("%d-%dms", d.cfg.DelayMin.Milliseconds(), d.cfg.DelayMax.Milliseconds()),
			Timeout:      fmt.Sprintf("%dms", d.cfg.Timeout.Milliseconds()),
			UserAgents:   len(d.cfg.UserAgents),
			CacheEnabled: true,
			CacheTTL:     d.cfg.CacheTTL.String(),
		}),
	}, nil
}

// cachedCheck answers check from the task cache, or loads the profile of username after the
// anti rate-limit delay. Failed loads are not cached.
func cachedCheck[T any](
	ctx context.Context,
	d *twitterVerificationDomain,
	key, username string,
	check func(*scraper.Profile) T,
) (T, error) {
	if v, ok := d.cache.Get(key); ok {
		if result, ok := v.(T); ok {
			xcontext.Logger(ctx).Debugf("Use cached result of %s", key)
			return result, nil
		}
	}

	var zero T
	if err := d.scraper.Delay(ctx); err != nil {
		return zero, err
	}

	profile, err := d.scraper.Profile(ctx, username)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load profile of %s: %v", username, err)
		return zero, err
	}

	result := check(profile)
	d.cache.Set(key, result)
	return result, nil
}
