package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/neftit-lab/backend/config"
	"github.com/neftit-lab/backend/pkg/api"
	"github.com/puzpuzpuz/xsync"
)

const userAgent = "DiscordBot (https://neftit.com, 1.0)"

const getMemberResource = "get_member"

type Endpoint struct {
	BotToken string

	apiGenerator      api.Generator
	rateLimitResource *xsync.MapOf[string, *xsync.MapOf[string, time.Time]]
}

func New(cfg config.DiscordConfigs) *Endpoint {
	return &Endpoint{
		BotToken:          cfg.BotToken,
		apiGenerator:      api.NewGenerator(cfg.APIURL),
		rateLimitResource: xsync.NewMapOf[*xsync.MapOf[string, time.Time]](),
	}
}

// GetMember returns the guild member of userID. It returns ErrNotMember if Discord responds 404
// and a StatusError for other unsuccessful statuses.
func (e *Endpoint) GetMember(ctx context.Context, guildID, userID string) (Member, error) {
	if err := e.checkLimitingResource(getMemberResource, guildID); err != nil {
		return Member{}, err
	}

	resp, err := e.apiGenerator.New("/guilds/%s/members/%s", guildID, userID).
		GET(ctx, api.Authorization("Bot", e.BotToken), api.UserAgent(userAgent))
	if err != nil {
		return Member{}, err
	}

	if err := e.checkTooManyRequest(resp, getMemberResource, guildID); err != nil {
		return Member{}, err
	}

	if resp.Code == http.StatusNotFound {
		return Member{}, ErrNotMember
	}

	if resp.Code < 200 || resp.Code >= 300 {
		return Member{}, StatusError{Status: resp.Code}
	}

	body := resp.Body
	if body == nil {
		return Member{}, errors.New("invalid response")
	}

	member := Member{}
	if err := mapstructure.Decode(map[string]any(body), &member); err != nil {
		return Member{}, fmt.Errorf("cannot decode member: %w", err)
	}

	if member.Roles == nil {
		member.Roles = []string{}
	}

	return member, nil
}

func (e *Endpoint) checkLimitingResource(resource, identifier string) error {
	if limit, ok := e.rateLimitResource.Load(resource); ok {
		if resetAt, ok := limit.Load(identifier); ok {
			if resetAt.After(time.Now()) {
				return RateLimitError{ResetAt: resetAt}
			}

			// If the rate limit is reset, delete the limit for this resource.
			limit.Delete(identifier)
		}
	}

	return nil
}

func (e *Endpoint) checkTooManyRequest(resp *api.Response, resource, identifier string) error {
	if resp.Code == http.StatusTooManyRequests {
		resetAt, err := strconv.ParseFloat(resp.Header.Get("X-Ratelimit-Reset"), 64)
		if err != nil {
			return err
		}

		until := time.Unix(int64(resetAt), 0)
		resourceLimiter, _ := e.rateLimitResource.LoadOrStore(resource, xsync.NewMapOf[time.Time]())
		resourceLimiter.Store(identifier, until)
		return RateLimitError{ResetAt: until}
	}

	return nil
}
