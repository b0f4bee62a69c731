package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync"
)

const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	value    any
	storedAt time.Time
}

// TaskCache keeps successful verification results for a short time so that repeated checks do
// not hit the profile page again.
type TaskCache struct {
	entries *xsync.MapOf[string, cacheEntry]
	ttl     time.Duration
	now     func() time.Time
}

func NewTaskCache(ttl time.Duration) *TaskCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &TaskCache{
		entries: xsync.NewMapOf[cacheEntry](),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *TaskCache) Get(key string) (any, bool) {
	entry, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}

	if c.now().Sub(entry.storedAt) >= c.ttl {
		c.entries.Delete(key)
		return nil, false
	}

	return entry.value, true
}

func (c *TaskCache) Set(key string, value any) {
	c.entries.Store(key, cacheEntry{value: value, storedAt: c.now()})
}

// Clear removes all entries and returns how many were removed.
func (c *TaskCache) Clear() int {
	removed := 0
	c.entries.Range(func(key string, _ cacheEntry) bool {
		c.entries.Delete(key)
		removed++
		return true
	})

	return removed
}

func (c *TaskCache) Len() int {
	n := 0
	c.entries.Range(func(string, cacheEntry) bool {
		n++
		return true
	})

	return n
}

func RetweetKey(username, tweetID string) string {
	return fmt.Sprintf("retweet_%s_%s", username, tweetID)
}

func TweetKey(username string, keywords []string) string {
	return fmt.Sprintf("tweet_%s_%s", username, strings.Join(keywords, "_"))
}

func FollowKey(username, target string) string {
	return fmt.Sprintf("follow_%s_%s", username, target)
}
