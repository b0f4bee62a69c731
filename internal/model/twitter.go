package model

import "time"

type VerifyRetweetRequest struct {
	Username string `json:"username"`
	TweetURL string `json:"tweetUrl"`
}

type RetweetDetails struct {
	Username  string    `json:"username"`
	TweetURL  string    `json:"tweetUrl"`
	TweetID   string    `json:"tweetId"`
	CheckedAt time.Time `json:"checkedAt"`
}

type VerifyRetweetResponse struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	IsVerified bool           `json:"isVerified"`
	Details    RetweetDetails `json:"details"`
}

type VerifyTweetRequest struct {
	Username string   `json:"username"`
	Keywords []string `json:"keywords"`
}

type TweetDetails struct {
	Username  string    `json:"username"`
	Keywords  []string  `json:"keywords"`
	Tweet     string    `json:"tweet,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

type VerifyTweetResponse struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	IsVerified bool         `json:"isVerified"`
	Details    TweetDetails `json:"details"`
}

type VerifyFollowRequest struct {
	Username       string `json:"username"`
	TargetUsername string `json:"targetUsername"`
}

type FollowDetails struct {
	Username       string    `json:"username"`
	TargetUsername string    `json:"targetUsername"`
	CheckedAt      time.Time `json:"checkedAt"`
}

type VerifyFollowResponse struct {
	Success    bool          `json:"success"`
	Message    string        `json:"message"`
	IsVerified bool          `json:"isVerified"`
	Details    FollowDetails `json:"details"`
}

type ResetBrowserRequest struct{}

type ResetBrowserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ClearCacheRequest struct{}

type ClearCacheResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Removed int    `json:"removed"`
}

type TwitterHealthRequest struct{}

type TwitterHealthResponse struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	Timestamp     time.Time      `json:"timestamp"`
	BrowserStatus string         `json:"browserStatus"`
	CacheSize     int            `json:"cacheSize"`
	Config        map[string]any `json:"config"`
}

type TwitterHealthConfig struct {
	DelayRange   string `json:"delayRange" structs:"delayRange"`
	Timeout      string `json:"timeout" structs:"timeout"`
	UserAgents   int    `json:"userAgents" structs:"userAgents"`
	CacheEnabled bool   `json:"cacheEnabled" structs:"cacheEnabled"`
	CacheTTL     string `json:"cacheDuration" structs:"cacheDuration"`
}
