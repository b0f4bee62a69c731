package scraper

import (
	"net/url"
	"strings"
)

// ExtractTweetID returns the path segment following "status" in a twitter.com or x.com url.
func ExtractTweetID(tweetURL string) (string, bool) {
	u, err := url.Parse(tweetURL)
	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	if !strings.Contains(host, "twitter.com") && !strings.Contains(host, "x.com") {
		return "", false
	}

	parts := strings.Split(u.Path, "/")
	for i, part := range parts {
		if part == "status" && i+1 < len(parts) && parts[i+1] != "" {
			return parts[i+1], true
		}
	}

	return "", false
}
