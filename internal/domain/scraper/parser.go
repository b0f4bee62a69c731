package scraper

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

type Tweet struct {
	Text        string
	StatusLinks []string
}

// Profile is what a public profile page exposes about its owner.
type Profile struct {
	Username       string
	Tweets         []Tweet
	FollowingLinks []FollowingLink
}

type FollowingLink struct {
	Href string
	Text string
}

func ParseProfile(username string, r io.Reader) (*Profile, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	profile := &Profile{Username: username}
	walk(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}

		if attr(n, "data-testid") == "tweet" {
			profile.Tweets = append(profile.Tweets, parseTweet(n))
			return false
		}

		if n.Data == "a" {
			if href := attr(n, "href"); strings.Contains(href, "/following") {
				profile.FollowingLinks = append(profile.FollowingLinks, FollowingLink{
					Href: href,
					Text: textOf(n),
				})
			}
		}

		return true
	})

	return profile, nil
}

// HasRetweeted reports whether any tweet of the timeline links to tweetID or quotes it in a RT.
func (p *Profile) HasRetweeted(tweetID string) bool {
	for _, tweet := range p.Tweets {
		for _, link := range tweet.StatusLinks {
			if strings.Contains(link, tweetID) {
				return true
			}
		}

		if strings.Contains(tweet.Text, "RT") && strings.Contains(tweet.Text, tweetID) {
			return true
		}
	}

	return false
}

// TweetWithKeywords returns the first tweet containing all keywords, case-insensitively.
func (p *Profile) TweetWithKeywords(keywords []string) (string, bool) {
	for _, tweet := range p.Tweets {
		text := strings.ToLower(tweet.Text)

		matched := true
		for _, keyword := range keywords {
			if !strings.Contains(text, strings.ToLower(keyword)) {
				matched = false
				break
			}
		}

		if matched {
			return tweet.Text, true
		}
	}

	return "", false
}

func (p *Profile) Follows(target string) bool {
	target = strings.TrimPrefix(target, "@")
	for _, link := range p.FollowingLinks {
		if strings.Contains(link.Text, target) {
			return true
		}
	}

	return false
}

func parseTweet(n *html.Node) Tweet {
	tweet := Tweet{Text: textOf(n)}
	walk(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode && c.Data == "a" {
			if href := attr(c, "href"); strings.Contains(href, "/status/") {
				tweet.StatusLinks = append(tweet.StatusLinks, href)
			}
		}
		return true
	})

	return tweet
}

// walk visits n and its descendants in document order. Children of a node are skipped if visit
// returns false.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})

	return strings.TrimSpace(sb.String())
}
