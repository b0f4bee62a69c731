package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const profilePage = `<html><body>
<a href="/alice/following">Following bob_nft and 20 others</a>
<div data-testid="tweet">
  <span>RT @neftit: Claim your NFT today</span>
  <a href="/neftit/status/1700000000000000001">link</a>
</div>
<div data-testid="tweet">
  <p>Just joined the <b>NEFTIT</b> campaign #web3</p>
  <a href="/alice/status/1800000000000000002/photo/1">photo</a>
</div>
</body></html>`

func TestParseProfile(t *testing.T) {
	profile, err := ParseProfile("alice", strings.NewReader(profilePage))
	require.NoError(t, err)
	require.Len(t, profile.Tweets, 2)
	require.Equal(t, []string{"/neftit/status/1700000000000000001"}, profile.Tweets[0].StatusLinks)
	require.Len(t, profile.FollowingLinks, 1)

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{name: "retweeted", got: profile.HasRetweeted("1700000000000000001"), want: true},
		{name: "own tweet link", got: profile.HasRetweeted("1800000000000000002"), want: true},
		{name: "not retweeted", got: profile.HasRetweeted("1900000000000000003"), want: false},
		{name: "follows", got: profile.Follows("bob_nft"), want: true},
		{name: "follows with at", got: profile.Follows("@bob_nft"), want: true},
		{name: "not follows", got: profile.Follows("carol"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.got)
		})
	}
}

func TestProfile_TweetWithKeywords(t *testing.T) {
	profile, err := ParseProfile("alice", strings.NewReader(profilePage))
	require.NoError(t, err)

	tweet, ok := profile.TweetWithKeywords([]string{"neftit", "#WEB3"})
	require.True(t, ok)
	require.Contains(t, tweet, "campaign")

	_, ok = profile.TweetWithKeywords([]string{"neftit", "solana"})
	require.False(t, ok)
}
