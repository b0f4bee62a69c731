package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSON_Getters(t *testing.T) {
	body := decodeBody([]byte(`{
		"success": true,
		"roles": ["a", "b"],
		"roleStatus": {"a": true, "b": false},
		"user": {"username": "neftit"},
		"code": 10007
	}`))
	require.NotNil(t, body)

	success, err := body.GetBool("success")
	require.NoError(t, err)
	require.True(t, success)

	roles, err := body.GetStringArray("roles")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, roles)

	missing, err := body.GetStringArray("missing")
	require.NoError(t, err)
	require.Empty(t, missing)

	status, err := body.GetBoolMap("roleStatus")
	require.NoError(t, err)
	require.Equal(t, map[string]bool{"a": true, "b": false}, status)

	username, err := body.GetString("user.username")
	require.NoError(t, err)
	require.Equal(t, "neftit", username)

	code, err := body.GetInt("code")
	require.NoError(t, err)
	require.Equal(t, 10007, code)

	_, err = body.GetInt("user")
	require.Error(t, err)
}

func TestParameter_Encode(t *testing.T) {
	p := Parameter{"b": "x y", "a": "1"}
	require.Equal(t, "a=1&b=x%20y", p.Encode())
}
