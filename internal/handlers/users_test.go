package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsersExcludesSelf(t *testing.T) {
	env := newTestEnv(t)
	_, tokenA := env.createTestUser(t, "alice", true)
	env.createTestUser(t, "bob", true)
	env.createTestUser(t, "carol", false) // private users still listed

	w := env.do(t, "GET", "/api/users", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []struct {
		Username string `json:"username"`
	}
	decodeBody(t, w, &users)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, "alice", u.Username)
	}
}

func TestUpdateProfileMirrorsAvatar(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createTestUser(t, "alice", true)

	w := env.do(t, "PUT", "/api/users/profile", token, map[string]string{
		"avatarUrl": "https://cdn.example.com/a.png",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Username   string  `json:"username"`
		ProfilePic *string `json:"profilePic"`
		AvatarURL  *string `json:"avatarUrl"`
	}
	decodeBody(t, w, &resp)
	require.NotNil(t, resp.ProfilePic)
	assert.Equal(t, "https://cdn.example.com/a.png", *resp.ProfilePic)
	require.NotNil(t, resp.AvatarURL)
	assert.Equal(t, "https://cdn.example.com/a.png", *resp.AvatarURL)

	// partial update leaves other fields alone
	w = env.do(t, "PUT", "/api/users/profile", token, map[string]string{
		"username": "alice2",
	})
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.Equal(t, "alice2", resp.Username)
	require.NotNil(t, resp.ProfilePic)
	assert.Equal(t, "https://cdn.example.com/a.png", *resp.ProfilePic)
}
