package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginMe(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reg struct {
		Token string `json:"token"`
		User  struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			IsPublic bool   `json:"isPublic"`
		} `json:"user"`
	}
	decodeBody(t, w, &reg)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "alice", reg.User.Username)
	assert.True(t, reg.User.IsPublic)

	// duplicate email
	w = env.do(t, "POST", "/api/auth/register", "", map[string]string{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered")

	// duplicate username
	w = env.do(t, "POST", "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username already taken")

	// login
	w = env.do(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeBody(t, w, &reg)

	// me
	w = env.do(t, "GET", "/api/auth/me", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Username string `json:"username"`
	}
	decodeBody(t, w, &me)
	assert.Equal(t, "alice", me.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createTestUser(t, "bob", true)

	w := env.do(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    "bob@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsBadEmail(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/api/auth/register", "", map[string]string{
		"username": "carol",
		"email":    "not-an-email",
		"password": "password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "GET", "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, "GET", "/api/auth/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
