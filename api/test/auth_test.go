package test

import (
	"net/http"
	"testing"

	"github.com/pokecards/backend/core/claims"
	"github.com/pokecards/backend/core/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	env := NewTestEnv(t, "health")

	var out struct {
		Status string `json:"status"`
	}
	require.Equal(t, http.StatusOK, env.Do(t, http.MethodGet, "/health", nil, &out))
	assert.Equal(t, "ok", out.Status)
}

func TestSignupAndLogin(t *testing.T) {
	env := NewTestEnv(t, "auth")

	name := "fresh-" + env.UserName
	signup := map[string]string{
		"username": name,
		"email":    name + "@test.com",
		"password": "secret123",
	}

	var created user.User
	require.Equal(t, http.StatusCreated, env.Do(t, http.MethodPost, "/auth/signup", signup, &created))
	assert.Equal(t, name, created.Username)
	assert.Equal(t, claims.RoleUser, created.Role)
	assert.True(t, created.IsActive)

	// Signup logs the user straight in.
	var me user.User
	require.Equal(t, http.StatusOK, env.Do(t, http.MethodGet, "/users/current", nil, &me))
	assert.Equal(t, created.ID, me.ID)

	env.Logout(t)
	assert.Equal(t, http.StatusUnauthorized, env.Do(t, http.MethodGet, "/users/current", nil, nil))

	// The username is taken now.
	assert.Equal(t, http.StatusConflict, env.Do(t, http.MethodPost, "/auth/signup", signup, nil))

	// Credentials are actually checked.
	bad := map[string]string{"username": name, "password": "wrong-password"}
	assert.Equal(t, http.StatusUnauthorized, env.Do(t, http.MethodPost, "/auth/login", bad, nil))

	env.Login(t, name, "secret123")
	require.Equal(t, http.StatusOK, env.Do(t, http.MethodGet, "/users/current", nil, &me))
	assert.Equal(t, created.ID, me.ID)

	// Login by email works too.
	env.Logout(t)
	byEmail := map[string]string{"username": name + "@test.com", "password": "secret123"}
	require.Equal(t, http.StatusOK, env.Do(t, http.MethodPost, "/auth/login", byEmail, nil))
}

func TestSignupValidation(t *testing.T) {
	env := NewTestEnv(t, "auth-validation")

	cases := map[string]map[string]string{
		"short password": {"username": "someone", "email": "someone@test.com", "password": "tiny"},
		"bad email":      {"username": "someone", "email": "not-an-email", "password": "secret123"},
		"no username":    {"email": "someone@test.com", "password": "secret123"},
	}

	for name, body := range cases {
		if st := env.Do(t, http.MethodPost, "/auth/signup", body, nil); st != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, st)
		}
	}
}
