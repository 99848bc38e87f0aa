package client

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// offlineAuthExpiry matches the server-side session lifetime.
const offlineAuthExpiry = 24 * time.Hour

// authState is the locally persisted authentication flag/timestamp pair.
type authState struct {
	Authenticated bool      `json:"authenticated"`
	LoggedInAt    time.Time `json:"logged_in_at"`
}

func (c *Client) authStatePath() string {
	return filepath.Join(c.dataDir, "auth.json")
}

func (c *Client) readAuthState() authState {
	var state authState

	data, err := os.ReadFile(c.authStatePath())
	if err != nil {
		return state
	}

	if err := json.Unmarshal(data, &state); err != nil {
		log.Error().Err(err).Msg("corrupt auth state, treating as logged out")
		return authState{}
	}

	return state
}

func (c *Client) writeAuthState(state authState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "failed to encode auth state")
	}

	if err := os.MkdirAll(c.dataDir, 0o750); err != nil {
		return errors.Wrap(err, "failed to create data directory")
	}

	return errors.Wrap(os.WriteFile(c.authStatePath(), data, 0o600), "failed to write auth state")
}

// Login authenticates against the server and records the local flag and
// timestamp. Logging in needs a reachable server; the offline pair only
// extends an earlier successful login.
func (c *Client) Login(ctx context.Context, username, password string) error {
	payload := map[string]string{
		"username": username,
		"password": password,
	}

	if err := c.do(ctx, http.MethodPost, "/api/login", payload, nil); err != nil {
		return err
	}

	return c.writeAuthState(authState{
		Authenticated: true,
		LoggedInAt:    time.Now().UTC(),
	})
}

// Logout clears the server session and the local pair. A failed server
// call still clears the local state.
func (c *Client) Logout(ctx context.Context) error {
	if c.Reachable(ctx) {
		if err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil); err != nil {
			log.Warn().Err(err).Msg("server logout failed")
		}
	}

	return c.writeAuthState(authState{})
}

// Authenticated reports the auth state. A reachable server is asked
// directly; offline, the local pair counts while it is younger than the
// session lifetime.
func (c *Client) Authenticated(ctx context.Context) bool {
	if c.Reachable(ctx) {
		var result struct {
			Authenticated bool `json:"authenticated"`
		}

		if err := c.do(ctx, http.MethodGet, "/api/auth/check", nil, &result); err == nil {
			return result.Authenticated
		}
	}

	state := c.readAuthState()

	return state.Authenticated && time.Since(state.LoggedInAt) < offlineAuthExpiry
}
