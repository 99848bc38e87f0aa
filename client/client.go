// Package client implements the legacy site's API client with an offline
// mirror. Reads prefer the server and refresh local JSON mirrors on
// success; writes always land in the mirror first and are relayed to the
// server opportunistically. The mirror is never rolled back when a relay
// fails.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/kochwerk/kochwerk/internal/db/models"
	"github.com/kochwerk/kochwerk/internal/store/jsonstore"
)

// ProbeTimeout bounds the reachability check. An unanswered probe counts
// as unreachable.
const ProbeTimeout = 2 * time.Second

// Client talks to the catalog API and keeps local mirrors under dataDir.
type Client struct {
	baseURL    string
	dataDir    string
	httpClient *http.Client

	recipes   *jsonstore.Collection[models.Recipe, *models.Recipe]
	equipment *jsonstore.Collection[models.Equipment, *models.Equipment]
}

// New creates a client for the API at baseURL, mirroring into dataDir.
func New(baseURL, dataDir string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cookie jar")
	}

	return &Client{
		baseURL: baseURL,
		dataDir: dataDir,
		httpClient: &http.Client{
			Jar: jar,
		},
		recipes:   jsonstore.NewCollection[models.Recipe, *models.Recipe](filepath.Join(dataDir, "recipes.json")),
		equipment: jsonstore.NewCollection[models.Equipment, *models.Equipment](filepath.Join(dataDir, "equipment.json")),
	}, nil
}

// Reachable probes the health endpoint. Any transport error, timeout or
// non-200 answer counts as unreachable.
func (c *Client) Reachable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

// do sends a JSON request and decodes the JSON answer into out when it is
// non-nil. Non-2xx answers are returned as errors carrying the server's
// error message.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader

	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}

		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var remote struct {
			Error string `json:"error"`
		}

		_ = json.NewDecoder(resp.Body).Decode(&remote)
		if remote.Error == "" {
			remote.Error = resp.Status
		}

		return fmt.Errorf("%s %s: %s", method, path, remote.Error)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
