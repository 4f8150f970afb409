// Package directory implements the registry core API client the console
// coordinates against. The client holds the core session cookie; status
// codes are mapped onto the domain error taxonomy so callers never inspect
// raw HTTP responses.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/registryops/console-gateway/internal/core/domain"
)

const maxErrorBody = 512

// Client talks to the registry core on behalf of the console session.
type Client struct {
	base *url.URL
	http *http.Client
	log  zerolog.Logger
}

// New creates a Client for the core API at baseURL. A cookie jar carries the
// core's session cookie across calls; no request timeout is applied beyond
// the caller's context.
func New(baseURL string, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse core URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &Client{
		base: base,
		http: &http.Client{Jar: jar},
		log:  log,
	}, nil
}

// CurrentUser fetches the identity bound to the core session cookie.
func (c *Client) CurrentUser(ctx context.Context) (*domain.SessionUser, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/users/current", "", nil)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var user domain.SessionUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode current user: %w", err)
	}
	return &user, nil
}

// SignIn posts the form-encoded credentials to the core login endpoint. On
// success the session cookie lands in the jar.
func (c *Client) SignIn(ctx context.Context, principal, password string) error {
	form := url.Values{}
	form.Set("principal", principal)
	form.Set("password", password)

	resp, err := c.do(ctx, http.MethodPost, "/login", formContentType, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return domain.ErrInvalidCredentials
		}
		return c.statusError(resp)
	}
	return nil
}

// SignOut terminates the core session.
func (c *Client) SignOut(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/log_out", "", nil)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}
	return nil
}

// ListTargets lists replication targets, filtered by name when non-empty.
func (c *Client) ListTargets(ctx context.Context, name string) ([]domain.Target, error) {
	path := "/api/targets"
	if name != "" {
		path += "?name=" + url.QueryEscape(name)
	}

	resp, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var targets []domain.Target
	if err := json.NewDecoder(resp.Body).Decode(&targets); err != nil {
		return nil, fmt.Errorf("decode targets: %w", err)
	}
	return targets, nil
}

// CreateTarget creates a replication target. The core does not return the
// created object; callers needing the assigned ID must list by name.
func (c *Client) CreateTarget(ctx context.Context, target *domain.Target) error {
	return c.writeJSON(ctx, http.MethodPost, "/api/targets", target)
}

// UpdateTarget updates an existing replication target.
func (c *Client) UpdateTarget(ctx context.Context, target *domain.Target) error {
	return c.writeJSON(ctx, http.MethodPut, fmt.Sprintf("/api/targets/%d", target.ID), target)
}

// DeleteTarget deletes a replication target by ID. The core answers 412 when
// a policy still references the target; that surfaces as *DirectoryError.
func (c *Client) DeleteTarget(ctx context.Context, id int64) error {
	return c.deletePath(ctx, fmt.Sprintf("/api/targets/%d", id))
}

// PingTarget checks connectivity of an endpoint with the given credentials.
func (c *Client) PingTarget(ctx context.Context, endpoint, username, password string) error {
	form := url.Values{}
	form.Set("endpoint", endpoint)
	form.Set("username", username)
	form.Set("password", password)

	resp, err := c.do(ctx, http.MethodPost, "/api/targets/ping", formContentType, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}
	return nil
}

// ListPolicies lists replication policies, filtered by name when non-empty.
func (c *Client) ListPolicies(ctx context.Context, name string) ([]domain.Policy, error) {
	path := "/api/policies/replication"
	if name != "" {
		path += "?name=" + url.QueryEscape(name)
	}

	resp, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var policies []domain.Policy
	if err := json.NewDecoder(resp.Body).Decode(&policies); err != nil {
		return nil, fmt.Errorf("decode policies: %w", err)
	}
	return policies, nil
}

// CreatePolicy creates a replication policy.
func (c *Client) CreatePolicy(ctx context.Context, policy *domain.Policy) error {
	return c.writeJSON(ctx, http.MethodPost, "/api/policies/replication", policy)
}

// UpdatePolicy updates an existing replication policy.
func (c *Client) UpdatePolicy(ctx context.Context, policy *domain.Policy) error {
	return c.writeJSON(ctx, http.MethodPut, fmt.Sprintf("/api/policies/replication/%d", policy.ID), policy)
}

// DeletePolicy deletes a replication policy by ID.
func (c *Client) DeletePolicy(ctx context.Context, id int64) error {
	return c.deletePath(ctx, fmt.Sprintf("/api/policies/replication/%d", id))
}

// Search runs a global search for term.
func (c *Client) Search(ctx context.Context, term string) (*domain.SearchResults, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/search?q="+url.QueryEscape(term), "", nil)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp)
	}

	var results domain.SearchResults
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode search results: %w", err)
	}
	return &results, nil
}

const formContentType = "application/x-www-form-urlencoded"

func (c *Client) writeJSON(ctx context.Context, method, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	resp, err := c.do(ctx, method, path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return c.statusError(resp)
	}
	return nil
}

func (c *Client) deletePath(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodDelete, path, "", nil)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	u, err := c.base.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("build url %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// statusError maps a non-2xx response onto the domain error taxonomy. 401
// and 403 are distinguished from all other failures; 400 and 409 keep their
// identity for inline form errors; the rest become DirectoryError.
func (c *Client) statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusConflict:
		return domain.ErrConflict
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, strings.TrimSpace(string(snippet)))
	default:
		c.log.Debug().Int("status", resp.StatusCode).Str("path", resp.Request.URL.Path).Msg("unexpected core response")
		return &domain.DirectoryError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(snippet))}
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
