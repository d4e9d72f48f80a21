// Package apiclient is the typed HTTP client of the REST API used by the web front-end.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/GoUserManagement/UserManagement/internal/dto"
)

const maxErrorBody = 4096

// ErrNotFound is matched by every *Error with status 404.
var ErrNotFound = errors.New("not found")

// Error is a non-2xx answer of the API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}

	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// Is makes errors.Is(err, ErrNotFound) hold for 404.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client calls the users and groups endpoints.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New creates a Client for the API below baseURL.
// The transport is instrumented with OpenTelemetry.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "api base url")
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, pkgerrors.Errorf("api base url %q is not absolute", baseURL)
	}

	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	return &Client{
		baseURL: u,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// ListUsers returns all users.
func (c *Client) ListUsers(ctx context.Context) ([]dto.User, error) {
	var users []dto.User
	if err := c.do(ctx, http.MethodGet, "api/users", nil, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// GetUser returns one user, a missing user matches ErrNotFound.
func (c *Client) GetUser(ctx context.Context, id uint) (*dto.User, error) {
	var u dto.User
	if err := c.do(ctx, http.MethodGet, userPath(id), nil, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateUser creates a user.
func (c *Client) CreateUser(ctx context.Context, in dto.CreateUser) (*dto.User, error) {
	var u dto.User
	if err := c.do(ctx, http.MethodPost, "api/users", in, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

// UpdateUser updates a user.
func (c *Client) UpdateUser(ctx context.Context, id uint, in dto.UpdateUser) (*dto.User, error) {
	var u dto.User
	if err := c.do(ctx, http.MethodPut, userPath(id), in, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, userPath(id), nil, nil)
}

// CountUsers returns the number of users.
func (c *Client) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := c.do(ctx, http.MethodGet, "api/users/count", nil, &n); err != nil {
		return 0, err
	}

	return n, nil
}

// CountUsersByGroup returns the member count of every group.
func (c *Client) CountUsersByGroup(ctx context.Context) ([]dto.UserCountByGroup, error) {
	var counts []dto.UserCountByGroup
	if err := c.do(ctx, http.MethodGet, "api/users/count-by-group", nil, &counts); err != nil {
		return nil, err
	}

	return counts, nil
}

// ListGroups returns all groups with permissions.
func (c *Client) ListGroups(ctx context.Context) ([]dto.GroupWithPermissions, error) {
	var groups []dto.GroupWithPermissions
	if err := c.do(ctx, http.MethodGet, "api/groups", nil, &groups); err != nil {
		return nil, err
	}

	return groups, nil
}

func userPath(id uint) string {
	return "api/users/" + strconv.FormatUint(uint64(id), 10)
}

// do sends body as json and decodes a 2xx answer into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(err, "encode request")
		}

		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), reader)
	if err != nil {
		return pkgerrors.Wrap(err, "build request")
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrapf(err, "%s %s", method, path)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return pkgerrors.Wrapf(json.NewDecoder(resp.Body).Decode(out), "decode %s %s", method, path)
}

func newError(resp *http.Response) *Error {
	e := &Error{StatusCode: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var msg struct {
		Message string `json:"message"`
		Title   string `json:"title"`
	}

	switch {
	case json.Unmarshal(raw, &msg) == nil && msg.Message != "":
		e.Message = msg.Message
	case msg.Title != "":
		e.Message = msg.Title
	default:
		e.Message = strings.TrimSpace(string(raw))
	}

	return e
}
