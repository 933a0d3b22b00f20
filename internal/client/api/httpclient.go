package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mkalinins/commportal/internal/portal"
)

// DefaultTimeout bounds every request; the UI offers no cancellation
// affordance, so calls must not hang indefinitely.
const DefaultTimeout = 10 * time.Second

// HTTPClient is the production Client talking JSON over HTTP to the
// portal backend.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for the backend at baseURL (scheme://host[:port],
// no trailing slash required). A non-positive timeout falls back to DefaultTimeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) endpoint(path string) string {
	return c.baseURL + path
}

// do executes the request and decodes a 2xx JSON body into out (when out is
// non-nil). Transport errors are wrapped in ErrUnavailable; non-2xx statuses
// are returned for the caller to map.
func (c *HTTPClient) do(req *http.Request, out any) (int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func (c *HTTPClient) newJSONRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func withBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// Verify checks a persisted token against GET /api/auth/verify and returns
// the session's user. A 401 maps to ErrUnauthorized so the caller knows the
// token must be discarded.
func (c *HTTPClient) Verify(ctx context.Context, token string) (*portal.User, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/api/auth/verify", nil)
	if err != nil {
		return nil, err
	}
	var user portal.User
	status, err := c.do(withBearer(req, token), &user)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case status >= 300:
		return nil, fmt.Errorf("%w: verify returned status %d", ErrUnavailable, status)
	}
	return &user, nil
}

// Login posts credentials to POST /api/auth/login. Any 4xx means the
// credentials were rejected; no detail about which field was wrong is
// surfaced. 5xx counts as server unavailability.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	var result LoginResult
	status, err := c.do(req, &result)
	if err != nil {
		return nil, err
	}
	switch {
	case status >= 400 && status < 500:
		return nil, ErrInvalidCredentials
	case status >= 300:
		return nil, fmt.Errorf("%w: login returned status %d", ErrUnavailable, status)
	}
	return &result, nil
}

// Verify2FA posts the out-of-band code to POST /api/auth/verify-2fa.
// A wrong or expired code surfaces as ErrInvalidCode.
func (c *HTTPClient) Verify2FA(ctx context.Context, code string) (*TwoFactorResult, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/auth/verify-2fa", map[string]string{
		"code": code,
	})
	if err != nil {
		return nil, err
	}
	var result TwoFactorResult
	status, err := c.do(req, &result)
	if err != nil {
		return nil, err
	}
	switch {
	case status >= 400 && status < 500:
		return nil, ErrInvalidCode
	case status >= 300:
		return nil, fmt.Errorf("%w: verify-2fa returned status %d", ErrUnavailable, status)
	}
	return &result, nil
}

// Logout notifies POST /api/auth/logout. The caller treats it as
// fire-and-forget; any failure is reported but never blocks local cleanup.
func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return err
	}
	status, err := c.do(withBearer(req, token), nil)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("logout returned status %d", status)
	}
	return nil
}

// getJSON performs a bearer-authenticated GET and maps the common
// status codes shared by all portal content endpoints.
func (c *HTTPClient) getJSON(ctx context.Context, token, path string, out any) error {
	req, err := c.newJSONRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	status, err := c.do(withBearer(req, token), out)
	if err != nil {
		return err
	}
	return mapContentStatus(status)
}

func mapContentStatus(status int) error {
	switch {
	case status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	default:
		return fmt.Errorf("unexpected status %d", status)
	}
}

func (c *HTTPClient) News(ctx context.Context, token string) ([]portal.NewsItem, error) {
	var items []portal.NewsItem
	if err := c.getJSON(ctx, token, "/api/news", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) ChatRooms(ctx context.Context, token string) ([]portal.ChatRoom, error) {
	var rooms []portal.ChatRoom
	if err := c.getJSON(ctx, token, "/api/chat/rooms", &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *HTTPClient) Messages(ctx context.Context, token string, roomID string) ([]portal.Message, error) {
	var msgs []portal.Message
	path := "/api/chat/rooms/" + url.PathEscape(roomID) + "/messages"
	if err := c.getJSON(ctx, token, path, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *HTTPClient) PostMessage(ctx context.Context, token string, roomID string, content string) (*portal.Message, error) {
	path := "/api/chat/rooms/" + url.PathEscape(roomID) + "/messages"
	req, err := c.newJSONRequest(ctx, http.MethodPost, path, map[string]string{
		"content": content,
	})
	if err != nil {
		return nil, err
	}
	var msg portal.Message
	status, err := c.do(withBearer(req, token), &msg)
	if err != nil {
		return nil, err
	}
	if err := mapContentStatus(status); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *HTTPClient) Meetings(ctx context.Context, token string) ([]portal.Meeting, error) {
	var meetings []portal.Meeting
	if err := c.getJSON(ctx, token, "/api/board/meetings", &meetings); err != nil {
		return nil, err
	}
	return meetings, nil
}

func (c *HTTPClient) Discussions(ctx context.Context, token string) ([]portal.Discussion, error) {
	var discussions []portal.Discussion
	if err := c.getJSON(ctx, token, "/api/board/discussions", &discussions); err != nil {
		return nil, err
	}
	return discussions, nil
}

func (c *HTTPClient) Documents(ctx context.Context, token string) ([]portal.Document, error) {
	var docs []portal.Document
	if err := c.getJSON(ctx, token, "/api/admin/documents", &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Close releases idle connections held by the underlying transport.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
