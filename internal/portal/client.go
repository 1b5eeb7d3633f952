package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource supplies the bearer token attached to authenticated requests.
// It is implemented by the auth store so that a session-expiry response can
// clear the persisted token without the client knowing about persistence.
type TokenSource interface {
	Token() string
	ClearToken()
}

// Client talks to the parent-portal HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	tokens    TokenSource
}

const (
	// DefaultBaseURL is used when no api_base_url is configured.
	DefaultBaseURL = "http://english-education-api.test/api"

	defaultUserAgent = "satchel/0.1"
	requestTimeout   = 10 * time.Second

	loginPath = "/auth/login"
)

// NewClient builds a Client for the given API origin. An empty baseURL falls
// back to DefaultBaseURL. tokens may be nil, in which case all requests are
// anonymous.
func NewClient(baseURL string, tokens TokenSource) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		tokens:    tokens,
	}, nil
}

// SetTimeout overrides the default per-request timeout. Zero or negative
// values are ignored.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.http.Timeout = d
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	rel := &url.URL{Path: path, RawQuery: query.Encode()}
	return c.do(ctx, http.MethodGet, rel, nil, "", dest)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, dest any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}
	rel := &url.URL{Path: path}
	return c.do(ctx, http.MethodPost, rel, &buf, "application/json", dest)
}

func (c *Client) postMultipart(ctx context.Context, path string, build func(*multipart.Writer) error, dest any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := build(mw); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalize form: %w", err)
	}
	rel := &url.URL{Path: path}
	return c.do(ctx, http.MethodPost, rel, &buf, mw.FormDataContentType(), dest)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body io.Reader, contentType string, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.resolve(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: msgNetwork, err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: msgNetwork, err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode >= 400 {
		return c.classify(resp.StatusCode, payload, rel.Path)
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// classify turns an HTTP error status into a *Error following a fixed
// precedence. A 401 from the login endpoint keeps the backend's own message
// (bad credentials are a user error); a 401 from anywhere else means the
// session is gone, so the stored token is dropped and a re-login message is
// forced regardless of what the backend said.
func (c *Client) classify(status int, payload []byte, path string) error {
	backendMsg := extractMessage(payload)
	statusErr := fmt.Errorf("api %s returned status %d", path, status)

	switch status {
	case http.StatusUnauthorized:
		if strings.HasSuffix(path, loginPath) {
			msg := backendMsg
			if msg == "" {
				msg = msgLoginFailed
			}
			return &Error{Kind: KindAuthInvalid, Message: msg, Status: status, err: statusErr}
		}
		if c.tokens != nil {
			c.tokens.ClearToken()
		}
		return &Error{Kind: KindSessionExpired, Message: msgSessionExpired, Status: status, err: statusErr}
	case http.StatusForbidden:
		return &Error{Kind: KindForbidden, Message: orDefault(backendMsg, msgForbidden), Status: status, err: statusErr}
	case http.StatusNotFound:
		return &Error{Kind: KindNotFound, Message: orDefault(backendMsg, msgNotFound), Status: status, err: statusErr}
	case http.StatusInternalServerError:
		return &Error{Kind: KindServer, Message: orDefault(backendMsg, msgServer), Status: status, err: statusErr}
	default:
		return &Error{Kind: KindRequestFailed, Message: orDefault(backendMsg, msgRequestFailed), Status: status, err: statusErr}
	}
}

func (c *Client) resolve(rel *url.URL) *url.URL {
	resolved := *c.baseURL
	resolved.Path = strings.TrimSuffix(c.baseURL.Path, "/") + rel.Path
	resolved.RawQuery = rel.RawQuery
	return &resolved
}

func extractMessage(payload []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Message)
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", raw, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
