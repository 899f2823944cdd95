package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/naveenspark/moviemania/pkg/domain"
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// TokenSource yields the bearer token for the next request.
// An empty token means the request is sent unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() string { return string(t) }

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Client is the movie catalog API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a new API client. tokens may be nil for anonymous use.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if tokens == nil {
		tokens = StaticToken("")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithToken returns a copy of c that authenticates with a fixed token.
// Used between login and the details lookup, before the session holds the token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.tokens = StaticToken(token)
	return &cp
}

// --- Movies ---

type moviesResponse struct {
	Movies []domain.Movie `json:"movies"`
}

// ListMovies returns every movie in the catalog.
func (c *Client) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	var resp moviesResponse
	if err := c.get(ctx, "/movies/getMovies", &resp); err != nil {
		return nil, fmt.Errorf("client.ListMovies: %w", err)
	}
	return resp.Movies, nil
}

// GetMovie fetches a single movie with its comments.
func (c *Client) GetMovie(ctx context.Context, id string) (*domain.Movie, error) {
	var m domain.Movie
	if err := c.get(ctx, "/movies/getMovie/"+url.PathEscape(id), &m); err != nil {
		return nil, fmt.Errorf("client.GetMovie: %w", err)
	}
	return &m, nil
}

// AddMovie creates a movie. Requires an admin token.
func (c *Client) AddMovie(ctx context.Context, in domain.MovieInput) error {
	if err := c.post(ctx, "/movies/addMovie", in, nil); err != nil {
		return fmt.Errorf("client.AddMovie: %w", err)
	}
	return nil
}

// UpdateMovie replaces the editable fields of a movie. Requires an admin token.
func (c *Client) UpdateMovie(ctx context.Context, id string, in domain.MovieInput) error {
	if err := c.doRequest(ctx, http.MethodPatch, "/movies/updateMovie/"+url.PathEscape(id), in, nil); err != nil {
		return fmt.Errorf("client.UpdateMovie: %w", err)
	}
	return nil
}

// DeleteMovie removes a movie. Requires an admin token.
func (c *Client) DeleteMovie(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/movies/deleteMovie/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteMovie: %w", err)
	}
	return nil
}

// AddComment appends a comment to a movie. Requires a non-admin token.
func (c *Client) AddComment(ctx context.Context, movieID, comment string) error {
	body := map[string]string{"comment": comment}
	if err := c.doRequest(ctx, http.MethodPatch, "/movies/addComment/"+url.PathEscape(movieID), body, nil); err != nil {
		return fmt.Errorf("client.AddComment: %w", err)
	}
	return nil
}

// --- Users ---

type loginResponse struct {
	Access string `json:"access"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	var resp loginResponse
	if err := c.post(ctx, "/users/login", creds, &resp); err != nil {
		return "", fmt.Errorf("client.Login: %w", err)
	}
	if resp.Access == "" {
		return "", fmt.Errorf("client.Login: %w", ErrNoToken)
	}
	return resp.Access, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, creds domain.Credentials) error {
	if err := c.post(ctx, "/users/register", creds, nil); err != nil {
		return fmt.Errorf("client.Register: %w", err)
	}
	return nil
}

// Details returns the authenticated user's profile.
// The API answers either {"user": {...}} or the bare user object.
func (c *Client) Details(ctx context.Context) (*domain.User, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/users/details", &raw); err != nil {
		return nil, fmt.Errorf("client.Details: %w", err)
	}
	var wrapped struct {
		User *domain.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.User != nil {
		return wrapped.User, nil
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("client.Details: decode response: %w", err)
	}
	return &u, nil
}

// Authenticate logs in and resolves the admin flag with the fresh token.
// The caller stores both values as one session.
func (c *Client) Authenticate(ctx context.Context, creds domain.Credentials) (token string, isAdmin bool, err error) {
	token, err = c.Login(ctx, creds)
	if err != nil {
		return "", false, err
	}
	user, err := c.WithToken(token).Details(ctx)
	if err != nil {
		return "", false, err
	}
	return token, user.IsAdmin, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.logger.Debug("api request", "method", method, "path", path, "request_id", requestID,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Error != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
			}
			if apiErr.Message != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}
