package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bookwise/internal/common"
)

// HTTPClient is a Bookwise HTTP API client. It is safe for concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
}

func NewHTTPClient(baseURL string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) setToken(t string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = t
}

// LoggedIn reports whether an access token is held.
func (c *HTTPClient) LoggedIn() bool { return c.token() != "" }

// do sends a JSON request and decodes a JSON answer into out (if non-nil).
// Transport failures are reported as ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t := c.token(); t != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+t)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Code = "unexpected_status"
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) (*User, error) {
	var u User
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{"username": username, "password": password}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Login authenticates and keeps the access token for later calls.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{"username": username, "password": password}, &s)
	if err != nil {
		return nil, err
	}
	c.setToken(s.AccessToken)
	return &s, nil
}

// Logout notifies the server and drops the local token. The token is
// dropped even if the server cannot be reached.
func (c *HTTPClient) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.setToken("")
	return err
}

func (c *HTTPClient) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Filters(ctx context.Context) (*FilterCatalogue, error) {
	var f FilterCatalogue
	if err := c.do(ctx, http.MethodGet, "/recommendations/filters", nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *HTTPClient) Recommend(ctx context.Context, query string, count int, filters Filters) ([]Book, error) {
	in := struct {
		Query   string  `json:"query"`
		Count   int     `json:"count,omitempty"`
		Filters Filters `json:"filters"`
	}{query, count, filters}

	var books []Book
	if err := c.do(ctx, http.MethodPost, "/recommendations", in, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *HTTPClient) SaveBook(ctx context.Context, b Book) (*SavedBook, error) {
	var sb SavedBook
	if err := c.do(ctx, http.MethodPost, "/saved-books", b, &sb); err != nil {
		return nil, err
	}
	return &sb, nil
}

func (c *HTTPClient) SavedBooks(ctx context.Context) ([]SavedBook, error) {
	var list []SavedBook
	if err := c.do(ctx, http.MethodGet, "/saved-books", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) DeleteSavedBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/saved-books/"+url.PathEscape(id), nil, nil)
}

// IsSaved reports whether a book with title and author is saved, and its id.
func (c *HTTPClient) IsSaved(ctx context.Context, title, author string) (bool, string, error) {
	q := url.Values{"title": {title}, "author": {author}}
	var out struct {
		IsSaved     bool    `json:"is_saved"`
		SavedBookID *string `json:"saved_book_id"`
	}
	if err := c.do(ctx, http.MethodGet, "/saved-books/check?"+q.Encode(), nil, &out); err != nil {
		return false, "", err
	}
	if out.SavedBookID == nil {
		return out.IsSaved, "", nil
	}
	return out.IsSaved, *out.SavedBookID, nil
}

func (c *HTTPClient) Export(ctx context.Context) (*Export, error) {
	var e Export
	if err := c.do(ctx, http.MethodPost, "/saved-books/export", nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
