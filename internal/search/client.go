package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/varsilias/crystal/internal/upstream"
)

const DefaultBaseURL = "https://www.googleapis.com/customsearch/v1"

var (
	ErrNoAPIKey   = errors.New("search: api key or engine id not configured")
	ErrBadRequest = errors.New("search: invalid request")
	ErrForbidden  = errors.New("search: access denied")
)

// APIError is an error object returned inside a 2xx body.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("search: api error %d: %s", e.Code, e.Message)
}

// Item is one Custom Search result.
type Item struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Mime    string `json:"mime"`
}

type Client struct {
	baseURL  string
	apiKey   string
	engineID string
	log      *slog.Logger
	client   *http.Client
}

func NewClient(baseURL, apiKey, engineID string, timeout time.Duration, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		engineID: engineID,
		log:      log,
		client:   upstream.NewHTTPClient(timeout),
	}
}

// Search runs query through Custom Search. A nil slice with a nil error
// means the engine had nothing for it.
func (c *Client) Search(ctx context.Context, query string) (items []Item, err error) {
	if c.apiKey == "" || c.engineID == "" {
		return nil, ErrNoAPIKey
	}
	start := time.Now()
	defer func() { upstream.Observe("search", start, err) }()

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("cx", c.engineID)
	q.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, upstream.Transport(err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusBadRequest:
		return nil, ErrBadRequest
	case res.StatusCode == http.StatusForbidden:
		return nil, ErrForbidden
	case res.StatusCode >= 400:
		return nil, &upstream.HTTPError{Status: res.StatusCode}
	}

	var out struct {
		Items []Item `json:"items"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, upstream.Decode(err)
	}
	if len(out.Items) > 0 {
		return out.Items, nil
	}
	if out.Error != nil {
		if out.Error.Code == http.StatusForbidden {
			return nil, ErrForbidden
		}
		return nil, &APIError{Code: out.Error.Code, Message: out.Error.Message}
	}
	return nil, nil
}

// Answer replies to "pesquisar por <query>" with the top result.
func (c *Client) Answer(ctx context.Context, query string) string {
	if query == "" {
		return MsgMissingQuery
	}
	items, err := c.Search(ctx, query)
	if err != nil {
		c.log.Warn("web search failed", "query", query, "err", err)
		return Apology(err)
	}
	if len(items) == 0 {
		return MsgNoResults
	}
	top := items[0]
	return fmt.Sprintf("Encontrei: **%s** - %s ([Link](%s))",
		orDefault(top.Title, "Sem título"),
		orDefault(top.Snippet, "Sem descrição"),
		orDefault(top.Link, "Sem link"))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
