package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/varsilias/crystal/internal/locale"
	"github.com/varsilias/crystal/internal/upstream"
)

const DefaultBaseURL = "http://api.openweathermap.org/data/2.5/weather"

var (
	ErrNoAPIKey     = errors.New("weather: api key not configured")
	ErrUnauthorized = errors.New("weather: invalid api key")
	ErrNotFound     = errors.New("weather: city not found")
)

// APIError is a body-level failure ("cod" other than 200 in a 2xx answer).
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("weather: api error %s: %s", e.Code, e.Message)
}

type Client struct {
	baseURL string
	apiKey  string
	log     *slog.Logger
	client  *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
		client:  upstream.NewHTTPClient(timeout),
	}
}

// Conditions is the current weather for one city.
type Conditions struct {
	City        string
	Temperature float64 // °C
	Description string
}

type currentResponse struct {
	Cod     json.RawMessage `json:"cod"`
	Message string          `json:"message"`
	Main    *struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Current fetches metric, pt_br conditions for city.
func (c *Client) Current(ctx context.Context, city string) (cond Conditions, err error) {
	if c.apiKey == "" {
		return Conditions{}, ErrNoAPIKey
	}
	start := time.Now()
	defer func() { upstream.Observe("weather", start, err) }()

	q := url.Values{}
	q.Set("appid", c.apiKey)
	q.Set("q", city)
	q.Set("units", "metric")
	q.Set("lang", "pt_br")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Conditions{}, err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return Conditions{}, upstream.Transport(err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return Conditions{}, ErrUnauthorized
	case res.StatusCode == http.StatusNotFound:
		return Conditions{}, ErrNotFound
	case res.StatusCode >= 400:
		return Conditions{}, &upstream.HTTPError{Status: res.StatusCode}
	}

	var out currentResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return Conditions{}, upstream.Decode(err)
	}

	// "cod" arrives as a number on success and as a string on errors.
	switch code := strings.Trim(string(out.Cod), `"`); code {
	case "200":
	case "404":
		return Conditions{}, ErrNotFound
	default:
		if code == "" {
			code = "N/A"
		}
		return Conditions{}, &APIError{Code: code, Message: out.Message}
	}
	if out.Main == nil || len(out.Weather) == 0 {
		return Conditions{}, upstream.Decode(errors.New("missing main or weather"))
	}
	return Conditions{City: city, Temperature: out.Main.Temp, Description: out.Weather[0].Description}, nil
}

// Report answers "qual o tempo em <city>" with a sentence, never an error.
func (c *Client) Report(ctx context.Context, city string) string {
	cond, err := c.Current(ctx, city)
	if err != nil {
		c.log.Warn("weather lookup failed", "city", city, "err", err)
		return Apology(err)
	}
	return fmt.Sprintf("O tempo em %s é de %.1f°C com %s.",
		locale.Title(cond.City), cond.Temperature, locale.Capitalize(cond.Description))
}
