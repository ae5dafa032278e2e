// Package weather implements the workflow.WeatherProvider contract on top of
// the OpenWeatherMap REST API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"ai-assistant-be/pkg/workflow"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5"
	cacheTTL       = 10 * time.Minute
)

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	cache   *gocache.Cache
	logger  *log.Logger
}

type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func NewClient(apiKey string, logger *log.Logger, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type currentResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type forecastResponse struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
	List []struct {
		DtTxt   string `json:"dt_txt"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
	} `json:"list"`
}

// CurrentOrForecast fetches current conditions or a short forecast for the
// given city. Responses are cached per city and mode for a few minutes.
func (c *Client) CurrentOrForecast(ctx context.Context, city, country string, wantsForecast bool) (*workflow.WeatherResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("weather api key is not configured")
	}

	cacheKey := fmt.Sprintf("%s|%s|forecast=%v", strings.ToLower(city), strings.ToLower(country), wantsForecast)
	if cached, found := c.cache.Get(cacheKey); found {
		if c.logger != nil {
			c.logger.Printf("[WEATHER] cache hit for %s", cacheKey)
		}
		return cached.(*workflow.WeatherResult), nil
	}

	var (
		result *workflow.WeatherResult
		err    error
	)
	if wantsForecast {
		result, err = c.forecast(ctx, city, country)
	} else {
		result, err = c.current(ctx, city, country)
	}
	if err != nil {
		return nil, err
	}

	c.cache.Set(cacheKey, result, cacheTTL)
	return result, nil
}

func (c *Client) current(ctx context.Context, city, country string) (*workflow.WeatherResult, error) {
	var payload currentResponse
	if err := c.get(ctx, "/weather", city, country, &payload); err != nil {
		return nil, err
	}

	description := "unknown"
	if len(payload.Weather) > 0 {
		description = payload.Weather[0].Description
	}

	result := &workflow.WeatherResult{
		City:        payload.Name,
		Country:     payload.Sys.Country,
		Description: description,
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
	}
	result.Formatted = formatCurrent(result)
	return result, nil
}

func (c *Client) forecast(ctx context.Context, city, country string) (*workflow.WeatherResult, error) {
	var payload forecastResponse
	if err := c.get(ctx, "/forecast", city, country, &payload); err != nil {
		return nil, err
	}
	if len(payload.List) == 0 {
		return nil, fmt.Errorf("forecast for %q returned no entries", city)
	}

	first := payload.List[0]
	description := "unknown"
	if len(first.Weather) > 0 {
		description = first.Weather[0].Description
	}

	result := &workflow.WeatherResult{
		City:        payload.City.Name,
		Country:     payload.City.Country,
		Description: description,
		Temperature: first.Main.Temp,
		Humidity:    first.Main.Humidity,
		Forecast:    true,
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🌤️ **Weather Forecast for %s, %s**\n", result.City, result.Country)
	// The API reports 3-hour steps; one entry per step is plenty for a chat
	// reply, so cap the list at five.
	limit := len(payload.List)
	if limit > 5 {
		limit = 5
	}
	for _, entry := range payload.List[:limit] {
		desc := "unknown"
		if len(entry.Weather) > 0 {
			desc = entry.Weather[0].Description
		}
		fmt.Fprintf(&b, "\n**%s:** %s, %.1f°C, humidity %d%%", entry.DtTxt, desc, entry.Main.Temp, entry.Main.Humidity)
	}
	result.Formatted = b.String()
	return result, nil
}

func formatCurrent(r *workflow.WeatherResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌤️ **Weather in %s, %s**\n\n", r.City, r.Country)
	fmt.Fprintf(&b, "**Current Conditions:** %s\n", r.Description)
	fmt.Fprintf(&b, "**Temperature:** %.1f°C (feels like %.1f°C)\n", r.Temperature, r.FeelsLike)
	fmt.Fprintf(&b, "**Humidity:** %d%%\n", r.Humidity)
	fmt.Fprintf(&b, "**Wind Speed:** %.1f m/s", r.WindSpeed)
	return b.String()
}

func (c *Client) get(ctx context.Context, path, city, country string, out interface{}) error {
	q := city
	if country != "" {
		q = city + "," + country
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	endpoint := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call weather api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read weather response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("city %q not found", city)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode weather response: %w", err)
	}
	return nil
}
