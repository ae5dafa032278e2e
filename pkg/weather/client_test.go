package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const currentPayload = `{
	"name": "London",
	"sys": {"country": "GB"},
	"weather": [{"description": "scattered clouds"}],
	"main": {"temp": 15.2, "feels_like": 14.1, "humidity": 72},
	"wind": {"speed": 3.5}
}`

const forecastPayload = `{
	"city": {"name": "Paris", "country": "FR"},
	"list": [
		{"dt_txt": "2026-09-02 09:00:00", "weather": [{"description": "light rain"}], "main": {"temp": 18.0, "humidity": 80}},
		{"dt_txt": "2026-09-02 12:00:00", "weather": [{"description": "overcast"}], "main": {"temp": 19.5, "humidity": 75}}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", nil, WithBaseURL(srv.URL), WithHTTPClient(srv.Client())), srv
}

func TestCurrentWeather(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather" {
			t.Errorf("path = %q, want /weather", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "London" || q.Get("units") != "metric" || q.Get("appid") != "test-key" {
			t.Errorf("unexpected query params: %v", q)
		}
		w.Write([]byte(currentPayload))
	})

	result, err := client.CurrentOrForecast(context.Background(), "London", "", false)
	if err != nil {
		t.Fatalf("CurrentOrForecast() error = %v", err)
	}

	if result.City != "London" || result.Country != "GB" {
		t.Errorf("location = %s, %s, want London, GB", result.City, result.Country)
	}
	if result.Temperature != 15.2 || result.Humidity != 72 {
		t.Errorf("conditions = %v°C %d%%, want 15.2°C 72%%", result.Temperature, result.Humidity)
	}
	if result.Forecast {
		t.Error("Forecast = true for a current conditions request")
	}
	for _, want := range []string{"London, GB", "scattered clouds", "15.2°C", "feels like 14.1°C", "72%", "3.5 m/s"} {
		if !strings.Contains(result.Formatted, want) {
			t.Errorf("Formatted missing %q:\n%s", want, result.Formatted)
		}
	}
}

func TestForecastWeather(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("path = %q, want /forecast", r.URL.Path)
		}
		w.Write([]byte(forecastPayload))
	})

	result, err := client.CurrentOrForecast(context.Background(), "Paris", "FR", true)
	if err != nil {
		t.Fatalf("CurrentOrForecast() error = %v", err)
	}

	if !result.Forecast {
		t.Error("Forecast = false for a forecast request")
	}
	for _, want := range []string{"Paris, FR", "light rain", "overcast", "2026-09-02 09:00:00"} {
		if !strings.Contains(result.Formatted, want) {
			t.Errorf("Formatted missing %q:\n%s", want, result.Formatted)
		}
	}
}

func TestCityNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	})

	_, err := client.CurrentOrForecast(context.Background(), "Atlantis", "", false)
	if err == nil {
		t.Fatal("expected an error for an unknown city")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want a not-found message", err)
	}
}

func TestResponseCaching(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(currentPayload))
	})

	for i := 0; i < 3; i++ {
		if _, err := client.CurrentOrForecast(context.Background(), "London", "", false); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if calls != 1 {
		t.Errorf("upstream calls = %d, want 1 (cached)", calls)
	}

	// Forecast mode is a separate cache entry.
	client2, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/forecast" {
			w.Write([]byte(forecastPayload))
			return
		}
		w.Write([]byte(currentPayload))
	})
	if _, err := client2.CurrentOrForecast(context.Background(), "Paris", "", false); err != nil {
		t.Fatal(err)
	}
	if _, err := client2.CurrentOrForecast(context.Background(), "Paris", "", true); err != nil {
		t.Fatal(err)
	}
}

func TestMissingAPIKey(t *testing.T) {
	client := NewClient("", nil)
	if _, err := client.CurrentOrForecast(context.Background(), "London", "", false); err == nil {
		t.Fatal("expected an error when no API key is configured")
	}
}
