package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config for the Open-Meteo client. Both endpoints are public and keyless.
type Config struct {
	GeocodingURL string        `split_words:"true" default:"https://geocoding-api.open-meteo.com/v1/search"`
	ForecastURL  string        `split_words:"true" default:"https://api.open-meteo.com/v1/forecast"`
	Timeout      time.Duration `split_words:"true" default:"5s"`
}

type Client struct {
	geocodingURL string
	forecastURL  string
	httpClient   *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	geocodingURL := strings.TrimSpace(cfg.GeocodingURL)
	if geocodingURL == "" {
		return nil, errors.New("geocoding url is required")
	}
	forecastURL := strings.TrimSpace(cfg.ForecastURL)
	if forecastURL == "" {
		return nil, errors.New("forecast url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		geocodingURL: strings.TrimRight(geocodingURL, "/"),
		forecastURL:  strings.TrimRight(forecastURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		Precipitation float64 `json:"precipitation"`
		WeatherCode   int     `json:"weather_code"`
	} `json:"current"`
}

// CurrentConditions geocodes the free-text location and returns a one-line
// weather summary.
func (c *Client) CurrentConditions(ctx context.Context, location string) (string, error) {
	lat, lon, name, err := c.geocode(ctx, location)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", lat))
	query.Set("longitude", fmt.Sprintf("%.4f", lon))
	query.Set("current", "temperature_2m,wind_speed_10m,precipitation,weather_code")
	query.Set("temperature_unit", "fahrenheit")
	query.Set("wind_speed_unit", "mph")

	var forecast forecastResponse
	if err := c.getJSON(ctx, c.forecastURL+"?"+query.Encode(), &forecast); err != nil {
		return "", fmt.Errorf("fetch forecast: %w", err)
	}

	return fmt.Sprintf("%s in %s, %.0f°F, wind %.0f mph",
		describeWeatherCode(forecast.Current.WeatherCode), name,
		forecast.Current.Temperature, forecast.Current.WindSpeed), nil
}

func (c *Client) geocode(ctx context.Context, location string) (lat, lon float64, name string, err error) {
	query := url.Values{}
	query.Set("name", strings.TrimSpace(location))
	query.Set("count", "1")

	var geo geocodingResponse
	if err := c.getJSON(ctx, c.geocodingURL+"?"+query.Encode(), &geo); err != nil {
		return 0, 0, "", fmt.Errorf("geocode %q: %w", location, err)
	}
	if len(geo.Results) == 0 {
		return 0, 0, "", fmt.Errorf("no geocoding result for %q", location)
	}
	r := geo.Results[0]
	return r.Latitude, r.Longitude, r.Name, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// describeWeatherCode maps WMO weather codes to a short phrase.
func describeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "Clear skies"
	case code <= 3:
		return "Partly cloudy"
	case code <= 48:
		return "Foggy"
	case code <= 57:
		return "Drizzle"
	case code <= 67:
		return "Rain"
	case code <= 77:
		return "Snow"
	case code <= 82:
		return "Rain showers"
	case code <= 86:
		return "Snow showers"
	default:
		return "Thunderstorms"
	}
}
