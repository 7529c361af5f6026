// Package openweather queries the OpenWeatherMap current weather API.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rpatil26/travelbot/providers"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client handles OpenWeatherMap API requests
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new OpenWeatherMap client. An empty API key is
// allowed; calls then fail with an Unconfigured provider error.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Weather is the normalized current-weather result
type Weather struct {
	City             string
	Description      string
	TempCelsius      float64
	FeelsLikeCelsius float64
	HumidityPercent  int
}

// currentWeatherResponse mirrors the fields of the upstream document we
// rely on; weather and name are optional and defaulted on mapping.
type currentWeatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Name string `json:"name"`
}

// CurrentWeather fetches the current weather for a free-text city name.
// Temperatures are metric, rounded to one decimal place.
func (c *Client) CurrentWeather(ctx context.Context, city string) (*Weather, error) {
	const op = "openweather.current"

	if c.APIKey == "" {
		return nil, providers.Unconfigured(op)
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.APIKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, providers.UpstreamFailure(op, resp.StatusCode, string(body))
	}

	var result currentWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	w := &Weather{
		City:             result.Name,
		Description:      "No description",
		TempCelsius:      roundTenth(result.Main.Temp),
		FeelsLikeCelsius: roundTenth(result.Main.FeelsLike),
		HumidityPercent:  result.Main.Humidity,
	}
	if w.City == "" {
		w.City = city
	}
	if len(result.Weather) > 0 && result.Weather[0].Description != "" {
		w.Description = result.Weather[0].Description
	}

	return w, nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
