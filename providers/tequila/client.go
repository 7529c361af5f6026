// Package tequila queries the Kiwi.com Tequila flight API: free-text
// location resolution plus one-way flight search.
package tequila

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rpatil26/travelbot/log"
	"github.com/rpatil26/travelbot/providers"
)

const defaultBaseURL = "https://tequila-api.kiwi.com"

// dateLayout is the dd/mm/yyyy form the search endpoint expects
const dateLayout = "02/01/2006"

// displayLayout renders upstream timestamps for the end user
const displayLayout = "02 Jan 2006 15:04"

// Client handles Tequila API requests
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Now        func() time.Time
}

// NewClient creates a new Tequila client. An empty API key is allowed;
// calls then fail with an Unconfigured provider error.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Now:        time.Now,
	}
}

// SearchQuery carries the normalized flight-search slots. TravelClass
// is accepted for completeness but not forwarded upstream.
type SearchQuery struct {
	Origin      string
	Destination string
	Date        string // YYYY-MM-DD, optional
	TravelClass string
}

// FlightOption is one reshaped search result. Price is nil when the
// upstream omits it.
type FlightOption struct {
	Airline       string
	FlightNumber  string
	DepartureTime string
	ArrivalTime   string
	Price         *float64
	Currency      string
}

type locationsResponse struct {
	Locations []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"locations"`
}

type searchResponse struct {
	Currency string         `json:"currency"`
	Data     []searchResult `json:"data"`
}

type searchResult struct {
	Price    *float64       `json:"price"`
	Currency string         `json:"currency"`
	Airlines []string       `json:"airlines"`
	Route    []routeSegment `json:"route"`
}

type routeSegment struct {
	Airline        string `json:"airline"`
	FlightNo       int    `json:"flight_no"`
	LocalDeparture string `json:"local_departure"`
	LocalArrival   string `json:"local_arrival"`
}

// get performs a header-authenticated GET and decodes the JSON body
// into out. Non-200 responses become UpstreamFailure errors.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return providers.UpstreamFailure(op, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}

// LocationCode resolves a free-text city name to a Tequila location
// code. Cities are tried first; an empty result falls back to airports
// once. Two empty results are a LocationNotFound failure.
func (c *Client) LocationCode(ctx context.Context, term string) (string, error) {
	const op = "tequila.locations"

	if c.APIKey == "" {
		return "", providers.Unconfigured(op)
	}

	for _, locationType := range []string{"city", "airport"} {
		q := url.Values{}
		q.Set("term", term)
		q.Set("location_types", locationType)
		q.Set("limit", "1")

		var result locationsResponse
		if err := c.get(ctx, op, "/locations/query", q, &result); err != nil {
			return "", err
		}
		if len(result.Locations) > 0 {
			return result.Locations[0].ID, nil
		}
	}

	return "", providers.LocationNotFound(op, term)
}

// SearchFlights resolves both endpoints and issues a single one-way
// search. An empty result set is an empty slice, not an error.
func (c *Client) SearchFlights(ctx context.Context, query SearchQuery) ([]FlightOption, error) {
	const op = "tequila.search"

	if c.APIKey == "" {
		return nil, providers.Unconfigured(op)
	}

	originCode, err := c.LocationCode(ctx, query.Origin)
	if err != nil {
		return nil, err
	}
	destCode, err := c.LocationCode(ctx, query.Destination)
	if err != nil {
		return nil, err
	}

	dateFrom, dateTo := c.dateWindow(query.Date)

	q := url.Values{}
	q.Set("fly_from", originCode)
	q.Set("fly_to", destCode)
	q.Set("dateFrom", dateFrom)
	q.Set("dateTo", dateTo)
	q.Set("flight_type", "oneway")
	q.Set("one_for_city", "1")
	q.Set("max_stopovers", "2")
	q.Set("limit", "10")
	q.Set("curr", "USD")

	var result searchResponse
	if err := c.get(ctx, op, "/v2/search", q, &result); err != nil {
		return nil, err
	}

	log.Debugf(ctx, "tequila search %s -> %s returned %d results", originCode, destCode, len(result.Data))

	options := make([]FlightOption, 0, len(result.Data))
	for _, r := range result.Data {
		options = append(options, mapResult(r, result.Currency))
	}
	return options, nil
}

// dateWindow converts a YYYY-MM-DD date into a single-day dd/mm/yyyy
// window, or defaults to [today, today+7d] when the date is absent or
// unparseable.
func (c *Client) dateWindow(date string) (string, string) {
	if date != "" {
		if t, err := time.Parse("2006-01-02", date); err == nil {
			d := t.Format(dateLayout)
			return d, d
		}
	}
	today := c.Now()
	return today.Format(dateLayout), today.AddDate(0, 0, 7).Format(dateLayout)
}

// mapResult reshapes one raw search result, defaulting every optional
// upstream field.
func mapResult(r searchResult, searchCurrency string) FlightOption {
	opt := FlightOption{
		Airline:       "Unknown",
		FlightNumber:  "N/A",
		DepartureTime: "N/A",
		ArrivalTime:   "N/A",
		Price:         r.Price,
		Currency:      r.Currency,
	}

	if len(r.Route) > 0 {
		seg := r.Route[0]
		opt.Airline = seg.Airline
		opt.FlightNumber = seg.Airline + strconv.Itoa(seg.FlightNo)
		opt.DepartureTime = displayTime(seg.LocalDeparture)
		opt.ArrivalTime = displayTime(seg.LocalArrival)
	} else if len(r.Airlines) > 0 {
		opt.Airline = r.Airlines[0]
	}

	if opt.Currency == "" {
		opt.Currency = searchCurrency
	}
	if opt.Currency == "" {
		opt.Currency = "USD"
	}

	return opt
}

// displayTime converts an upstream RFC3339 timestamp to a local
// display string, or "N/A" when absent or unparseable.
func displayTime(ts string) string {
	if ts == "" {
		return "N/A"
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return "N/A"
	}
	return t.Local().Format(displayLayout)
}
