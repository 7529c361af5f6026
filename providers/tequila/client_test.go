package tequila

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpatil26/travelbot/providers"
)

// mockTequilaServer resolves Mumbai/Delhi as cities, Lonavala only as
// an airport, and serves a two-result flight search.
func mockTequilaServer(t *testing.T, searchBody string) (*httptest.Server, *[]url.Values) {
	t.Helper()
	var queries []url.Values

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("apikey"))
		queries = append(queries, r.URL.Query())
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/locations/query":
			term := r.URL.Query().Get("term")
			locationType := r.URL.Query().Get("location_types")
			switch {
			case term == "Mumbai" && locationType == "city":
				w.Write([]byte(`{"locations": [{"id": "BOM", "name": "Mumbai"}]}`))
			case term == "Delhi" && locationType == "city":
				w.Write([]byte(`{"locations": [{"id": "DEL", "name": "Delhi"}]}`))
			case term == "Lonavala" && locationType == "airport":
				w.Write([]byte(`{"locations": [{"id": "LON-airport", "name": "Lonavala"}]}`))
			default:
				w.Write([]byte(`{"locations": []}`))
			}
		case "/v2/search":
			w.Write([]byte(searchBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	return ts, &queries
}

func newTestClient(baseURL string) *Client {
	client := NewClient("secret")
	client.BaseURL = baseURL
	client.Now = func() time.Time {
		return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	}
	return client
}

func TestLocationCode_CityFirst(t *testing.T) {
	ts, queries := mockTequilaServer(t, `{}`)
	defer ts.Close()

	client := newTestClient(ts.URL)

	code, err := client.LocationCode(context.Background(), "Mumbai")
	require.NoError(t, err)
	assert.Equal(t, "BOM", code)

	require.Len(t, *queries, 1)
	assert.Equal(t, "city", (*queries)[0].Get("location_types"))
	assert.Equal(t, "1", (*queries)[0].Get("limit"))
}

func TestLocationCode_FallsBackToAirport(t *testing.T) {
	ts, queries := mockTequilaServer(t, `{}`)
	defer ts.Close()

	client := newTestClient(ts.URL)

	code, err := client.LocationCode(context.Background(), "Lonavala")
	require.NoError(t, err)
	assert.Equal(t, "LON-airport", code)

	require.Len(t, *queries, 2)
	assert.Equal(t, "city", (*queries)[0].Get("location_types"))
	assert.Equal(t, "airport", (*queries)[1].Get("location_types"))
}

func TestLocationCode_ExhaustedIsLocationNotFound(t *testing.T) {
	ts, queries := mockTequilaServer(t, `{}`)
	defer ts.Close()

	client := newTestClient(ts.URL)

	_, err := client.LocationCode(context.Background(), "Atlantis")
	perr, ok := providers.AsError(err)
	require.True(t, ok)
	assert.Equal(t, providers.KindLocationNotFound, perr.Kind)
	assert.Equal(t, "Atlantis", perr.Term)
	assert.Len(t, *queries, 2)
}

func TestSearchFlights_FixedPolicyAndDateWindow(t *testing.T) {
	ts, queries := mockTequilaServer(t, `{"currency": "USD", "data": []}`)
	defer ts.Close()

	client := newTestClient(ts.URL)

	options, err := client.SearchFlights(context.Background(), SearchQuery{
		Origin:      "Mumbai",
		Destination: "Delhi",
	})
	require.NoError(t, err)
	assert.Empty(t, options)

	// Two location lookups then the search itself
	require.Len(t, *queries, 3)
	search := (*queries)[2]
	assert.Equal(t, "BOM", search.Get("fly_from"))
	assert.Equal(t, "DEL", search.Get("fly_to"))
	assert.Equal(t, "oneway", search.Get("flight_type"))
	assert.Equal(t, "1", search.Get("one_for_city"))
	assert.Equal(t, "2", search.Get("max_stopovers"))
	assert.Equal(t, "10", search.Get("limit"))
	assert.Equal(t, "USD", search.Get("curr"))
	// No explicit date: [today, today+7d]
	assert.Equal(t, "01/09/2026", search.Get("dateFrom"))
	assert.Equal(t, "08/09/2026", search.Get("dateTo"))
}

func TestSearchFlights_SingleDayWindow(t *testing.T) {
	ts, queries := mockTequilaServer(t, `{"currency": "USD", "data": []}`)
	defer ts.Close()

	client := newTestClient(ts.URL)

	_, err := client.SearchFlights(context.Background(), SearchQuery{
		Origin:      "Mumbai",
		Destination: "Delhi",
		Date:        "2026-10-05",
	})
	require.NoError(t, err)

	search := (*queries)[2]
	assert.Equal(t, "05/10/2026", search.Get("dateFrom"))
	assert.Equal(t, "05/10/2026", search.Get("dateTo"))
}

func TestSearchFlights_UnparseableDateFallsBackToDefaultWindow(t *testing.T) {
	ts, queries := mockTequilaServer(t, `{"currency": "USD", "data": []}`)
	defer ts.Close()

	client := newTestClient(ts.URL)

	_, err := client.SearchFlights(context.Background(), SearchQuery{
		Origin:      "Mumbai",
		Destination: "Delhi",
		Date:        "next friday",
	})
	require.NoError(t, err)

	search := (*queries)[2]
	assert.Equal(t, "01/09/2026", search.Get("dateFrom"))
	assert.Equal(t, "08/09/2026", search.Get("dateTo"))
}

func TestSearchFlights_MapsResults(t *testing.T) {
	body := `{
		"currency": "USD",
		"data": [
			{
				"price": 89.5,
				"currency": "EUR",
				"airlines": ["6E"],
				"route": [{
					"airline": "6E",
					"flight_no": 101,
					"local_departure": "2026-10-05T06:30:00.000Z",
					"local_arrival": "2026-10-05T08:45:00.000Z"
				}]
			},
			{
				"airlines": ["AI"],
				"route": []
			},
			{
				"route": []
			}
		]
	}`
	ts, _ := mockTequilaServer(t, body)
	defer ts.Close()

	client := newTestClient(ts.URL)

	options, err := client.SearchFlights(context.Background(), SearchQuery{
		Origin:      "Mumbai",
		Destination: "Delhi",
	})
	require.NoError(t, err)
	require.Len(t, options, 3)

	first := options[0]
	assert.Equal(t, "6E", first.Airline)
	assert.Equal(t, "6E101", first.FlightNumber)
	require.NotNil(t, first.Price)
	assert.Equal(t, 89.5, *first.Price)
	assert.Equal(t, "EUR", first.Currency)
	dep, _ := time.Parse(time.RFC3339, "2026-10-05T06:30:00.000Z")
	assert.Equal(t, dep.Local().Format("02 Jan 2006 15:04"), first.DepartureTime)

	second := options[1]
	assert.Equal(t, "AI", second.Airline)
	assert.Equal(t, "N/A", second.FlightNumber)
	assert.Equal(t, "N/A", second.DepartureTime)
	assert.Equal(t, "N/A", second.ArrivalTime)
	assert.Nil(t, second.Price)
	assert.Equal(t, "USD", second.Currency)

	third := options[2]
	assert.Equal(t, "Unknown", third.Airline)
	assert.Equal(t, "USD", third.Currency)
}

func TestSearchFlights_UpstreamFailureOnLookup(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("tequila down"))
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)

	_, err := client.SearchFlights(context.Background(), SearchQuery{
		Origin:      "Mumbai",
		Destination: "Delhi",
	})
	perr, ok := providers.AsError(err)
	require.True(t, ok)
	assert.Equal(t, providers.KindUpstreamFailure, perr.Kind)
	assert.Equal(t, http.StatusInternalServerError, perr.Status)
	assert.Equal(t, "tequila down", perr.Body)
}

func TestSearchFlights_MissingKeyIsUnconfigured(t *testing.T) {
	client := NewClient("")

	_, err := client.SearchFlights(context.Background(), SearchQuery{
		Origin:      "Mumbai",
		Destination: "Delhi",
	})
	perr, ok := providers.AsError(err)
	require.True(t, ok)
	assert.Equal(t, providers.KindUnconfigured, perr.Kind)
}
