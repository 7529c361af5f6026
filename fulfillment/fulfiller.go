// Package fulfillment routes classified intents to handlers and turns
// provider results into a single natural-language reply.
package fulfillment

import (
	"context"

	"github.com/rpatil26/travelbot/dialogflow"
	"github.com/rpatil26/travelbot/log"
	"github.com/rpatil26/travelbot/providers/openweather"
	"github.com/rpatil26/travelbot/providers/tequila"
)

// Known intent names, matched exactly and case-sensitively
const (
	IntentWelcome  = "Default Welcome Intent"
	IntentFallback = "Default Fallback Intent"
	IntentWeather  = "Check_Weather"
	IntentFlight   = "Book_Flight"
)

// Fixed user-facing replies
const (
	welcomeReply      = "Hi! I am your travel assistant. How can I help?"
	fallbackReply     = "Sorry, I didn't get that. Can you rephrase?"
	askCityReply      = "Which city would you like the weather for?"
	askRouteReply     = "Please tell me the origin and destination city (e.g., from Mumbai to Delhi)."
	weatherErrorReply = "Sorry, I couldn't fetch the weather right now. Please try again later."
	flightsErrorReply = "Sorry, I couldn't search flights right now. Please try again later."
)

// Slot alias lists, highest priority first. These track the parameter
// names used across agent revisions.
var (
	cityAliases        = []string{"geo-city", "place", "city"}
	originAliases      = []string{"origin", "from", "place-from", "city-from"}
	destinationAliases = []string{"destination", "to", "place-to", "city-to"}
	dateAliases        = []string{"date", "travel_date", "date-period"}
	travelClassAliases = []string{"flight-class", "travel_class"}
)

const defaultTravelClass = "economy"

// WeatherService is the weather provider surface the handlers need
type WeatherService interface {
	CurrentWeather(ctx context.Context, city string) (*openweather.Weather, error)
}

// FlightService is the flight provider surface the handlers need
type FlightService interface {
	SearchFlights(ctx context.Context, query tequila.SearchQuery) ([]tequila.FlightOption, error)
}

// Fulfiller dispatches intents to handlers backed by the injected
// provider clients. It holds no per-request state.
type Fulfiller struct {
	Weather WeatherService
	Flights FlightService
}

// New creates a Fulfiller backed by the given providers
func New(weather WeatherService, flights FlightService) *Fulfiller {
	return &Fulfiller{Weather: weather, Flights: flights}
}

// Dispatch routes one request to its handler and always returns a
// reply, converting every provider failure into a fixed apology.
func (f *Fulfiller) Dispatch(ctx context.Context, req *dialogflow.WebhookRequest) string {
	intent := req.IntentName()

	switch intent {
	case IntentWelcome:
		return welcomeReply
	case IntentWeather:
		return f.checkWeather(ctx, req.Params())
	case IntentFlight:
		return f.bookFlight(ctx, req.Params())
	case IntentFallback:
		return fallbackReply
	default:
		log.Infof(ctx, "unrecognized intent %q, using fallback", intent)
		return fallbackReply
	}
}

// checkWeather handles the Check_Weather intent
func (f *Fulfiller) checkWeather(ctx context.Context, params dialogflow.Params) string {
	city := params.First(cityAliases...)
	if city == "" {
		return askCityReply
	}

	w, err := f.Weather.CurrentWeather(ctx, city)
	if err != nil {
		log.Errorf(ctx, "weather lookup for %q failed: %v", city, err)
		return weatherErrorReply
	}

	return ComposeWeather(w)
}

// bookFlight handles the Book_Flight intent
func (f *Fulfiller) bookFlight(ctx context.Context, params dialogflow.Params) string {
	origin := params.First(originAliases...)
	destination := params.First(destinationAliases...)
	if origin == "" || destination == "" {
		return askRouteReply
	}

	query := tequila.SearchQuery{
		Origin:      origin,
		Destination: destination,
		Date:        params.First(dateAliases...),
		TravelClass: params.FirstOr(defaultTravelClass, travelClassAliases...),
	}

	options, err := f.Flights.SearchFlights(ctx, query)
	if err != nil {
		log.Errorf(ctx, "flight search %s -> %s failed: %v", origin, destination, err)
		return flightsErrorReply
	}

	return ComposeFlights(origin, destination, options)
}
