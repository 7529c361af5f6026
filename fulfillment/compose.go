package fulfillment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rpatil26/travelbot/providers/openweather"
	"github.com/rpatil26/travelbot/providers/tequila"
)

// maxShownFlights caps how many options a flight reply lists
const maxShownFlights = 3

// ComposeWeather renders a weather result as a single sentence
func ComposeWeather(w *openweather.Weather) string {
	return fmt.Sprintf("Weather in %s: %s. Temperature: %s°C (feels like %s°C). Humidity %d%%.",
		w.City, w.Description,
		formatNumber(w.TempCelsius), formatNumber(w.FeelsLikeCelsius),
		w.HumidityPercent)
}

// ComposeFlights renders a flight search result: a count header plus
// one line per option, truncated to the first maxShownFlights.
func ComposeFlights(origin, destination string, options []tequila.FlightOption) string {
	if len(options) == 0 {
		return fmt.Sprintf("I couldn't find flights from %s to %s. Try another date or cities.",
			origin, destination)
	}

	shown := options
	if len(shown) > maxShownFlights {
		shown = shown[:maxShownFlights]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are the top %d flights from %s to %s:\n", len(shown), origin, destination)
	for i, opt := range shown {
		price := "N/A"
		if opt.Price != nil {
			price = formatNumber(*opt.Price)
		}
		fmt.Fprintf(&b, "\n%d. %s %s — Departure: %s Arrival: %s — Price: %s %s",
			i+1, opt.Airline, opt.FlightNumber,
			opt.DepartureTime, opt.ArrivalTime,
			price, opt.Currency)
	}
	return b.String()
}

// formatNumber renders a float without trailing zeros (30.0 -> "30",
// 15.2 -> "15.2")
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
