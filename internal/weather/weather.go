// Package weather provides forecasts for event locations. Only a deterministic
// mock forecaster is implemented; a real provider can satisfy Forecaster.
package weather

import (
	"context"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"time"
)

// Conditions is the fixed set of weather descriptions with their icons.
var Conditions = []Condition{
	{Description: "Sunny", Icon: "☀️"},
	{Description: "Partly Cloudy", Icon: "⛅"},
	{Description: "Cloudy", Icon: "☁️"},
	{Description: "Light Rain", Icon: "🌦️"},
	{Description: "Clear", Icon: "🌤️"},
}

// Condition is one weather description and its icon.
type Condition struct {
	Description string
	Icon        string
}

// Data is the weather for a single point in time.
type Data struct {
	Temperature int       `json:"temperature"` // °C
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Humidity    int       `json:"humidity"`  // %
	WindSpeed   int       `json:"windSpeed"` // km/h
	Date        time.Time `json:"date"`
}

// Forecast is the current weather plus the following days.
type Forecast struct {
	Current  Data   `json:"current"`
	Forecast []Data `json:"forecast"`
}

// Forecaster returns a forecast for a location and event date.
type Forecaster interface {
	Forecast(ctx context.Context, location, date string) (Forecast, error)
}

// MockForecaster derives plausible weather from a hash of the location and date,
// so the same event always gets the same forecast.
type MockForecaster struct {
	Now  func() time.Time
	Days int
}

// NewMockForecaster creates a mock forecaster with a three-day outlook.
func NewMockForecaster() *MockForecaster {
	return &MockForecaster{Now: time.Now, Days: 3}
}

func (m *MockForecaster) Forecast(ctx context.Context, location, date string) (Forecast, error) {
	if err := ctx.Err(); err != nil {
		return Forecast{}, err
	}
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(location)))
	h.Write([]byte{0})
	h.Write([]byte(date))
	seed := h.Sum64()
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	now := m.Now().UTC()
	out := Forecast{Current: sample(rng, now), Forecast: make([]Data, m.Days)}
	for i := range out.Forecast {
		out.Forecast[i] = sample(rng, now.AddDate(0, 0, i+1))
	}
	return out, nil
}

func sample(rng *rand.Rand, at time.Time) Data {
	c := Conditions[rng.IntN(len(Conditions))]
	return Data{
		Temperature: rng.IntN(15) + 15,
		Description: c.Description,
		Icon:        c.Icon,
		Humidity:    rng.IntN(40) + 40,
		WindSpeed:   rng.IntN(10) + 5,
		Date:        at,
	}
}

var outdoorKeywords = []string{
	"park", "garden", "outdoor", "beach", "field", "playground", "trail",
	"street", "avenue", "block party", "festival", "market", "picnic",
}

// IsOutdoor guesses from the location and description whether an event happens outside.
func IsOutdoor(location, description string) bool {
	text := strings.ToLower(location + " " + description)
	for _, k := range outdoorKeywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
