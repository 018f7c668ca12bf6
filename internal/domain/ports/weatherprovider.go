package ports

import (
	"context"

	"github.com/aldermoor/weatherlog/internal/domain/records"
)

// WeatherProvider is the weather query collaborator.
type WeatherProvider interface {
	// CurrentWeather resolves a free-text location (or a "lat, lon" pair) and
	// fetches a snapshot. A non-empty startDate/endDate pair bounds the daily
	// series; historical ranges carry no current reading.
	CurrentWeather(ctx context.Context, location, unit, startDate, endDate string) (*records.Snapshot, error)

	// CoordinatesWeather fetches a snapshot for explicit coordinates.
	CoordinatesWeather(ctx context.Context, lat, lon float64, unit string) (*records.Snapshot, error)
}
