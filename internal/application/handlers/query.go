// Package handlers contains the application layer orchestrating domain
// services for the CLI.
package handlers

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/aldermoor/weatherlog/internal/domain/daterange"
	"github.com/aldermoor/weatherlog/internal/domain/ports"
	"github.com/aldermoor/weatherlog/internal/domain/records"
)

// QueryHandler handles weather queries at the application layer.
type QueryHandler struct {
	provider ports.WeatherProvider
	clock    clockwork.Clock
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(provider ports.WeatherProvider, clock clockwork.Clock) *QueryHandler {
	return &QueryHandler{
		provider: provider,
		clock:    clock,
	}
}

// HandleQuery validates the requested range against the current window and
// fetches a snapshot for a free-text location. The window is recomputed per
// call; validation is not sticky.
func (h *QueryHandler) HandleQuery(ctx context.Context, location, unit, startDate, endDate string) (*records.Snapshot, error) {
	window := daterange.ComputeWindow(h.clock.Now())
	if err := daterange.Validate(startDate, endDate, window); err != nil {
		return nil, err
	}

	return h.provider.CurrentWeather(ctx, location, unit, startDate, endDate)
}

// HandleCoordinates fetches a snapshot for explicit coordinates.
func (h *QueryHandler) HandleCoordinates(ctx context.Context, lat, lon float64, unit string) (*records.Snapshot, error) {
	return h.provider.CoordinatesWeather(ctx, lat, lon, unit)
}
