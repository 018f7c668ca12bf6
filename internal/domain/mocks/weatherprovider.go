package mocks

import (
	"context"

	"github.com/aldermoor/weatherlog/internal/domain/records"
)

// WeatherProvider is a mock implementation of ports.WeatherProvider.
type WeatherProvider struct {
	Snapshot *records.Snapshot
	Err      error

	CurrentCalls     int
	CoordinatesCalls int
}

// CurrentWeather returns the configured snapshot or error.
func (m *WeatherProvider) CurrentWeather(_ context.Context, _, _, startDate, endDate string) (*records.Snapshot, error) {
	m.CurrentCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	snap := *m.Snapshot
	snap.StartDate = startDate
	snap.EndDate = endDate
	return &snap, nil
}

// CoordinatesWeather returns the configured snapshot or error.
func (m *WeatherProvider) CoordinatesWeather(_ context.Context, _, _ float64, _ string) (*records.Snapshot, error) {
	m.CoordinatesCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	snap := *m.Snapshot
	return &snap, nil
}
