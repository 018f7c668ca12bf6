package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aldermoor/weatherlog/internal/domain/records"
)

// reCoordinates matches a "lat, lon" pair typed into the location field.
var reCoordinates = regexp.MustCompile(`^(-?\d+\.?\d*)\s*,\s*(-?\d+\.?\d*)$`)

// Client fetches weather snapshots from the Open-Meteo forecast API. It
// implements ports.WeatherProvider.
type Client struct {
	forecast *baseClient
	geo      *geocoder

	forecastURL string
	logger      *zap.Logger
}

// Options configures a Client.
type Options struct {
	ForecastURL string
	GeocodeURL  string
	Timeout     time.Duration
	MaxRetries  int
}

// New creates a Client.
func New(opts Options, logger *zap.Logger) *Client {
	cfg := defaultClientConfig(opts.Timeout, opts.MaxRetries)
	return &Client{
		forecast: newBaseClient("openmeteo", cfg, logger),
		geo: &geocoder{
			base:    newBaseClient("photon", cfg, logger),
			baseURL: strings.TrimRight(opts.GeocodeURL, "/") + "/",
		},
		forecastURL: opts.ForecastURL,
		logger:      logger,
	}
}

// forecastResponse mirrors the Open-Meteo payload fields we consume.
type forecastResponse struct {
	Current *records.Current `json:"current"`
	Daily   records.Daily    `json:"daily"`
	Units   records.Units    `json:"current_units"`
}

// CurrentWeather resolves a free-text location and fetches its snapshot.
// A "lat, lon" pair bypasses geocoding. A non-empty date pair bounds the
// daily series; the provider omits the current reading for past ranges.
func (c *Client) CurrentWeather(ctx context.Context, location, unit, startDate, endDate string) (*records.Snapshot, error) {
	var (
		lat, lon    float64
		displayName string
	)

	if m := reCoordinates.FindStringSubmatch(strings.TrimSpace(location)); m != nil {
		var err error
		lat, err = strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing latitude: %w", err)
		}
		lon, err = strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing longitude: %w", err)
		}
		displayName = fmt.Sprintf("Coordinates: %g, %g", lat, lon)
	} else {
		pl, err := c.geo.resolve(ctx, location)
		if err != nil {
			return nil, err
		}
		lat, lon = pl.Latitude, pl.Longitude
		displayName = pl.DisplayName
	}

	snap, err := c.fetch(ctx, lat, lon, unit, startDate, endDate)
	if err != nil {
		return nil, err
	}
	snap.Location = displayName
	return snap, nil
}

// CoordinatesWeather fetches a snapshot for explicit coordinates, labelled
// as the caller's own location.
func (c *Client) CoordinatesWeather(ctx context.Context, lat, lon float64, unit string) (*records.Snapshot, error) {
	snap, err := c.fetch(ctx, lat, lon, unit, "", "")
	if err != nil {
		return nil, err
	}
	if snap.Current == nil {
		return nil, fmt.Errorf("no current conditions for %g, %g", lat, lon)
	}
	snap.Location = "Your Location"
	return snap, nil
}

func (c *Client) fetch(ctx context.Context, lat, lon float64, unit, startDate, endDate string) (*records.Snapshot, error) {
	if unit == "" {
		unit = "celsius"
	}

	u := fmt.Sprintf("%s?latitude=%g&longitude=%g"+
		"&current=temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code"+
		"&daily=temperature_2m_max,temperature_2m_min,weather_code,precipitation_probability_max"+
		"&timezone=auto&temperature_unit=%s&forecast_days=8",
		c.forecastURL, lat, lon, unit)
	if startDate != "" && endDate != "" {
		u += fmt.Sprintf("&start_date=%s&end_date=%s", startDate, endDate)
	}

	body, err := c.forecast.getWithRetry(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetching forecast: %w", err)
	}

	var resp forecastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding forecast: %w", err)
	}
	if resp.Current == nil && len(resp.Daily.Time) == 0 {
		return nil, fmt.Errorf("forecast response carried no data")
	}

	c.logger.Debug("forecast fetched",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.Bool("has_current", resp.Current != nil),
		zap.Int("daily_days", len(resp.Daily.Time)))

	return &records.Snapshot{
		Latitude:  lat,
		Longitude: lon,
		Current:   resp.Current,
		Daily:     resp.Daily,
		Units:     resp.Units,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}
