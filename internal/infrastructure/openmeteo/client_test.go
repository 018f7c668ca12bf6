package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aldermoor/weatherlog/internal/domain/records"
)

const forecastBody = `{
  "current": {"time": "2024-05-15T10:30", "temperature_2m": 18.4, "relative_humidity_2m": 60, "wind_speed_10m": 12.5, "weather_code": 61},
  "current_units": {"temperature_2m": "°C", "wind_speed_10m": "km/h"},
  "daily": {
    "time": ["2024-05-15", "2024-05-16"],
    "temperature_2m_max": [19.0, 21.5],
    "temperature_2m_min": [11.2, 12.8],
    "weather_code": [61, 3],
    "precipitation_probability_max": [80, 20]
  }
}`

const geocodeBody = `{
  "features": [{
    "geometry": {"coordinates": [2.3522, 48.8566]},
    "properties": {"name": "Paris", "city": "Paris", "state": "Ile-de-France", "country": "France"}
  }]
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	c := New(Options{
		ForecastURL: srv.URL + "/v1/forecast",
		GeocodeURL:  srv.URL + "/api/",
		Timeout:     5 * time.Second,
		MaxRetries:  0,
	}, zap.NewNop())
	return c, srv
}

func routeHandler(t *testing.T, onForecast func(r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/":
			w.Write([]byte(geocodeBody))
		case "/v1/forecast":
			if onForecast != nil {
				onForecast(r)
			}
			w.Write([]byte(forecastBody))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestCurrentWeatherGeocodesFreeText(t *testing.T) {
	var forecastQuery string
	c, srv := newTestProvider(t, routeHandler(t, func(r *http.Request) {
		forecastQuery = r.URL.RawQuery
	}))
	defer srv.Close()

	snap, err := c.CurrentWeather(context.Background(), "Paris", "celsius", "", "")
	require.NoError(t, err)

	// Duplicate name/city collapse into one part.
	assert.Equal(t, "Paris, Ile-de-France, France", snap.Location)
	assert.InDelta(t, 48.8566, snap.Latitude, 0.0001)
	require.NotNil(t, snap.Current)
	assert.Equal(t, 61, snap.Current.WeatherCode)
	assert.Len(t, snap.Daily.Time, 2)

	assert.Contains(t, forecastQuery, "temperature_unit=celsius")
	assert.Contains(t, forecastQuery, "forecast_days=8")
	assert.NotContains(t, forecastQuery, "start_date")
}

func TestCurrentWeatherCoordinateStringSkipsGeocoding(t *testing.T) {
	geocodeCalls := 0
	c, srv := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/" {
			geocodeCalls++
		}
		w.Write([]byte(forecastBody))
	})
	defer srv.Close()

	snap, err := c.CurrentWeather(context.Background(), "40.71, -74.00", "celsius", "", "")
	require.NoError(t, err)
	assert.Zero(t, geocodeCalls)
	assert.Equal(t, "Coordinates: 40.71, -74", snap.Location)
	assert.InDelta(t, 40.71, snap.Latitude, 0.0001)
}

func TestCurrentWeatherDateRange(t *testing.T) {
	var forecastQuery string
	c, srv := newTestProvider(t, routeHandler(t, func(r *http.Request) {
		forecastQuery = r.URL.RawQuery
	}))
	defer srv.Close()

	snap, err := c.CurrentWeather(context.Background(), "Paris", "celsius", "2024-05-16", "2024-05-18")
	require.NoError(t, err)

	assert.Contains(t, forecastQuery, "start_date=2024-05-16")
	assert.Contains(t, forecastQuery, "end_date=2024-05-18")
	assert.Equal(t, "2024-05-16", snap.StartDate)
	assert.Equal(t, "2024-05-18", snap.EndDate)
}

func TestCurrentWeatherUnknownLocation(t *testing.T) {
	c, srv := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features": []}`))
	})
	defer srv.Close()

	_, err := c.CurrentWeather(context.Background(), "Nowhereville", "celsius", "", "")
	assert.ErrorIs(t, err, records.ErrLocationNotFound)
}

func TestCoordinatesWeather(t *testing.T) {
	c, srv := newTestProvider(t, routeHandler(t, nil))
	defer srv.Close()

	snap, err := c.CoordinatesWeather(context.Background(), 48.85, 2.35, "celsius")
	require.NoError(t, err)
	assert.Equal(t, "Your Location", snap.Location)
	require.NotNil(t, snap.Current)
	assert.InDelta(t, 18.4, snap.Current.Temperature, 0.0001)
}

func TestCoordinatesWeatherRequiresCurrent(t *testing.T) {
	c, srv := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily": {"time": ["2024-05-15"], "temperature_2m_max": [19.0], "temperature_2m_min": [11.2], "weather_code": [61], "precipitation_probability_max": [80]}}`))
	})
	defer srv.Close()

	_, err := c.CoordinatesWeather(context.Background(), 48.85, 2.35, "celsius")
	assert.Error(t, err)
}

func TestFetchRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	c := New(Options{
		ForecastURL: srv.URL + "/v1/forecast",
		GeocodeURL:  srv.URL + "/api/",
		Timeout:     5 * time.Second,
		MaxRetries:  2,
	}, zap.NewNop())

	snap, err := c.CoordinatesWeather(context.Background(), 48.85, 2.35, "celsius")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.NotNil(t, snap.Current)
}
