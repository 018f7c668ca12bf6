package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aldermoor/weatherlog/internal/domain/mocks"
	"github.com/aldermoor/weatherlog/internal/domain/records"
	"github.com/aldermoor/weatherlog/internal/infrastructure/config"
	"github.com/aldermoor/weatherlog/internal/infrastructure/recorddb/sqlite"
)

func newTestServer(t *testing.T) (*Server, *mocks.WeatherProvider) {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC))
	repo, err := sqlite.NewRepository(config.SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "weatherlog.db"),
	}, clock)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.EnsureSchema(context.Background()))

	provider := &mocks.WeatherProvider{
		Snapshot: &records.Snapshot{
			Location: "Paris, France",
			Current:  &records.Current{Temperature: 18.4, WeatherCode: 61},
		},
	}
	return New(repo, provider, zap.NewNop()), provider
}

func doJSON(t *testing.T, s *Server, method, path string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeRecord(t *testing.T, resp *http.Response) records.Record {
	t.Helper()
	var rec records.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	return rec
}

func TestHistoryCRUD(t *testing.T) {
	s, _ := newTestServer(t)

	// Empty collection renders as an empty array, not null.
	resp := doJSON(t, s, http.MethodGet, "/history", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(raw)))

	resp = doJSON(t, s, http.MethodPost, "/history", createRequest{
		Location:    "Paris, France",
		Temperature: 18.4,
		Description: "61",
		StartDate:   "2024-05-15",
		EndDate:     "2024-05-16",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeRecord(t, resp)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Timestamp.IsZero())

	resp = doJSON(t, s, http.MethodPut, "/history/"+created.ID, map[string]string{"note": "rainy walk"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeRecord(t, resp)
	assert.Equal(t, "rainy walk", updated.Note)
	assert.Equal(t, "2024-05-15", updated.StartDate)

	resp = doJSON(t, s, http.MethodDelete, "/history/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, s, http.MethodDelete, "/history/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateHistoryValidation(t *testing.T) {
	s, _ := newTestServer(t)

	// Missing location.
	resp := doJSON(t, s, http.MethodPost, "/history", createRequest{
		Description: "61",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Oversized note.
	resp = doJSON(t, s, http.MethodPost, "/history", createRequest{
		Location:    "Paris",
		Description: "61",
		Note:        strings.Repeat("x", 61),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// Malformed date.
	resp = doJSON(t, s, http.MethodPost, "/history", createRequest{
		Location:    "Paris",
		Description: "61",
		StartDate:   "15/05/2024",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpdateHistoryNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	resp := doJSON(t, s, http.MethodPut, "/history/missing", map[string]string{"note": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetWeather(t *testing.T) {
	s, provider := newTestServer(t)

	resp := doJSON(t, s, http.MethodGet, "/weather?location=Paris&unit=celsius", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, provider.CurrentCalls)

	var snap records.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "Paris, France", snap.Location)
}

func TestGetWeatherRequiresLocation(t *testing.T) {
	s, provider := newTestServer(t)

	resp := doJSON(t, s, http.MethodGet, "/weather", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, provider.CurrentCalls)
}

func TestGetWeatherUnknownLocation(t *testing.T) {
	s, provider := newTestServer(t)
	provider.Err = records.ErrLocationNotFound

	resp := doJSON(t, s, http.MethodGet, "/weather?location=Nowhereville", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetWeatherByCoordinates(t *testing.T) {
	s, provider := newTestServer(t)

	resp := doJSON(t, s, http.MethodGet, "/weather/coordinates?lat=48.85&lon=2.35", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, provider.CoordinatesCalls)
}
