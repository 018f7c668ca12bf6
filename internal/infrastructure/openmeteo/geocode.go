package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/aldermoor/weatherlog/internal/domain/records"
)

// geocoder resolves free-text place queries to coordinates through the
// Photon API, which handles landmarks, postal codes and cities.
type geocoder struct {
	base    *baseClient
	baseURL string
}

// place is a resolved location.
type place struct {
	DisplayName string
	Latitude    float64
	Longitude   float64
}

type photonResponse struct {
	Features []struct {
		Geometry struct {
			// GeoJSON order: longitude first.
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Name    string `json:"name"`
			City    string `json:"city"`
			State   string `json:"state"`
			Country string `json:"country"`
		} `json:"properties"`
	} `json:"features"`
}

// resolve looks up query and returns the best match.
// Returns records.ErrLocationNotFound when nothing matches.
func (g *geocoder) resolve(ctx context.Context, query string) (*place, error) {
	u := fmt.Sprintf("%s?q=%s&limit=1", g.baseURL, url.QueryEscape(query))

	body, err := g.base.getWithRetry(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("calling geocoder: %w", err)
	}

	var resp photonResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding geocoder response: %w", err)
	}
	if len(resp.Features) == 0 {
		return nil, fmt.Errorf("%w: %q", records.ErrLocationNotFound, query)
	}

	feature := resp.Features[0]
	if len(feature.Geometry.Coordinates) < 2 {
		return nil, fmt.Errorf("geocoder returned no coordinates for %q", query)
	}

	props := feature.Properties
	var parts []string
	for _, p := range []string{props.Name, props.City, props.State, props.Country} {
		if p != "" && !contains(parts, p) {
			parts = append(parts, p)
		}
	}

	return &place{
		DisplayName: strings.Join(parts, ", "),
		Latitude:    feature.Geometry.Coordinates[1],
		Longitude:   feature.Geometry.Coordinates[0],
	}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
