package main

import (
	"fmt"
	"strings"

	"github.com/aldermoor/weatherlog/internal/domain/records"
	"github.com/aldermoor/weatherlog/internal/domain/weathercode"
)

// printSnapshot renders a weather snapshot for the terminal.
func printSnapshot(snap *records.Snapshot) {
	fmt.Printf("%s\n", snap.Location)

	if snap.Current != nil {
		code := snap.Current.WeatherCode
		fmt.Printf("%s  %.1f%s  %s\n",
			weathercode.IconFor(code),
			snap.Current.Temperature,
			snap.Units.Temperature,
			weathercode.LabelFor(code))
		fmt.Printf("Humidity %d%%  Wind %.1f %s\n",
			snap.Current.Humidity,
			snap.Current.WindSpeed,
			snap.Units.WindSpeed)
	}

	if len(snap.Daily.Time) > 0 {
		fmt.Println()
		for i, day := range snap.Daily.Time {
			if i >= len(snap.Daily.TemperatureMax) || i >= len(snap.Daily.TemperatureMin) || i >= len(snap.Daily.WeatherCode) {
				break
			}
			fmt.Printf("%s  %s  %.0f° / %.0f°  %s\n",
				day,
				weathercode.IconFor(snap.Daily.WeatherCode[i]),
				snap.Daily.TemperatureMin[i],
				snap.Daily.TemperatureMax[i],
				weathercode.LabelFor(snap.Daily.WeatherCode[i]))
		}
	}
}

// printRecord renders one history record line.
func printRecord(rec records.Record) {
	code := weathercode.Parse(rec.Description)
	dates := "-"
	if rec.StartDate != "" && rec.EndDate != "" {
		dates = rec.StartDate + " to " + rec.EndDate
	}

	fmt.Printf("%s  %s %.1f°  %s  %s\n", rec.ID, weathercode.IconFor(code), rec.Temperature, weathercode.LabelFor(code), rec.Location)
	fmt.Printf("    dates: %s  saved: %s\n", dates, rec.Timestamp.Format("2006-01-02 15:04"))
	if rec.Note != "" {
		fmt.Printf("    note: %s\n", rec.Note)
	}
}

// normalizeUnit lowercases and validates a unit flag value.
func normalizeUnit(unit string) (string, error) {
	unit = strings.ToLower(strings.TrimSpace(unit))
	if !isValidUnit(unit) {
		return "", fmt.Errorf("invalid unit %q, valid units: %v", unit, validUnits)
	}
	return unit, nil
}
