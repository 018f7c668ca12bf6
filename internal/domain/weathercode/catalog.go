// Package weathercode maps WMO weather interpretation codes to display
// glyphs and text labels.
package weathercode

import "strconv"

// labels is the fixed label table. Codes outside it render as "Unknown".
var labels = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Drizzle: Light",
	53: "Drizzle: Moderate",
	55: "Drizzle: Dense",
	61: "Rain: Slight",
	63: "Rain: Moderate",
	65: "Rain: Heavy",
	71: "Snow: Slight",
	73: "Snow: Moderate",
	75: "Snow: Heavy",
	95: "Thunderstorm",
}

// Parse coerces a stored description string to a weather code. Records store
// the code as text; anything non-numeric falls back to 0.
func Parse(s string) int {
	c, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return c
}

// IconFor returns the display glyph for a code. Threshold bands, ascending,
// first match wins. Total: every input yields a glyph.
func IconFor(code int) string {
	switch {
	case code <= 1:
		return "☀️"
	case code <= 3:
		return "☁️"
	case code <= 48:
		return "🌫️"
	case code <= 67:
		return "🌧️"
	case code <= 77:
		return "❄️"
	default:
		return "⛈️"
	}
}

// LabelFor returns the text label for a code. Total: codes outside the table
// yield "Unknown".
func LabelFor(code int) string {
	if label, ok := labels[code]; ok {
		return label
	}
	return "Unknown"
}

// CodeFor resolves a label back to its code. Exports decode the stored code
// into a label; imports use this to recover it.
func CodeFor(label string) (int, bool) {
	for code, l := range labels {
		if l == label {
			return code, true
		}
	}
	return 0, false
}
