package records

// Snapshot is the result of a weather query. It carries point-in-time
// conditions when available and per-day series for ranged queries. Historical
// date ranges have no current reading, only the daily series.
type Snapshot struct {
	Location  string   `json:"location"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Current   *Current `json:"current,omitempty"`
	Daily     Daily    `json:"daily"`
	Units     Units    `json:"current_units"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
}

// Current holds point-in-time readings.
type Current struct {
	Time        string  `json:"time"`
	Temperature float64 `json:"temperature_2m"`
	Humidity    int     `json:"relative_humidity_2m"`
	WindSpeed   float64 `json:"wind_speed_10m"`
	WeatherCode int     `json:"weather_code"`
}

// Daily holds parallel per-day arrays, indexed together.
type Daily struct {
	Time           []string  `json:"time"`
	TemperatureMax []float64 `json:"temperature_2m_max"`
	TemperatureMin []float64 `json:"temperature_2m_min"`
	WeatherCode    []int     `json:"weather_code"`
	PrecipProbMax  []int     `json:"precipitation_probability_max"`
}

// Units describes the units the provider reported for the current readings.
type Units struct {
	Temperature string `json:"temperature_2m"`
	WindSpeed   string `json:"wind_speed_10m"`
}

// LeadTemperature returns the temperature to persist for this snapshot: the
// current reading when present, otherwise the first day's maximum.
func (s *Snapshot) LeadTemperature() float64 {
	if s.Current != nil {
		return s.Current.Temperature
	}
	if len(s.Daily.TemperatureMax) > 0 {
		return s.Daily.TemperatureMax[0]
	}
	return 0
}

// LeadWeatherCode returns the weather code to persist: the current reading
// when present, otherwise the first day's code.
func (s *Snapshot) LeadWeatherCode() int {
	if s.Current != nil {
		return s.Current.WeatherCode
	}
	if len(s.Daily.WeatherCode) > 0 {
		return s.Daily.WeatherCode[0]
	}
	return 0
}
