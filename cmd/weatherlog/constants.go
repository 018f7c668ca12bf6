package main

// Valid temperature units for weather queries.
var validUnits = []string{"celsius", "fahrenheit"}

func isValidUnit(unit string) bool {
	for _, valid := range validUnits {
		if unit == valid {
			return true
		}
	}
	return false
}
