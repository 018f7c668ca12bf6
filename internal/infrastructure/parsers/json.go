package parsers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aldermoor/weatherlog/internal/domain/records"
)

// JSONParser parses records from a JSON export.
type JSONParser struct{}

// Parse reads a JSON record array. Ids and timestamps from the export are
// dropped; the persistence service reassigns them on restore.
func (p *JSONParser) Parse(r io.Reader) ([]records.NewRecord, error) {
	var exported []records.Record

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&exported); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	recs := make([]records.NewRecord, 0, len(exported))
	for _, e := range exported {
		recs = append(recs, records.NewRecord{
			Location:    e.Location,
			Temperature: e.Temperature,
			Description: e.Description,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Note:        e.Note,
		})
	}

	return recs, nil
}
