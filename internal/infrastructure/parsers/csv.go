package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/aldermoor/weatherlog/internal/domain/records"
	"github.com/aldermoor/weatherlog/internal/domain/weathercode"
)

// CSVParser parses records from a CSV export.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed records.
// Expected columns match the export header: ID, Location, Temperature,
// Description, Start Date, End Date, Note, Timestamp.
func (p *CSVParser) Parse(r io.Reader) ([]records.NewRecord, error) {
	reader := csv.NewReader(r)

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRows(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[col] = i
	}

	requiredCols := []string{"Location", "Temperature", "Description"}
	for _, col := range requiredCols {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// readRows reads all data rows and converts them to records.
func (p *CSVParser) readRows(reader *csv.Reader, colIndex map[string]int) ([]records.NewRecord, error) {
	var recs []records.NewRecord
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		rec, err := p.parseRow(row, colIndex, lineNum)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, nil
}

// parseRow converts a CSV row to a record.
func (p *CSVParser) parseRow(row []string, colIndex map[string]int, lineNum int) (records.NewRecord, error) {
	rec := records.NewRecord{
		Location:  getColumn(row, colIndex, "Location"),
		StartDate: getColumn(row, colIndex, "Start Date"),
		EndDate:   getColumn(row, colIndex, "End Date"),
		Note:      getColumn(row, colIndex, "Note"),
	}

	tempStr := getColumn(row, colIndex, "Temperature")
	if tempStr != "" {
		temp, err := strconv.ParseFloat(tempStr, 64)
		if err != nil {
			return records.NewRecord{}, fmt.Errorf("line %d: invalid temperature %q: %w", lineNum, tempStr, err)
		}
		rec.Temperature = temp
	}

	// The export writes the decoded condition label; recover the code from
	// the catalog. Unmapped labels coerce to code 0.
	code, _ := weathercode.CodeFor(getColumn(row, colIndex, "Description"))
	rec.Description = strconv.Itoa(code)

	return rec, nil
}

// getColumn safely retrieves a column value from a row.
func getColumn(row []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(row) {
		return row[idx]
	}
	return ""
}
