package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aldermoor/weatherlog/internal/domain/records"
	"github.com/aldermoor/weatherlog/internal/domain/weathercode"
)

// Format selects an export rendering.
type Format string

// Supported export formats.
const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatXML      Format = "xml"
)

// ExportFormats lists the valid formats for flag help and validation.
var ExportFormats = []Format{FormatJSON, FormatCSV, FormatMarkdown, FormatXML}

// exportBasename is the artifact file name without extension.
const exportBasename = "weather_history"

// ParseFormat resolves a format name. The empty string defaults to JSON.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatJSON, nil
	}
	f := Format(strings.ToLower(s))
	for _, valid := range ExportFormats {
		if f == valid {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format %q, valid formats: %v", s, ExportFormats)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatMarkdown:
		return "text/markdown"
	case FormatXML:
		return "application/xml"
	default:
		return "application/json"
	}
}

// Artifact is a rendered export: a named, typed payload. Rendering performs
// no I/O; the caller decides where the bytes go.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Render serializes the record collection into the requested format. It reads
// the records as a snapshot and never mutates them.
func Render(recs []records.Record, format Format) (*Artifact, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case FormatJSON:
		err = renderJSON(&buf, recs)
	case FormatCSV:
		err = renderCSV(&buf, recs)
	case FormatMarkdown:
		err = renderMarkdown(&buf, recs)
	case FormatXML:
		err = renderXML(&buf, recs)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("rendering %s export: %w", format, err)
	}

	return &Artifact{
		Filename:    exportBasename + "." + string(format),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// renderJSON writes a pretty-printed structural serialization with verbatim
// fields, so a parse of the output round-trips to the input collection.
func renderJSON(buf *bytes.Buffer, recs []records.Record) error {
	encoder := json.NewEncoder(buf)
	encoder.SetIndent("", "  ")
	if recs == nil {
		recs = []records.Record{}
	}
	return encoder.Encode(recs)
}

func renderCSV(buf *bytes.Buffer, recs []records.Record) error {
	writer := csv.NewWriter(buf)

	header := []string{"ID", "Location", "Temperature", "Description", "Start Date", "End Date", "Note", "Timestamp"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range recs {
		row := []string{
			r.ID,
			r.Location,
			strconv.FormatFloat(r.Temperature, 'f', -1, 64),
			weathercode.LabelFor(weathercode.Parse(r.Description)),
			r.StartDate,
			r.EndDate,
			r.Note,
			r.Timestamp.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func renderMarkdown(buf *bytes.Buffer, recs []records.Record) error {
	buf.WriteString("| Location | Temp | Condition | Date Range | Note |\n")
	buf.WriteString("|----------|------|-----------|------------|------|\n")

	for _, r := range recs {
		dateRange := "-"
		if r.StartDate != "" && r.EndDate != "" {
			dateRange = r.StartDate + " to " + r.EndDate
		}
		note := r.Note
		if note == "" {
			note = "-"
		}
		fmt.Fprintf(buf, "| %s | %d° | %s | %s | %s |\n",
			escapeMarkdown(r.Location),
			int(math.Round(r.Temperature)),
			weathercode.LabelFor(weathercode.Parse(r.Description)),
			dateRange,
			escapeMarkdown(note),
		)
	}

	return nil
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

// xmlRecord is the fixed per-record element shape. encoding/xml entity-escapes
// free-text fields, so locations and notes containing '<' or '&' stay well
// formed.
type xmlRecord struct {
	XMLName     xml.Name `xml:"record"`
	ID          string   `xml:"id"`
	Location    string   `xml:"location"`
	Temperature float64  `xml:"temperature"`
	Condition   string   `xml:"condition"`
	StartDate   string   `xml:"startDate"`
	EndDate     string   `xml:"endDate"`
	Note        string   `xml:"note"`
	Timestamp   string   `xml:"timestamp"`
}

type xmlHistory struct {
	XMLName xml.Name    `xml:"weatherHistory"`
	Records []xmlRecord `xml:"record"`
}

func renderXML(buf *bytes.Buffer, recs []records.Record) error {
	doc := xmlHistory{Records: make([]xmlRecord, 0, len(recs))}
	for _, r := range recs {
		doc.Records = append(doc.Records, xmlRecord{
			ID:          r.ID,
			Location:    r.Location,
			Temperature: r.Temperature,
			Condition:   weathercode.LabelFor(weathercode.Parse(r.Description)),
			StartDate:   r.StartDate,
			EndDate:     r.EndDate,
			Note:        r.Note,
			Timestamp:   r.Timestamp.UTC().Format(time.RFC3339),
		})
	}

	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(buf)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	buf.WriteByte('\n')
	return nil
}
