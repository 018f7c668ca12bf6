package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/aldermoor/weatherlog/internal/domain/services"
	"github.com/aldermoor/weatherlog/internal/infrastructure/parsers"
)

// ImportHandler restores records from a previously exported file.
type ImportHandler struct {
	store *services.HistoryStore
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(store *services.HistoryStore) *ImportHandler {
	return &ImportHandler{store: store}
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
}

// Handle imports records from a file. The format is inferred from the file
// extension unless given explicitly.
func (h *ImportHandler) Handle(ctx context.Context, filePath, format string) (*ImportResult, error) {
	var parser parsers.Parser
	if format == "" || format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(format)
	}
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	recs, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}
	if len(recs) == 0 {
		return &ImportResult{}, nil
	}

	saved, skipped, err := h.store.Restore(ctx, recs)
	if err != nil {
		return nil, err
	}

	return &ImportResult{Imported: saved, Skipped: skipped}, nil
}
