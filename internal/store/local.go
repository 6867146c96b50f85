package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"chartscout/internal/errors"
)

// ExampleFile describes one bundled example dataset.
type ExampleFile struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// LocalStore serves example datasets from a directory. JSON documents are
// decoded as-is; CSV and XLSX sheets are reshaped into header-keyed
// records the normalizer understands.
type LocalStore struct {
	dir    string
	logger *slog.Logger
}

// NewLocalStore creates a local example store rooted at dir.
func NewLocalStore(dir string, logger *slog.Logger) *LocalStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalStore{
		dir:    dir,
		logger: logger.With(slog.String("component", "store.local")),
	}
}

// List enumerates the available example files, sorted by name.
func (s *LocalStore) List() ([]ExampleFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading example directory: %w", err)
	}

	var out []ExampleFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".csv" && ext != ".xlsx" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, ExampleFile{
			Name:   entry.Name(),
			Format: strings.TrimPrefix(ext, "."),
			Size:   info.Size(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Load reads one example file into a chartable payload.
func (s *LocalStore) Load(name string) (any, error) {
	// Filenames come from HTTP callers; keep them inside the store root.
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, errors.NewDataFormatError(name, "invalid example filename", nil)
	}
	path := filepath.Join(s.dir, name)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return s.loadJSON(path, name)
	case ".csv":
		return s.loadCSV(path, name)
	case ".xlsx":
		return s.loadXLSX(path, name)
	default:
		return nil, errors.NewDataFormatError(name, "unsupported example format", nil)
	}
}

func (s *LocalStore) loadJSON(path, name string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDataFormatError(name, "example not found", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, errors.NewDataFormatError(name, "undecodable JSON example", err)
	}
	return payload, nil
}

func (s *LocalStore) loadCSV(path, name string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDataFormatError(name, "example not found", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewDataFormatError(name, "undecodable CSV example", err)
	}
	return rowsToRecords(rows, name)
}

func (s *LocalStore) loadXLSX(path, name string) (any, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewDataFormatError(name, "example not found", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewDataFormatError(name, "workbook has no sheets", nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewDataFormatError(name, "reading worksheet", err)
	}
	return rowsToRecords(rows, name)
}

// rowsToRecords turns a header row plus data rows into the record shape
// the normalizer consumes. Numeric-looking cells become numbers.
func rowsToRecords(rows [][]string, name string) (any, error) {
	if len(rows) < 2 {
		return nil, errors.NewDataFormatError(name, "sheet needs a header row and at least one data row", nil)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	records := make([]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]any, len(headers))
		empty := true
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			empty = false
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				record[headers[i]] = v
			} else {
				record[headers[i]] = cell
			}
		}
		if !empty {
			records = append(records, record)
		}
	}
	if len(records) == 0 {
		return nil, errors.NewDataFormatError(name, "sheet has no data rows", nil)
	}
	return records, nil
}
