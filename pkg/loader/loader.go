// Package loader reads organization directory records from JSON, JSONL,
// CSV, XLSX and SQLite sources.
package loader

import (
	"bufio"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

// Table is the SQLite table directory rows are read from.
const Table = "directory"

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported directory format")

// Warning describes a recoverable problem found while loading.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return w.Message
}

type options struct {
	warn func(Warning)
}

// Option configures a load.
type Option func(*options)

// WithWarningHandler receives malformed lines and unknown columns that were
// skipped instead of failing the load.
func WithWarningHandler(fn func(Warning)) Option {
	return func(o *options) { o.warn = fn }
}

func newOptions(opts []Option) options {
	o := options{warn: func(Warning) {}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Formats lists the extensions LoadRecords understands.
var Formats = []string{".json", ".jsonl", ".csv", ".xlsx", ".db", ".sqlite", ".sqlite3"}

// LoadRecords reads the directory at path, choosing the decoder from the
// file extension. Every string field is trimmed.
func LoadRecords(path string, opts ...Option) ([]model.DirectoryRecord, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no directory data at %s: %w", path, err)
	}
	o := newOptions(opts)

	var (
		records []model.DirectoryRecord
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		records, err = loadFile(path, func(r io.Reader) ([]model.DirectoryRecord, error) { return DecodeJSON(r) })
	case ".jsonl":
		records, err = loadFile(path, func(r io.Reader) ([]model.DirectoryRecord, error) { return DecodeJSONL(r, opts...) })
	case ".csv":
		records, err = loadFile(path, func(r io.Reader) ([]model.DirectoryRecord, error) { return DecodeCSV(r, opts...) })
	case ".xlsx":
		records, err = loadXLSX(path, o)
	case ".db", ".sqlite", ".sqlite3":
		records, err = loadSQLite(path, o)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].TrimAll()
	}
	return records, nil
}

func loadFile(path string, decode func(io.Reader) ([]model.DirectoryRecord, error)) ([]model.DirectoryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory file: %w", err)
	}
	defer f.Close()
	return decode(f)
}

// DecodeJSON reads a JSON array of records.
func DecodeJSON(r io.Reader) ([]model.DirectoryRecord, error) {
	var records []model.DirectoryRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode directory JSON: %w", err)
	}
	return records, nil
}

// DecodeJSONL reads one record per line. Malformed lines are skipped and
// reported as warnings.
func DecodeJSONL(r io.Reader, opts ...Option) ([]model.DirectoryRecord, error) {
	o := newOptions(opts)
	var records []model.DirectoryRecord
	scanner := bufio.NewScanner(r)
	const maxCapacity = 1024 * 1024 // 1MB
	scanner.Buffer(make([]byte, 64*1024), maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec model.DirectoryRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			o.warn(Warning{Line: lineNum, Message: err.Error()})
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading directory file: %w", err)
	}
	return records, nil
}

// DecodeCSV reads a header row followed by one record per row.
func DecodeCSV(r io.Reader, opts ...Option) ([]model.DirectoryRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return fromRows(rows, newOptions(opts)), nil
}

// fromRows maps a header row plus data rows onto records. Blank rows are
// skipped; unknown headers are reported once.
func fromRows(rows [][]string, o options) []model.DirectoryRecord {
	if len(rows) == 0 {
		return nil
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var probe model.DirectoryRecord
	for _, h := range header {
		if h != "" && !probe.Set(h, "") {
			o.warn(Warning{Message: fmt.Sprintf("ignoring unknown column %q", h)})
		}
	}

	records := make([]model.DirectoryRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		var rec model.DirectoryRecord
		for i, cell := range row {
			if i < len(header) {
				rec.Set(header[i], cell)
			}
		}
		records = append(records, rec)
	}
	return records
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func loadXLSX(path string, o options) ([]model.DirectoryRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return fromRows(rows, o), nil
}

func loadSQLite(path string, o options) ([]model.DirectoryRecord, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %q", Table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", Table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	table := [][]string{cols}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = cellString(v)
		}
		table = append(table, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return fromRows(table, o), nil
}

func cellString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
