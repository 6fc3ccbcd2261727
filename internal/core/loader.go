package core

// loader.go scans a directory of CSV files and consolidates them.
//
// The flow for each load:
//  1. Verify the directory exists
//  2. List *.csv regular files (non-recursive), sorted by name
//  3. For each file: size check, decode, parse header, validate, project rows
//  4. Concatenate rows of accepted files in file order
//
// File-level failures are recorded on the file's FileOutcome and never
// abort the batch. Only a missing directory fails the whole call.

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/JonMunkholm/inventory/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/text/encoding"
)

// DefaultMaxFileSize is the default per-file size limit (100MB).
const DefaultMaxFileSize = 100 * 1024 * 1024

// LoaderConfig controls how candidate files are read.
type LoaderConfig struct {
	Encoding    string // IANA name, default ISO-8859-1
	Delimiter   rune   // Field delimiter, default ','
	MaxFileSize int64  // Per-file byte limit, default 100MB
}

// DefaultLoaderConfig returns the standard loader settings.
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		Encoding:    DefaultEncoding,
		Delimiter:   ',',
		MaxFileSize: DefaultMaxFileSize,
	}
}

// Loader reads inventory CSV files from a directory.
type Loader struct {
	enc         encoding.Encoding
	delimiter   rune
	maxFileSize int64
}

// NewLoader creates a loader, resolving the configured encoding.
func NewLoader(cfg LoaderConfig) (*Loader, error) {
	enc, err := LookupEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ','
	}
	if cfg.Delimiter == '\r' || cfg.Delimiter == '\n' || cfg.Delimiter == '"' {
		return nil, fmt.Errorf("invalid delimiter %q", cfg.Delimiter)
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	return &Loader{
		enc:         enc,
		delimiter:   cfg.Delimiter,
		maxFileSize: cfg.MaxFileSize,
	}, nil
}

// Load reads every CSV file in dir and returns the consolidated inventory.
//
// A missing directory returns a not_found error and an empty inventory.
// A directory with no valid files returns an empty inventory, a summary
// with Accepted == 0, and a nil error.
func (l *Loader) Load(ctx context.Context, dir string) (Inventory, LoadSummary, error) {
	summary := LoadSummary{
		ID:         uuid.NewString(),
		Directory:  dir,
		Trigger:    TriggerFromContext(ctx),
		RemoteAddr: RemoteAddrFromContext(ctx),
		StartedAt:  time.Now(),
	}
	logger := logging.WithFields(ctx,
		"load_id", summary.ID,
		"directory", dir,
		"trigger", summary.Trigger,
	)

	info, err := os.Stat(dir)
	if err != nil {
		return Inventory{}, summary, notFoundError("load", dir, err)
	}
	if !info.IsDir() {
		return Inventory{}, summary, notFoundError("load", dir, errors.New("not a directory"))
	}

	names, err := listCSVFiles(dir)
	if err != nil {
		return Inventory{}, summary, notFoundError("load", dir, err)
	}

	var inv Inventory
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return Inventory{}, summary, cancelledError("load", err)
		}

		records, outcome := l.loadFile(dir, name)
		summary.Files = append(summary.Files, outcome)

		if outcome.Status == FileRejected {
			summary.Rejected++
			logger.Warn("file rejected",
				"file", name,
				"kind", outcome.Kind,
				"reason", outcome.Reason,
			)
			continue
		}

		summary.Accepted++
		summary.TotalRows += len(records)
		inv = append(inv, records...)
		logger.Info("file accepted",
			"file", name,
			"rows", outcome.Rows,
			"skipped", len(outcome.SkippedRows),
		)
	}

	summary.Duration = time.Since(summary.StartedAt)

	if summary.Accepted == 0 {
		logger.Warn("no valid CSV files found",
			"candidates", len(names),
			"rejected", summary.Rejected,
		)
		return Inventory{}, summary, nil
	}

	logger.Info("load complete",
		"accepted", summary.Accepted,
		"rejected", summary.Rejected,
		"rows", summary.TotalRows,
		"duration_ms", summary.Duration.Milliseconds(),
	)
	return inv, summary, nil
}

// listCSVFiles returns regular files ending in ".csv", sorted by name.
func listCSVFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		if !entry.Type().IsRegular() && entry.Type()&os.ModeSymlink == 0 {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// loadFile parses and validates a single file.
func (l *Loader) loadFile(dir, name string) ([]Record, FileOutcome) {
	path := filepath.Join(dir, name)
	outcome := FileOutcome{Name: name, Status: FileRejected}

	records, err := l.readFile(path, name, &outcome)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			outcome.Kind = e.Kind
		} else {
			outcome.Kind = KindParse
		}
		outcome.Reason = err.Error()
		return nil, outcome
	}

	outcome.Status = FileAccepted
	outcome.Rows = len(records)
	return records, outcome
}

func (l *Loader) readFile(path, name string, outcome *FileOutcome) ([]Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, parseError(name, "unreadable file", err)
	}
	if info.IsDir() {
		return nil, parseError(name, "not a regular file", nil)
	}
	if info.Size() > l.maxFileSize {
		return nil, parseError(name, fmt.Sprintf("file too large: %d bytes exceeds limit of %d", info.Size(), l.maxFileSize), nil)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, parseError(name, "unreadable file", err)
	}
	defer f.Close()

	return l.parse(f, name, outcome)
}

// parse reads CSV content from r. name tags the records and errors.
func (l *Loader) parse(r io.Reader, name string, outcome *FileOutcome) ([]Record, error) {
	cr := csv.NewReader(NewDecodingReader(r, l.enc))
	cr.Comma = l.delimiter

	header, err := cr.Read()
	if err == io.EOF {
		return nil, parseError(name, "empty file", nil)
	}
	if err != nil {
		return nil, parseError(name, "invalid csv", err)
	}

	result := Validate(header)
	if !result.Valid {
		outcome.MissingColumns = result.MissingColumns
		return nil, result.Err(name)
	}

	idx := MakeHeaderIndex(header)
	records := []Record{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(name, "invalid csv", err)
		}

		line, _ := cr.FieldPos(0)
		rec, err := buildRecord(row, idx, name)
		if err != nil {
			outcome.SkippedRows = append(outcome.SkippedRows, SkippedRow{
				Line:   line,
				Reason: err.Error(),
			})
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// buildRecord projects a row onto the required columns.
func buildRecord(row []string, idx HeaderIndex, source string) (Record, error) {
	qtyRaw := idx.cell(row, ColQuantity)
	qty, err := ParseNumber(qtyRaw)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", ColQuantity, err)
	}

	priceRaw := idx.cell(row, ColUnitPrice)
	price, err := ParseNumber(priceRaw)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", ColUnitPrice, err)
	}

	return Record{
		ProductName: idx.cell(row, ColProductName),
		Category:    idx.cell(row, ColCategory),
		Quantity:    qty,
		UnitPrice:   price,
		SourceFile:  source,
	}, nil
}
