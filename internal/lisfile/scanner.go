// =============================================================================
// LIS Ticket Tracker - .LIS Log Scanner
// =============================================================================
//
// This module is responsible for locating and scanning .LIS batch log
// files produced by the press controller. It handles:
//   - Deriving the press-group tokens and log filename from a batch id
//   - Scanning every line of the log for records matching the batch
//   - Quote-stripped field extraction at configurable offsets
//
// ERROR MODEL:
//   A missing log file and a log file with no matching records are both
//   ordinary outcomes, surfaced as the ErrFileNotFound and ErrNoMatch
//   sentinels so the caller can report them distinctly; both resolve to
//   an empty result set. Malformed lines (too few fields, bad quoting,
//   unparseable quantity) are skipped without aborting the scan.
//
// =============================================================================

package lisfile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"listrack/internal/config"
	"listrack/internal/types"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrFileNotFound is returned when the derived log file does not exist
	// in the data directory.
	ErrFileNotFound = errors.New("log file not found")

	// ErrNoMatch is returned when the log file exists but contains no
	// record matching the batch's press-group tokens.
	ErrNoMatch = errors.New("no matching record in log file")

	// ErrBatchTooShort is returned when a batch identifier is too short to
	// carry the seven press-group characters.
	ErrBatchTooShort = errors.New("batch identifier must be longer than 7 characters")
)

// =============================================================================
// BATCH DERIVATION
// =============================================================================

// Batch holds the press-group tokens and log filename derived from a
// batch identifier. The last seven characters split into a four-character
// and a three-character press-group token; the remaining prefix names the
// log file.
type Batch struct {
	ID          string
	PressGroupA string
	PressGroupB string
	FileName    string
}

// DeriveBatch splits a batch identifier into its press-group tokens and
// expected log filename. The identifier must be longer than 7 characters.
func DeriveBatch(batchID string) (Batch, error) {
	id := strings.TrimSpace(batchID)
	if len(id) <= 7 {
		return Batch{}, fmt.Errorf("%w: %q", ErrBatchTooShort, id)
	}

	group := id[len(id)-7:]
	return Batch{
		ID:          id,
		PressGroupA: group[:4],
		PressGroupB: group[4:],
		FileName:    id[:len(id)-7] + ".LIS",
	}, nil
}

// =============================================================================
// SCANNER
// =============================================================================

// Scanner scans .LIS files in a data directory for batch records.
type Scanner struct {
	dataDir string
	schema  config.LogSchema
	log     zerolog.Logger
}

// NewScanner creates a Scanner over the given data directory using the
// configured log field schema.
func NewScanner(dataDir string, schema config.LogSchema, log zerolog.Logger) *Scanner {
	return &Scanner{
		dataDir: dataDir,
		schema:  schema,
		log:     log.With().Str("component", "lisfile").Logger(),
	}
}

// Scan locates the batch's log file and returns a ticket for every line
// matching the batch's press-group tokens. A batch may contain several
// door records, so multiple tickets are routinely returned.
//
// The returned error is ErrFileNotFound or ErrNoMatch (wrapped) for the
// two ordinary empty outcomes; callers should treat both as an empty
// result rather than a failure.
func (s *Scanner) Scan(batchID string) ([]types.Ticket, error) {
	batch, err := DeriveBatch(batchID)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(s.dataDir, batch.FileName)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s in %s", ErrFileNotFound, batch.FileName, s.dataDir)
		}
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	defer file.Close()

	s.log.Debug().Str("file", path).Str("batch", batch.ID).Msg("scanning log file")

	var (
		tickets []types.Ticket
		skipped int
	)

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		record, ok := s.parseLine(line, lineNumber)
		if !ok {
			skipped++
			continue
		}

		if !s.matches(batch, record) {
			continue
		}

		ticket, ok := s.extract(batch, record)
		if !ok {
			skipped++
			continue
		}
		tickets = append(tickets, ticket)
	}
	if err := scanner.Err(); err != nil {
		return tickets, fmt.Errorf("failed to read log file %s: %w", path, err)
	}

	if skipped > 0 {
		s.log.Debug().Int("skipped", skipped).Str("file", batch.FileName).Msg("skipped malformed lines")
	}

	if len(tickets) == 0 {
		return nil, fmt.Errorf("%w: batch %s in %s", ErrNoMatch, batch.ID, batch.FileName)
	}
	return tickets, nil
}

// parseLine splits one log line into quote-stripped fields. Lines that do
// not parse, or that carry fewer fields than the schema needs, fail soft.
func (s *Scanner) parseLine(line string, lineNumber int) (types.LogRecord, bool) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	fields, err := reader.Read()
	if err != nil {
		s.log.Debug().Int("line", lineNumber).Err(err).Msg("unparseable line")
		return types.LogRecord{}, false
	}
	if len(fields) < s.schema.MinFields {
		s.log.Debug().Int("line", lineNumber).Int("fields", len(fields)).Msg("line has too few fields")
		return types.LogRecord{}, false
	}

	for i, field := range fields {
		fields[i] = strings.TrimSpace(field)
	}

	return types.LogRecord{Fields: fields, Line: line, LineNumber: lineNumber}, true
}

// matches applies the matching predicate: both press-group tokens must
// appear among the press fields of the record.
func (s *Scanner) matches(batch Batch, record types.LogRecord) bool {
	pressFields := record.Fields[s.schema.PressFirst:s.schema.PressLast]

	foundA, foundB := false, false
	for _, field := range pressFields {
		if field == batch.PressGroupA {
			foundA = true
		}
		if field == batch.PressGroupB {
			foundB = true
		}
	}
	return foundA && foundB
}

// extract builds a ticket from a matched record. The quantity must parse
// as an integer; records that fail this are treated as malformed.
func (s *Scanner) extract(batch Batch, record types.LogRecord) (types.Ticket, bool) {
	quantity, err := strconv.Atoi(record.Fields[s.schema.Quantity])
	if err != nil {
		s.log.Debug().Int("line", record.LineNumber).
			Str("quantity", record.Fields[s.schema.Quantity]).
			Msg("unparseable quantity")
		return types.Ticket{}, false
	}

	return types.Ticket{
		ID:             uuid.New().String(),
		BatchID:        batch.ID,
		FrameCode:      frameCode(record.Fields[s.schema.FrameDescriptor]),
		DoorSize:       record.Fields[s.schema.DoorSize],
		Quantity:       quantity,
		ProductType:    record.Fields[s.schema.ProductType],
		Operator:       record.Fields[s.schema.Operator],
		Material:       record.Fields[s.schema.Material],
		Customer:       record.Fields[s.schema.Customer],
		OrderNumber:    record.Fields[s.schema.OrderNumber],
		ItemNumber:     record.Fields[s.schema.ItemNumber],
		SequenceNumber: record.Fields[s.schema.SequenceNumber],
		ScanTime:       time.Now(),
		OriginalLine:   record.Line,
	}, true
}

// frameCode extracts the frame code: the first whitespace-delimited token
// of the door/frame descriptor field.
func frameCode(descriptor string) string {
	fields := strings.Fields(descriptor)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
