// Package runlog keeps a CSV history of pipeline runs under the data
// directory.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp      time.Time
	RunID          string
	Command        string
	Records        int
	FailedFields   int
	ModifiedFields int
	Duration       time.Duration
}

// Header is the CSV header for run-log.csv.
const Header = "timestamp,run_id,command,records,failed_fields,modified_fields,duration_ms"

const (
	numFields   = 7
	logDir      = "logs"
	logFile     = "logs/run-log.csv"
	colTime     = 0
	colRunID    = 1
	colCommand  = 2
	colRecords  = 3
	colFailed   = 4
	colModified = 5
	colDuration = 6
)

// NewEntry starts a run log entry for a command with a fresh run ID.
func NewEntry(command string) Entry {
	return Entry{
		Timestamp: time.Now().UTC(),
		RunID:     uuid.NewString(),
		Command:   command,
	}
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colCommand] = e.Command
	row[colRecords] = strconv.Itoa(e.Records)
	row[colFailed] = strconv.Itoa(e.FailedFields)
	row[colModified] = strconv.Itoa(e.ModifiedFields)
	row[colDuration] = strconv.FormatInt(e.Duration.Milliseconds(), 10)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}

	ints := make([]int, 4)
	for i, idx := range []int{colRecords, colFailed, colModified, colDuration} {
		v, err := strconv.Atoi(record[idx])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing column %d %q: %w", idx, record[idx], err)
		}
		ints[i] = v
	}

	return Entry{
		Timestamp:      ts,
		RunID:          record[colRunID],
		Command:        record[colCommand],
		Records:        ints[0],
		FailedFields:   ints[1],
		ModifiedFields: ints[2],
		Duration:       time.Duration(ints[3]) * time.Millisecond,
	}, nil
}

// Append writes entries to <dataDir>/logs/run-log.csv, creating the file
// and header if needed.
func Append(dataDir string, entries []Entry) error {
	dir := filepath.Join(dataDir, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(dataDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	return cw.Error()
}

// Read returns all entries from <dataDir>/logs/run-log.csv. Returns an
// empty slice if the file does not exist.
func Read(dataDir string) ([]Entry, error) {
	path := filepath.Join(dataDir, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
