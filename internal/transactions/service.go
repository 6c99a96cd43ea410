package transactions

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/procwatch-dev/procwatch/internal/invoiceid"
	"github.com/procwatch-dev/procwatch/internal/model"
)

const (
	incomingDir  = "incoming"
	processedDir = "incoming/processed"
	masterFile   = "cleaned.csv"
	scoredFile   = "risk_scored.csv"
)

// FileInfo describes a batch CSV waiting in the incoming directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Service manages the transaction files under a data directory.
type Service struct {
	dataDir string
}

// NewService creates a Service rooted at dataDir.
func NewService(dataDir string) *Service {
	return &Service{dataDir: dataDir}
}

// ScanIncoming returns CSV batches in <dataDir>/incoming/, sorted by name.
func (s *Service) ScanIncoming() ([]FileInfo, error) {
	dir := filepath.Join(s.dataDir, incomingDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading incoming dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a batch from incoming/ to incoming/processed/.
func (s *Service) MarkProcessed(fileName string) error {
	src := filepath.Join(s.dataDir, incomingDir, fileName)
	dstDir := filepath.Join(s.dataDir, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}
	if err := os.Rename(src, filepath.Join(dstDir, fileName)); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// ReadBatch reads one raw batch file.
func (s *Service) ReadBatch(fileName string) ([]model.RawTransaction, error) {
	path := filepath.Join(s.dataDir, incomingDir, fileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening batch %s: %w", path, err)
	}
	defer f.Close()

	raws, err := ReadRaw(f)
	if err != nil {
		return nil, fmt.Errorf("reading batch %s: %w", path, err)
	}
	return raws, nil
}

// WriteBatch writes a raw batch into incoming/.
func (s *Service) WriteBatch(fileName string, raws []model.RawTransaction) error {
	dir := filepath.Join(s.dataDir, incomingDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating incoming dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, fileName))
	if err != nil {
		return fmt.Errorf("creating batch: %w", err)
	}
	defer f.Close()

	if err := WriteRaw(f, raws); err != nil {
		return fmt.Errorf("writing batch: %w", err)
	}
	return nil
}

// AppendMaster appends cleaned records to the rolling master, creating the
// file with a header on first use.
func (s *Service) AppendMaster(recs []model.TransactionRecord) error {
	path := filepath.Join(s.dataDir, masterFile)

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening master: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if isNew {
		if err := cw.Write(strings.Split(CleanHeader, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, rec := range recs {
		if err := cw.Write(MarshalCleaned(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// ReadMaster reads all cleaned records from the rolling master. A missing
// master is a fatal input error for scoring.
func (s *Service) ReadMaster() ([]model.TransactionRecord, error) {
	path := filepath.Join(s.dataDir, masterFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening master: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = cleanNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading master: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var recs []model.TransactionRecord
	for i, row := range records[1:] {
		rec, err := UnmarshalCleaned(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// WriteScored writes risk-scored records, replacing any previous output.
func (s *Service) WriteScored(recs []model.TransactionRecord) error {
	f, err := os.Create(filepath.Join(s.dataDir, scoredFile))
	if err != nil {
		return fmt.Errorf("creating scored output: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write(strings.Split(ScoredHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, rec := range recs {
		if err := cw.Write(MarshalScored(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// ReadScored reads all risk-scored records.
func (s *Service) ReadScored() ([]model.TransactionRecord, error) {
	path := filepath.Join(s.dataDir, scoredFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scored output: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = scoredNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading scored output: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var recs []model.TransactionRecord
	for i, row := range records[1:] {
		rec, err := UnmarshalScored(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// MasterPath returns the rolling master path.
func (s *Service) MasterPath() string {
	return filepath.Join(s.dataDir, masterFile)
}

// ScoredPath returns the risk-scored output path.
func (s *Service) ScoredPath() string {
	return filepath.Join(s.dataDir, scoredFile)
}

// LastInvoiceSeq returns the highest invoice sequence seen across the
// master and any incoming batches, so generated IDs keep incrementing
// across runs. Returns 0 when nothing has been generated yet.
func (s *Service) LastInvoiceSeq() (int, error) {
	maxSeq := 0

	if recs, err := s.ReadMaster(); err == nil {
		for _, rec := range recs {
			if seq, err := invoiceid.Parse(rec.Raw.InvoiceID); err == nil && seq > maxSeq {
				maxSeq = seq
			}
		}
	}

	files, err := s.ScanIncoming()
	if err != nil {
		return 0, err
	}
	for _, fi := range files {
		raws, err := s.ReadBatch(fi.Name)
		if err != nil {
			return 0, err
		}
		for _, raw := range raws {
			if seq, err := invoiceid.Parse(raw.InvoiceID); err == nil && seq > maxSeq {
				maxSeq = seq
			}
		}
	}
	return maxSeq, nil
}
