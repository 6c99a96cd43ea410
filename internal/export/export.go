// Package export publishes pipeline outputs into the BI directory as CSV
// copies plus a single Excel workbook for dashboard tooling.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Dataset names one pipeline output file to publish.
type Dataset struct {
	Name string // sheet name and target CSV base name
	Path string // source CSV path
}

// workbookFile is the Excel workbook written alongside the CSV copies.
const workbookFile = "procwatch.xlsx"

// Exporter publishes datasets into a BI directory.
type Exporter struct {
	biDir string
}

// NewExporter creates an Exporter targeting biDir.
func NewExporter(biDir string) *Exporter {
	return &Exporter{biDir: biDir}
}

// ExportAll copies each dataset CSV into the BI directory and writes one
// workbook with a sheet per dataset. Datasets whose source file is missing
// are skipped; publishing what exists beats failing the whole export.
func (e *Exporter) ExportAll(datasets []Dataset) ([]string, error) {
	if err := os.MkdirAll(e.biDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating BI dir: %w", err)
	}

	wb := excelize.NewFile()
	defer wb.Close()

	var published []string
	firstSheet := true
	for _, ds := range datasets {
		rows, err := readCSV(ds.Path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}

		dst := filepath.Join(e.biDir, ds.Name+".csv")
		if err := copyFile(ds.Path, dst); err != nil {
			return nil, err
		}
		published = append(published, dst)

		if firstSheet {
			if err := wb.SetSheetName("Sheet1", ds.Name); err != nil {
				return nil, fmt.Errorf("naming sheet %s: %w", ds.Name, err)
			}
			firstSheet = false
		} else if _, err := wb.NewSheet(ds.Name); err != nil {
			return nil, fmt.Errorf("adding sheet %s: %w", ds.Name, err)
		}

		for r, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, fmt.Errorf("sheet %s row %d: %w", ds.Name, r+1, err)
			}
			if err := wb.SetSheetRow(ds.Name, cell, &row); err != nil {
				return nil, fmt.Errorf("sheet %s row %d: %w", ds.Name, r+1, err)
			}
		}
	}

	if firstSheet {
		// Nothing to publish; skip the workbook too.
		return published, nil
	}

	wbPath := filepath.Join(e.biDir, workbookFile)
	if err := wb.SaveAs(wbPath); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return append(published, wbPath), nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}
