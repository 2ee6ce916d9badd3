package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"evidec/adapters/ingest"
)

// DataReader pulls experiment arm columns out of Excel or CSV files.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader; the file type is inferred from the
// extension.
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadArms reads the named control and treatment columns into observation
// slices. The first row is the header; blank cells inside a column are
// skipped.
func (r *DataReader) ReadArms(controlColumn, treatmentColumn string) (control, treatment []float64, err error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file has no data rows: %s", r.filePath)
	}

	controlCells, err := columnCells(rows, controlColumn)
	if err != nil {
		return nil, nil, err
	}
	treatmentCells, err := columnCells(rows, treatmentColumn)
	if err != nil {
		return nil, nil, err
	}

	control, err = ingest.ParseColumn(controlCells)
	if err != nil {
		return nil, nil, fmt.Errorf("column %q: %w", controlColumn, err)
	}
	treatment, err = ingest.ParseColumn(treatmentCells)
	if err != nil {
		return nil, nil, fmt.Errorf("column %q: %w", treatmentColumn, err)
	}
	return control, treatment, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// Always use the first sheet.
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %s", r.filePath)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

func columnCells(rows [][]string, name string) ([]string, error) {
	header := rows[0]
	idx := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("column %q not found in header %v", name, header)
	}

	cells := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if idx >= len(row) {
			cells = append(cells, "")
			continue
		}
		cells = append(cells, row[idx])
	}
	return cells, nil
}
