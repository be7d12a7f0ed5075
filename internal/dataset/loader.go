package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "indicadores/internal/errors"
)

// RawTable is the untyped content of one sheet: a header row and the data
// rows below it. Every row has exactly len(Header) cells.
type RawTable struct {
	Source string
	Sheet  string
	Header []string
	Rows   [][]string
}

// LoadOption customizes Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	sheet string
}

// WithSheet reads the named sheet instead of the first one.
func WithSheet(name string) LoadOption {
	return func(o *loadOptions) {
		o.sheet = name
	}
}

// Load reads the spreadsheet at path into a RawTable. A missing file yields
// an error matching ErrDataNotFound; no schema checks happen here.
func Load(path string, opts ...LoadOption) (*RawTable, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError(
				fmt.Sprintf("Arquivo de dados não encontrado: %s. Coloque-o na mesma pasta do app.", filepath.Base(path)),
				fmt.Errorf("%w: %w", ErrDataNotFound, err),
			).WithContext("source", path)
		}
		return nil, apperrors.NewStorageError("cannot access data file", err).WithContext("source", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return loadWorkbook(path, o.sheet)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("unsupported file extension %q", filepath.Ext(path)),
			ErrUnsupportedFormat,
		).WithContext("source", path)
	}
}

func loadWorkbook(path, sheet string) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err).WithContext("source", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError("workbook has no sheets", ErrNoSheets).WithContext("source", path)
	}

	if sheet == "" {
		sheet = sheets[0]
	} else if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, apperrors.NewSchemaError(fmt.Sprintf("sheet %q not found", sheet), ErrSheetNotFound).
			WithContext("source", path).
			WithContext("sheets", sheets)
	}

	// Raw values keep numbers as stored instead of as displayed.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheet), err).WithContext("source", path)
	}

	return newRawTable(path, sheet, rows), nil
}

func loadCSV(path string) (*RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("cannot open data file", err).WithContext("source", path)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError("failed to parse CSV", err).WithContext("source", path)
		}
		rows = append(rows, record)
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}

	return newRawTable(path, "", rows), nil
}

// newRawTable splits off the header and pads ragged rows to header width.
// Fully blank rows are skipped.
func newRawTable(source, sheet string, rows [][]string) *RawTable {
	t := &RawTable{Source: source, Sheet: sheet}
	if len(rows) == 0 {
		return t
	}

	t.Header = make([]string, len(rows[0]))
	for i, h := range rows[0] {
		t.Header[i] = strings.TrimSpace(h)
	}

	width := len(t.Header)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		cells := make([]string, width)
		copy(cells, row)
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
