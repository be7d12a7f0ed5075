package dataset

import "errors"

// Sentinel errors for dataset operations
var (
	ErrDataNotFound      = errors.New("data file not found")
	ErrUnsupportedFormat = errors.New("unsupported data file format")
	ErrMissingColumn     = errors.New("required column missing")
	ErrNoSheets          = errors.New("workbook has no sheets")
	ErrSheetNotFound     = errors.New("sheet not found")
	ErrNotLoaded         = errors.New("dataset not loaded")
)
