package exporter

import "errors"

// ErrUnknownFormat is returned for export formats other than csv and xlsx
var ErrUnknownFormat = errors.New("unknown export format")
