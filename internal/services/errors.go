package services

import "errors"

// ErrDataUnavailable marks requests made before any snapshot was loaded.
var ErrDataUnavailable = errors.New("dashboard data unavailable")
