// Package api contains the request and response contracts of the v1 JSON API.
package api

import (
	"time"

	"indicadores/pkg/contracts/domain"
)

// MaxSelection bounds how many developers one request may select.
const MaxSelection = 200

// SelectionRequest is the developer filter shared by the dashboard, records
// and export endpoints. An empty list selects every developer.
type SelectionRequest struct {
	Developers []string `json:"developers" query:"developer" validate:"max=200,dive,max=200"`
}

// ExportRequest selects the detail table export format.
type ExportRequest struct {
	SelectionRequest
	Format string `json:"format" param:"format" validate:"required,oneof=csv xlsx"`
}

// DevelopersResponse lists the selectable developers.
type DevelopersResponse struct {
	Developers []string `json:"developers"`
	Count      int      `json:"count"`
}

// RecordsResponse carries the detail table for a selection.
type RecordsResponse struct {
	Selection []string           `json:"selection"`
	Rows      []domain.DetailRow `json:"rows"`
	Count     int                `json:"count"`
}

// ReloadResponse reports the outcome of a manual reload.
type ReloadResponse struct {
	Reloaded  bool      `json:"reloaded"`
	Timestamp time.Time `json:"timestamp"`
	Status    any       `json:"status"`
}
