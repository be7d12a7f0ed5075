package services

import (
	"context"

	"indicadores/internal/dataset"
)

// SnapshotSource provides the dataset snapshots the pipeline runs on.
// *dataset.Store is the production implementation.
type SnapshotSource interface {
	Current() (*dataset.Snapshot, error)
	Reload(ctx context.Context) (*dataset.Snapshot, error)
	Status() dataset.Status
}

// ClientCounter reports connected live update clients.
type ClientCounter interface {
	ClientCount() int
}
