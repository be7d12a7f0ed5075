package websocket

import (
	"context"
	"log/slog"

	"indicadores/internal/dataset"
	"indicadores/internal/infrastructure"
	"indicadores/pkg/contracts/events"
)

// DatasetListener returns a reload subscriber that tells connected clients
// a new snapshot is available, or that the last reload failed.
func (h *Hub) DatasetListener() dataset.ReloadFunc {
	return func(snap *dataset.Snapshot, err error) {
		traceID := infrastructure.GenerateTraceID()
		ctx := infrastructure.WithTraceID(context.Background(), traceID)

		var broadcastErr error
		if err != nil {
			broadcastErr = h.Broadcast(events.MessageTypeDatasetError, events.DatasetError{
				Source:  sourceOf(snap),
				Error:   err.Error(),
				Serving: snap != nil,
			}, traceID)
		} else {
			broadcastErr = h.Broadcast(events.MessageTypeDatasetReloaded, events.DatasetReloaded{
				Dataset:    snap.Info(),
				Developers: snap.Dataset.Developers(),
			}, traceID)
		}

		if broadcastErr != nil {
			h.logger.WarnContext(ctx, "reload notification not sent",
				slog.String("error", broadcastErr.Error()))
		}
	}
}

func sourceOf(snap *dataset.Snapshot) string {
	if snap == nil {
		return ""
	}
	return snap.Source
}
