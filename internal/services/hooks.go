package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/megamounds/sitetrack-api/internal/cache"
	"github.com/megamounds/sitetrack-api/internal/events"
)

// Hooks carries the side effects of a committed project mutation. A nil
// *Hooks does nothing.
type Hooks struct {
	Cache  cache.SnapshotCache
	Events events.Publisher
	Log    *zap.Logger
}

func (h *Hooks) logger() *zap.Logger {
	if h == nil || h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}

// changed drops cached snapshots of the project and publishes the event.
// Both are best effort: the write has already landed.
func (h *Hooks) changed(ctx context.Context, projectID uuid.UUID, eventType string, payload any) {
	if h == nil {
		return
	}
	log := h.logger()

	if h.Cache != nil && projectID != uuid.Nil {
		if err := h.Cache.Invalidate(ctx, projectID); err != nil {
			log.Warn("snapshot invalidation failed", zap.String("project_id", projectID.String()), zap.Error(err))
		}
	}

	if h.Events == nil || eventType == "" {
		return
	}
	ev, err := events.NewEvent(eventType, projectID, payload)
	if err != nil {
		log.Warn("event encoding failed", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := h.Events.Publish(ctx, ev); err != nil {
		log.Warn("event publish failed", zap.String("type", eventType), zap.Error(err))
	}
}
