package main

import (
	"context"
	"time"

	"github.com/windeesel365/slab-tax/history"
	"github.com/windeesel365/slab-tax/taxcal"
)

// Handler serves the comparison endpoints. Each request computes its own
// comparison; the history store only receives a copy afterwards.
type Handler struct {
	cfg   Config
	store history.Store
	now   func() time.Time
}

func NewHandler(cfg Config, store history.Store) *Handler {
	return &Handler{cfg: cfg, store: store, now: time.Now}
}

// record เก็บผลลัพธ์ลง history (ไม่ critical ถ้า save ไม่สำเร็จ)
func (h *Handler) record(ctx context.Context, source string, c taxcal.Comparison) {
	if h.store == nil {
		return
	}
	if err := h.store.Save(ctx, history.NewRecord(source, c, h.now())); err != nil {
		log.WithError(err).WithField("source", source).Warn("failed to save comparison")
	}
}
