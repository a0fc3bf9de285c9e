// Package jobs hosts the background schedules of the engine.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron"

	"promo-engine/internal/pkg/config"
	"promo-engine/internal/usecase/commands"
)

// Sweeper periodically expires lapsed reservation holds so their budget
// returns to the campaign without waiting for an explicit release.
type Sweeper struct {
	cron    *cron.Cron
	sweep   commands.SweepCommands
	timeout time.Duration
}

func NewSweeper(sweep commands.SweepCommands, cfg config.ReservationConfig) (*Sweeper, error) {
	s := &Sweeper{
		cron:    cron.New(),
		sweep:   sweep,
		timeout: cfg.SweepInterval,
	}
	if err := s.cron.AddFunc(fmt.Sprintf("@every %s", cfg.SweepInterval), s.run); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sweeper) Start() {
	s.cron.Start()
}

func (s *Sweeper) Stop() {
	s.cron.Stop()
}

func (s *Sweeper) run() {
	// Bounded by the interval so overlapping runs cannot pile up.
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	swept, err := s.sweep.ExpireDue(ctx)
	if err != nil {
		slog.Error("reservation sweep failed", "swept", swept, "error", err.Error())
		return
	}
	if swept > 0 {
		slog.Info("expired lapsed reservations", "swept", swept)
	}
}
