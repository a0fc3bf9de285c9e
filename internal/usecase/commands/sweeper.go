package commands

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"promo-engine/internal/pkg/clock"
	"promo-engine/internal/pkg/config"
	"promo-engine/internal/usecase/shared"
)

const sweepConcurrency = 4

type SweepCommands interface {
	// ExpireDue transitions lapsed RESERVED holds to EXPIRED and returns how
	// many were swept.
	ExpireDue(ctx context.Context) (int, error)
}

type sweepCommandsImpl struct {
	uow   shared.UnitOfWork
	cfg   config.ReservationConfig
	clock clock.Clock
}

func NewSweepCommands(uow shared.UnitOfWork, cfg config.ReservationConfig, clk clock.Clock) SweepCommands {
	return &sweepCommandsImpl{uow: uow, cfg: cfg, clock: clk}
}

func (s *sweepCommandsImpl) ExpireDue(ctx context.Context) (int, error) {
	var swept int
	for {
		ids, err := s.listDue(ctx)
		if err != nil {
			return swept, err
		}
		if len(ids) == 0 {
			return swept, nil
		}

		// Each hold gets its own short transaction so one contended row
		// cannot stall the batch. Failures are logged and retried on the
		// next sweep.
		var batchSwept atomic.Int64
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(sweepConcurrency)
		for _, id := range ids {
			id := id
			g.Go(func() error {
				if err := s.expireOne(gctx, id); err != nil {
					slog.Warn("failed to expire reservation", "reservation_id", id, "error", err.Error())
					return nil
				}
				batchSwept.Add(1)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return swept, err
		}
		swept += int(batchSwept.Load())

		// A partially failed batch would re-list the same ids forever.
		if int(batchSwept.Load()) < len(ids) {
			return swept, nil
		}
	}
}

func (s *sweepCommandsImpl) listDue(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		ids, err = tx.Reservations().ListExpiredIDs(ctx, s.clock.Now(), int32(s.cfg.SweepBatchSize))
		return err
	})
	return ids, err
}

func (s *sweepCommandsImpl) expireOne(ctx context.Context, id uuid.UUID) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rv, err := tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		// A commit or release may have slipped in between listing and
		// locking.
		if !rv.Expired(now) {
			return nil
		}
		if err := rv.MarkExpired(now); err != nil {
			return err
		}
		return tx.Reservations().Update(ctx, rv)
	})
}
