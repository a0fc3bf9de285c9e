package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"promo-engine/internal/domain/coupon"
	"promo-engine/internal/domain/quote"
	"promo-engine/internal/domain/reservation"
	"promo-engine/internal/infra"
	"promo-engine/internal/pkg/clock"
	"promo-engine/internal/pkg/config"
	"promo-engine/internal/pkg/errs"
	"promo-engine/internal/usecase/queries"
	"promo-engine/internal/usecase/shared"
)

var (
	ErrCouponRequired     = errs.New("coupon code is required to reserve")
	ErrNoDiscountToHold   = errs.New("coupon contributes no discount to this cart")
	ErrRequestKeyConflict = errs.New("request key already used for a different request")
	ErrReservationExpired = errs.New("reservation hold has expired")
)

type ReserveInput struct {
	Quote      quote.Request
	RequestKey *string
}

type ReserveResult struct {
	Reservation *queries.ReservationView
	Quote       *quote.Result
	IsReplayed  bool
}

type ReservationCommands interface {
	Reserve(ctx context.Context, input ReserveInput) (*ReserveResult, error)
	Commit(ctx context.Context, id uuid.UUID, orderID string) (*queries.ReservationView, error)
	Release(ctx context.Context, id uuid.UUID, reason string) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow     shared.UnitOfWork
	quoter  queries.QuoteQueries
	coupons queries.CouponReader
	cfg     config.ReservationConfig
	clock   clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	quoter queries.QuoteQueries,
	coupons queries.CouponReader,
	cfg config.ReservationConfig,
	clk clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:     uow,
		quoter:  quoter,
		coupons: coupons,
		cfg:     cfg,
		clock:   clk,
	}
}

// Reserve prices the cart and takes a budget hold for the coupon's campaign.
// The quote runs outside any lock; eligibility and budget are re-validated
// under row locks before the hold is written.
func (c *reservationCommandsImpl) Reserve(ctx context.Context, input ReserveInput) (*ReserveResult, error) {
	if input.Quote.CouponCode == nil || *input.Quote.CouponCode == "" {
		return nil, errs.Mark(ErrCouponRequired, errs.ErrValidation)
	}

	if input.RequestKey != nil {
		replayed, err := c.findReplay(ctx, input)
		if err != nil {
			return nil, err
		}
		if replayed != nil {
			return replayed, nil
		}
	}

	input.Quote.PricedAt = c.clock.Now()
	result, err := c.quoter.Execute(ctx, input.Quote)
	if err != nil {
		return nil, err
	}

	var rv *reservation.Reservation
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rv = nil
		now := c.clock.Now()

		cp, err := tx.Coupons().FindByCodeForUpdate(ctx, *input.Quote.CouponCode)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrNotFound)
			}
			return err
		}

		campaign, err := tx.Campaigns().FindByIDForUpdate(ctx, cp.CampaignID)
		if err != nil {
			return err
		}

		usage, err := tx.Coupons().CountActiveUses(ctx, cp.ID, input.Quote.CustomerID, now)
		if err != nil {
			return err
		}
		if err := coupon.CheckEligibility(cp, campaign, usage, input.Quote.CustomerID, now); err != nil {
			return errs.Mark(err, errs.ErrIneligible)
		}

		discount := result.DiscountFor(cp.CampaignID)
		if !discount.IsPositive() {
			return errs.Mark(ErrNoDiscountToHold, errs.ErrIneligible)
		}

		if campaign.BudgetAmount != nil {
			reserved, err := tx.Reservations().SumActiveReserved(ctx, campaign.ID, now)
			if err != nil {
				return err
			}
			if remaining := campaign.RemainingBudget(reserved); remaining != nil && remaining.LessThan(discount) {
				return errs.Mark(errs.Newf("remaining budget %s below discount %s", remaining, discount), errs.ErrBudgetExhausted)
			}
		}

		ttl := reservation.ClampTTL(cp.ReservationTTL, c.cfg.MaxTTL)
		rv, err = reservation.New(
			campaign.ID, cp.ID, input.Quote.CustomerID, input.RequestKey,
			discount, result.Subtotal, result.GrandTotal, ttl, now,
		)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		return tx.Reservations().Create(ctx, rv)
	})
	if err != nil {
		// A concurrent request with the same key won the insert race.
		if infra.IsKind(err, infra.KindDuplicateKey) && input.RequestKey != nil {
			if replayed, replayErr := c.findReplay(ctx, input); replayErr == nil && replayed != nil {
				return replayed, nil
			}
			return nil, errs.Mark(err, errs.ErrConflict)
		}
		return nil, err
	}

	view, err := queries.NewReservationView(rv)
	if err != nil {
		return nil, err
	}
	return &ReserveResult{Reservation: view, Quote: result, IsReplayed: false}, nil
}

// findReplay resolves an idempotent retry: a stored hold under the same
// request key is returned as-is when it belongs to the same coupon and
// customer, and conflicts otherwise.
func (c *reservationCommandsImpl) findReplay(ctx context.Context, input ReserveInput) (*ReserveResult, error) {
	var rv *reservation.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		rv, err = tx.Reservations().FindByRequestKey(ctx, *input.RequestKey)
		return err
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}

	cp, err := c.coupons.FindByCode(ctx, *input.Quote.CouponCode)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrNotFound)
		}
		return nil, err
	}
	if !rv.MatchesRequest(cp.ID, input.Quote.CustomerID) {
		return nil, errs.Mark(ErrRequestKeyConflict, errs.ErrConflict)
	}

	view, err := queries.NewReservationView(rv)
	if err != nil {
		return nil, err
	}
	return &ReserveResult{Reservation: view, IsReplayed: true}, nil
}

// Commit finalizes a hold against an order and burns the campaign budget.
// Committing twice with the same order id is idempotent.
func (c *reservationCommandsImpl) Commit(ctx context.Context, id uuid.UUID, orderID string) (*queries.ReservationView, error) {
	var (
		rv         *reservation.Reservation
		lapsedHold bool
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		lapsedHold = false
		var err error
		rv, err = tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrNotFound)
			}
			return err
		}
		now := c.clock.Now()

		if rv.Expired(now) {
			// The sweep has not reached this hold yet; finalize the expiry
			// and report the conflict after commit.
			if err := rv.MarkExpired(now); err != nil {
				return err
			}
			if err := tx.Reservations().Update(ctx, rv); err != nil {
				return err
			}
			lapsedHold = true
			return nil
		}

		wasCommitted := rv.Status() == reservation.StatusCommitted
		if err := rv.Commit(orderID, now); err != nil {
			return markTransitionErr(err)
		}
		if wasCommitted {
			return nil
		}

		campaign, err := tx.Campaigns().FindByIDForUpdate(ctx, rv.PromotionID())
		if err != nil {
			return err
		}
		if campaign.BudgetAmount != nil {
			if campaign.BurnedBudgetAmount.Add(rv.DiscountAmount()).GreaterThan(*campaign.BudgetAmount) {
				return errs.Mark(errs.New("budget no longer covers reserved discount"), errs.ErrBudgetExhausted)
			}
		}
		if err := tx.Campaigns().AddBurnedBudget(ctx, campaign.ID, rv.DiscountAmount()); err != nil {
			return err
		}
		return tx.Reservations().Update(ctx, rv)
	})
	if err != nil {
		return nil, err
	}
	if lapsedHold {
		return nil, errs.Mark(ErrReservationExpired, errs.ErrConflict)
	}
	return queries.NewReservationView(rv)
}

// Release returns a hold (or a committed discount) to the budget. Releasing
// an already released or expired reservation returns it unchanged.
func (c *reservationCommandsImpl) Release(ctx context.Context, id uuid.UUID, reason string) (*queries.ReservationView, error) {
	var rv *reservation.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		rv, err = tx.Reservations().FindByIDForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrNotFound)
			}
			return err
		}
		now := c.clock.Now()

		if rv.Status().IsTerminal() {
			return nil
		}

		if rv.Expired(now) {
			if err := rv.MarkExpired(now); err != nil {
				return err
			}
			return tx.Reservations().Update(ctx, rv)
		}

		if rv.Status() == reservation.StatusCommitted {
			if err := tx.Campaigns().AddBurnedBudget(ctx, rv.PromotionID(), rv.DiscountAmount().Neg()); err != nil {
				return err
			}
		}
		if err := rv.Release(reason, now); err != nil {
			return markTransitionErr(err)
		}
		return tx.Reservations().Update(ctx, rv)
	})
	if err != nil {
		return nil, err
	}
	return queries.NewReservationView(rv)
}

func markTransitionErr(err error) error {
	if errors.Is(err, reservation.ErrAlreadyTerminal) ||
		errors.Is(err, reservation.ErrOrderMismatch) ||
		errors.Is(err, reservation.ErrExpiredReservation) {
		return errs.Mark(err, errs.ErrConflict)
	}
	return err
}
