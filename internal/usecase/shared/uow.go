package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"promo-engine/internal/domain/coupon"
	"promo-engine/internal/domain/promotion"
	"promo-engine/internal/domain/reservation"
	"promo-engine/internal/infra/db"
)

// UnitOfWork scopes repository access to a transaction. Within retries the
// whole closure on serialization failures, so closures must be idempotent
// apart from their database writes.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	DB() db.DBTX
	Reservations() ReservationRepository
	Campaigns() CampaignRepository
	Coupons() CouponRepository
}

type ReservationRepository interface {
	Create(ctx context.Context, r *reservation.Reservation) error
	// FindByIDForUpdate takes a row lock; callers must hold a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindByRequestKey(ctx context.Context, requestKey string) (*reservation.Reservation, error)
	Update(ctx context.Context, r *reservation.Reservation) error
	// SumActiveReserved totals discount amounts of RESERVED, unexpired holds
	// for one campaign.
	SumActiveReserved(ctx context.Context, promotionID uuid.UUID, now time.Time) (decimal.Decimal, error)
	ListExpiredIDs(ctx context.Context, now time.Time, limit int32) ([]uuid.UUID, error)
}

type CampaignRepository interface {
	// FindByIDForUpdate locks the campaign row so budget math is serialized.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*promotion.Campaign, error)
	// AddBurnedBudget applies a signed delta; the stored value never drops
	// below zero.
	AddBurnedBudget(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}

type CouponRepository interface {
	// FindByCodeForUpdate locks the coupon row to serialize usage counting.
	FindByCodeForUpdate(ctx context.Context, code string) (*coupon.Coupon, error)
	CountActiveUses(ctx context.Context, couponID uuid.UUID, customerID *uuid.UUID, now time.Time) (coupon.Usage, error)
}
