package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"promo-engine/internal/domain/coupon"
	"promo-engine/internal/infra"
	"promo-engine/internal/infra/db"
	"promo-engine/internal/infra/repository"
)

// CouponReadStore serves the non-locking coupon reads of the quote path. The
// reservation path uses the locking repository instead.
type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(dbtx db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: dbtx}
}

func (s *CouponReadStore) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	const query = `
		SELECT id, campaign_id, code, active, starts_at, ends_at,
		       max_uses, max_uses_per_customer, reservation_ttl_seconds, created_at
		FROM coupon_codes
		WHERE code = $1`

	c, err := repository.ScanCoupon(s.db.QueryRow(ctx, query, coupon.NormalizeCode(code)))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}
	return c, nil
}

func (s *CouponReadStore) CountActiveUses(ctx context.Context, couponID uuid.UUID, customerID *uuid.UUID, now time.Time) (coupon.Usage, error) {
	return repository.NewCouponRepository(s.db).CountActiveUses(ctx, couponID, customerID, now)
}
