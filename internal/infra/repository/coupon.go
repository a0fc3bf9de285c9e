package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"promo-engine/internal/domain/coupon"
	"promo-engine/internal/infra"
	"promo-engine/internal/infra/db"
)

type CouponRepository struct {
	db db.DBTX
}

func NewCouponRepository(dbtx db.DBTX) *CouponRepository {
	return &CouponRepository{db: dbtx}
}

const couponColumns = `
	id, campaign_id, code, active, starts_at, ends_at,
	max_uses, max_uses_per_customer, reservation_ttl_seconds, created_at`

func (r *CouponRepository) FindByCodeForUpdate(ctx context.Context, code string) (*coupon.Coupon, error) {
	const query = `
		SELECT ` + couponColumns + `
		FROM coupon_codes
		WHERE code = $1
		FOR UPDATE`

	c, err := ScanCoupon(r.db.QueryRow(ctx, query, coupon.NormalizeCode(code)))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon for update", err)
	}
	return c, nil
}

// CountActiveUses counts reservations that consume coupon capacity:
// COMMITTED, plus RESERVED holds that have not yet expired.
func (r *CouponRepository) CountActiveUses(ctx context.Context, couponID uuid.UUID, customerID *uuid.UUID, now time.Time) (coupon.Usage, error) {
	const query = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE $2::uuid IS NOT NULL AND customer_id = $2)
		FROM coupon_reservations
		WHERE coupon_id = $1
		  AND (status = 'COMMITTED' OR (status = 'RESERVED' AND expires_at > $3))`

	var usage coupon.Usage
	if err := r.db.QueryRow(ctx, query, couponID, customerID, now).Scan(&usage.Total, &usage.ByCustomer); err != nil {
		return coupon.Usage{}, infra.WrapRepoErr("failed to count coupon uses", err)
	}
	return usage, nil
}

// ScanCoupon maps one coupon row. Shared with the read store.
func ScanCoupon(row pgx.Row) (*coupon.Coupon, error) {
	var (
		c          coupon.Coupon
		ttlSeconds int32
	)
	err := row.Scan(
		&c.ID, &c.CampaignID, &c.Code, &c.Active, &c.StartsAt, &c.EndsAt,
		&c.MaxUses, &c.MaxUsesPerCustomer, &ttlSeconds, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.ReservationTTL = time.Duration(ttlSeconds) * time.Second
	return &c, nil
}
