//go:build unit || e2e

package builder

import (
	"time"

	"github.com/google/uuid"

	"promo-engine/internal/domain/coupon"
)

type CouponBuilder struct {
	ID         uuid.UUID
	CampaignID uuid.UUID
	Code       string

	Active   bool
	StartsAt *time.Time
	EndsAt   *time.Time

	MaxUses            *int32
	MaxUsesPerCustomer *int32

	ReservationTTL time.Duration

	CreatedAt time.Time
}

func NewCouponBuilder() *CouponBuilder {
	return &CouponBuilder{
		ID:             uuid.New(),
		CampaignID:     uuid.New(),
		Code:           "WELCOME10",
		Active:         true,
		ReservationTTL: 15 * time.Minute,
		CreatedAt:      time.Now().Add(-24 * time.Hour),
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

func (b *CouponBuilder) WithMaxUses(total int32) *CouponBuilder {
	b.MaxUses = &total
	return b
}

func (b *CouponBuilder) WithMaxUsesPerCustomer(perCustomer int32) *CouponBuilder {
	b.MaxUsesPerCustomer = &perCustomer
	return b
}

func (b *CouponBuilder) WithWindow(startsAt, endsAt time.Time) *CouponBuilder {
	b.StartsAt = &startsAt
	b.EndsAt = &endsAt
	return b
}

func (b *CouponBuilder) BuildDomain() *coupon.Coupon {
	return &coupon.Coupon{
		ID:                 b.ID,
		CampaignID:         b.CampaignID,
		Code:               coupon.NormalizeCode(b.Code),
		Active:             b.Active,
		StartsAt:           b.StartsAt,
		EndsAt:             b.EndsAt,
		MaxUses:            b.MaxUses,
		MaxUsesPerCustomer: b.MaxUsesPerCustomer,
		ReservationTTL:     b.ReservationTTL,
		CreatedAt:          b.CreatedAt,
	}
}
