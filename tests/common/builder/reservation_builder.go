//go:build unit || e2e

package builder

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"promo-engine/internal/domain/reservation"
	"promo-engine/internal/usecase/queries"
)

type ReservationBuilder struct {
	ID          uuid.UUID
	PromotionID uuid.UUID
	CouponID    uuid.UUID
	CustomerID  *uuid.UUID
	OrderID     *string
	RequestKey  *string

	Status         reservation.Status
	DiscountAmount decimal.Decimal
	QuotedSubtotal decimal.Decimal
	QuotedTotal    decimal.Decimal

	ReleaseReason *string
	ReservedAt    time.Time
	ExpiresAt     time.Time
	CommittedAt   *time.Time
	ReleasedAt    *time.Time
	UpdatedAt     time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now()
	return &ReservationBuilder{
		ID:             uuid.New(),
		PromotionID:    uuid.New(),
		CouponID:       uuid.New(),
		Status:         reservation.StatusReserved,
		DiscountAmount: decimal.RequireFromString("10.00"),
		QuotedSubtotal: decimal.RequireFromString("100.00"),
		QuotedTotal:    decimal.RequireFromString("90.00"),
		ReservedAt:     now,
		ExpiresAt:      now.Add(15 * time.Minute),
		UpdatedAt:      now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithCustomer(customerID uuid.UUID) *ReservationBuilder {
	b.CustomerID = &customerID
	return b
}

func (b *ReservationBuilder) WithRequestKey(key string) *ReservationBuilder {
	b.RequestKey = &key
	return b
}

func (b *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	return reservation.Reconstruct(
		b.ID, b.PromotionID, b.CouponID,
		b.CustomerID,
		b.OrderID, b.RequestKey,
		b.Status,
		b.DiscountAmount, b.QuotedSubtotal, b.QuotedTotal,
		b.ReleaseReason,
		b.ReservedAt, b.ExpiresAt,
		b.CommittedAt, b.ReleasedAt,
		b.UpdatedAt,
	)
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:             b.ID,
		PromotionID:    b.PromotionID,
		CouponID:       b.CouponID,
		CustomerID:     b.CustomerID,
		OrderID:        b.OrderID,
		RequestKey:     b.RequestKey,
		Status:         b.Status,
		DiscountAmount: b.DiscountAmount,
		QuotedSubtotal: b.QuotedSubtotal,
		QuotedTotal:    b.QuotedTotal,
		ReleaseReason:  b.ReleaseReason,
		ReservedAt:     b.ReservedAt,
		ExpiresAt:      b.ExpiresAt,
		CommittedAt:    b.CommittedAt,
		ReleasedAt:     b.ReleasedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
