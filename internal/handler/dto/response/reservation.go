package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"promo-engine/internal/usecase/commands"
	"promo-engine/internal/usecase/queries"
)

type ReservationResponse struct {
	ID             uuid.UUID       `json:"id"`
	PromotionID    uuid.UUID       `json:"promotion_id"`
	CouponID       uuid.UUID       `json:"coupon_id"`
	CustomerID     *uuid.UUID      `json:"customer_id,omitempty"`
	OrderID        *string         `json:"order_id,omitempty"`
	Status         string          `json:"status"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	QuotedSubtotal decimal.Decimal `json:"quoted_subtotal"`
	QuotedTotal    decimal.Decimal `json:"quoted_total"`
	ReleaseReason  *string         `json:"release_reason,omitempty"`
	ReservedAt     time.Time       `json:"reserved_at"`
	ExpiresAt      time.Time       `json:"expires_at"`
	CommittedAt    *time.Time      `json:"committed_at,omitempty"`
	ReleasedAt     *time.Time      `json:"released_at,omitempty"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:             v.ID,
		PromotionID:    v.PromotionID,
		CouponID:       v.CouponID,
		CustomerID:     v.CustomerID,
		OrderID:        v.OrderID,
		Status:         string(v.Status),
		DiscountAmount: v.DiscountAmount,
		QuotedSubtotal: v.QuotedSubtotal,
		QuotedTotal:    v.QuotedTotal,
		ReleaseReason:  v.ReleaseReason,
		ReservedAt:     v.ReservedAt,
		ExpiresAt:      v.ExpiresAt,
		CommittedAt:    v.CommittedAt,
		ReleasedAt:     v.ReleasedAt,
	}
}

type ReserveResponse struct {
	Reservation *ReservationResponse `json:"reservation"`
	Quote       *QuoteResponse       `json:"quote,omitempty"`
	Replayed    bool                 `json:"replayed"`
}

func FromReserveResult(r *commands.ReserveResult) *ReserveResponse {
	resp := &ReserveResponse{
		Reservation: FromReservationView(r.Reservation),
		Replayed:    r.IsReplayed,
	}
	if r.Quote != nil {
		resp.Quote = FromQuoteResult(r.Quote)
	}
	return resp
}
