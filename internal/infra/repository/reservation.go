package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"promo-engine/internal/domain/reservation"
	"promo-engine/internal/infra"
	"promo-engine/internal/infra/db"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

const reservationColumns = `
	id, promotion_id, coupon_id, customer_id, order_id, request_key,
	status, discount_amount, quoted_subtotal, quoted_total, release_reason,
	reserved_at, expires_at, committed_at, released_at, updated_at`

func (r *ReservationRepository) Create(ctx context.Context, rv *reservation.Reservation) error {
	const query = `
		INSERT INTO coupon_reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.Exec(ctx, query,
		rv.ID(), rv.PromotionID(), rv.CouponID(), rv.CustomerID(), rv.OrderID(), rv.RequestKey(),
		string(rv.Status()), rv.DiscountAmount(), rv.QuotedSubtotal(), rv.QuotedTotal(), rv.ReleaseReason(),
		rv.ReservedAt(), rv.ExpiresAt(), rv.CommittedAt(), rv.ReleasedAt(), rv.UpdatedAt(),
	)
	if err != nil {
		if infra.IsUniqueViolation(err) {
			return infra.WrapRepoErr("reservation request key already used", err, infra.KindDuplicateKey)
		}
		if infra.IsForeignKeyViolation(err) {
			return infra.WrapRepoErr("reservation references unknown campaign or coupon", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to insert reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	const query = `
		SELECT ` + reservationColumns + `
		FROM coupon_reservations
		WHERE id = $1
		FOR UPDATE`

	rv, err := ScanReservation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation for update", err)
	}
	return rv, nil
}

func (r *ReservationRepository) FindByRequestKey(ctx context.Context, requestKey string) (*reservation.Reservation, error) {
	const query = `
		SELECT ` + reservationColumns + `
		FROM coupon_reservations
		WHERE request_key = $1`

	rv, err := ScanReservation(r.db.QueryRow(ctx, query, requestKey))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by request key", err)
	}
	return rv, nil
}

func (r *ReservationRepository) Update(ctx context.Context, rv *reservation.Reservation) error {
	const query = `
		UPDATE coupon_reservations
		SET status = $2, order_id = $3, release_reason = $4,
		    committed_at = $5, released_at = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		rv.ID(), string(rv.Status()), rv.OrderID(), rv.ReleaseReason(),
		rv.CommittedAt(), rv.ReleasedAt(), rv.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) SumActiveReserved(ctx context.Context, promotionID uuid.UUID, now time.Time) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(discount_amount), 0)
		FROM coupon_reservations
		WHERE promotion_id = $1 AND status = 'RESERVED' AND expires_at > $2`

	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, promotionID, now).Scan(&sum); err != nil {
		return decimal.Zero, infra.WrapRepoErr("failed to sum active reservations", err)
	}
	return sum, nil
}

func (r *ReservationRepository) ListExpiredIDs(ctx context.Context, now time.Time, limit int32) ([]uuid.UUID, error) {
	const query = `
		SELECT id
		FROM coupon_reservations
		WHERE status = 'RESERVED' AND expires_at <= $1
		ORDER BY expires_at
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired reservations", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired reservation id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate expired reservations", err)
	}
	return ids, nil
}

// ScanReservation maps one reservation row. Shared with the read store.
func ScanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, promotionID, couponID                   uuid.UUID
		customerID                                  *uuid.UUID
		orderID, requestKey                         *string
		status                                      string
		discountAmount, quotedSubtotal, quotedTotal decimal.Decimal
		releaseReason                               *string
		reservedAt, expiresAt                       time.Time
		committedAt, releasedAt                     *time.Time
		updatedAt                                   time.Time
	)
	err := row.Scan(
		&id, &promotionID, &couponID, &customerID, &orderID, &requestKey,
		&status, &discountAmount, &quotedSubtotal, &quotedTotal, &releaseReason,
		&reservedAt, &expiresAt, &committedAt, &releasedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	return reservation.Reconstruct(
		id, promotionID, couponID, customerID, orderID, requestKey,
		reservation.Status(status), discountAmount, quotedSubtotal, quotedTotal, releaseReason,
		reservedAt, expiresAt, committedAt, releasedAt, updatedAt,
	), nil
}
