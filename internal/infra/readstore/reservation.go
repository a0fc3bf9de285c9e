package readstore

import (
	"context"

	"github.com/google/uuid"

	"promo-engine/internal/domain/reservation"
	"promo-engine/internal/infra"
	"promo-engine/internal/infra/db"
	"promo-engine/internal/infra/repository"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

const reservationSelect = `
	SELECT id, promotion_id, coupon_id, customer_id, order_id, request_key,
	       status, discount_amount, quoted_subtotal, quoted_total, release_reason,
	       reserved_at, expires_at, committed_at, released_at, updated_at
	FROM coupon_reservations`

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	query := reservationSelect + ` WHERE id = $1`

	rv, err := repository.ScanReservation(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return rv, nil
}

func (s *ReservationReadStore) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int32) ([]*reservation.Reservation, error) {
	query := reservationSelect + `
	WHERE customer_id = $1
	ORDER BY reserved_at DESC
	LIMIT $2`

	rows, err := s.db.Query(ctx, query, customerID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by customer", err)
	}
	defer rows.Close()

	var result []*reservation.Reservation
	for rows.Next() {
		rv, err := repository.ScanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		result = append(result, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return result, nil
}
