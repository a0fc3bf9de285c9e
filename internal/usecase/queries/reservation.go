package queries

import (
	"context"

	"github.com/google/uuid"

	"promo-engine/internal/domain/reservation"
	"promo-engine/internal/infra"
	"promo-engine/internal/pkg/errs"
)

type ReservationReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int32) ([]*reservation.Reservation, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int32) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	reader ReservationReader
}

func NewReservationQueries(reader ReservationReader) ReservationQueries {
	return &reservationQueriesImpl{reader: reader}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	rv, err := q.reader.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrNotFound)
		}
		return nil, errs.Wrap(err, "failed to get reservation")
	}
	return NewReservationView(rv)
}

func (q *reservationQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int32) ([]*ReservationView, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := q.reader.ListByCustomer(ctx, customerID, limit)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list reservations")
	}
	views := make([]*ReservationView, 0, len(rows))
	for _, rv := range rows {
		view, err := NewReservationView(rv)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
