//go:build unit

package commands_test

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"promo-engine/internal/domain/coupon"
	"promo-engine/internal/domain/promotion"
	"promo-engine/internal/domain/reservation"
	"promo-engine/internal/infra"
	"promo-engine/internal/infra/db"
	"promo-engine/internal/pkg/errs"
	"promo-engine/internal/usecase/shared"
)

// fakeStore is an in-memory stand-in for the reservation schema. No locking:
// command tests are single-goroutine.
type fakeStore struct {
	campaigns    map[uuid.UUID]*promotion.Campaign
	coupons      map[uuid.UUID]*coupon.Coupon
	reservations map[uuid.UUID]*reservation.Reservation
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		campaigns:    make(map[uuid.UUID]*promotion.Campaign),
		coupons:      make(map[uuid.UUID]*coupon.Coupon),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
	}
}

func (s *fakeStore) addCampaign(c promotion.Campaign) {
	s.campaigns[c.ID] = &c
}

func (s *fakeStore) addCoupon(cp *coupon.Coupon) {
	s.coupons[cp.ID] = cp
}

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) DB() db.DBTX                               { return nil }
func (t *fakeTx) Reservations() shared.ReservationRepository { return &fakeReservationRepo{t.store} }
func (t *fakeTx) Campaigns() shared.CampaignRepository       { return &fakeCampaignRepo{t.store} }
func (t *fakeTx) Coupons() shared.CouponRepository           { return &fakeCouponRepo{t.store} }

type fakeReservationRepo struct {
	store *fakeStore
}

func (r *fakeReservationRepo) Create(_ context.Context, rv *reservation.Reservation) error {
	if key := rv.RequestKey(); key != nil {
		for _, existing := range r.store.reservations {
			if existing.RequestKey() != nil && *existing.RequestKey() == *key {
				return infra.WrapRepoErr("duplicate request key", errs.New("unique violation"), infra.KindDuplicateKey)
			}
		}
	}
	r.store.reservations[rv.ID()] = rv
	return nil
}

func (r *fakeReservationRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	rv, ok := r.store.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", errs.New("no rows"), infra.KindNotFound)
	}
	return rv, nil
}

func (r *fakeReservationRepo) FindByRequestKey(_ context.Context, requestKey string) (*reservation.Reservation, error) {
	for _, rv := range r.store.reservations {
		if rv.RequestKey() != nil && *rv.RequestKey() == requestKey {
			return rv, nil
		}
	}
	return nil, infra.WrapRepoErr("reservation not found", errs.New("no rows"), infra.KindNotFound)
}

func (r *fakeReservationRepo) Update(_ context.Context, rv *reservation.Reservation) error {
	if _, ok := r.store.reservations[rv.ID()]; !ok {
		return infra.WrapRepoErr("reservation not found", errs.New("no rows"), infra.KindNotFound)
	}
	r.store.reservations[rv.ID()] = rv
	return nil
}

func (r *fakeReservationRepo) SumActiveReserved(_ context.Context, promotionID uuid.UUID, now time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, rv := range r.store.reservations {
		if rv.PromotionID() == promotionID && rv.Status() == reservation.StatusReserved && rv.ExpiresAt().After(now) {
			sum = sum.Add(rv.DiscountAmount())
		}
	}
	return sum, nil
}

func (r *fakeReservationRepo) ListExpiredIDs(_ context.Context, now time.Time, limit int32) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, rv := range r.store.reservations {
		if rv.Status() == reservation.StatusReserved && now.After(rv.ExpiresAt()) {
			ids = append(ids, rv.ID())
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	if int32(len(ids)) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

type fakeCampaignRepo struct {
	store *fakeStore
}

func (r *fakeCampaignRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*promotion.Campaign, error) {
	c, ok := r.store.campaigns[id]
	if !ok {
		return nil, infra.WrapRepoErr("campaign not found", errs.New("no rows"), infra.KindNotFound)
	}
	snapshot := *c
	return &snapshot, nil
}

func (r *fakeCampaignRepo) AddBurnedBudget(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	c, ok := r.store.campaigns[id]
	if !ok {
		return infra.WrapRepoErr("campaign not found", errs.New("no rows"), infra.KindNotFound)
	}
	burned := c.BurnedBudgetAmount.Add(delta)
	if burned.IsNegative() {
		burned = decimal.Zero
	}
	c.BurnedBudgetAmount = burned
	return nil
}

type fakeCouponRepo struct {
	store *fakeStore
}

func (r *fakeCouponRepo) FindByCodeForUpdate(_ context.Context, code string) (*coupon.Coupon, error) {
	normalized := coupon.NormalizeCode(code)
	for _, cp := range r.store.coupons {
		if cp.Code == normalized {
			return cp, nil
		}
	}
	return nil, infra.WrapRepoErr("coupon not found", errs.New("no rows"), infra.KindNotFound)
}

func (r *fakeCouponRepo) CountActiveUses(_ context.Context, couponID uuid.UUID, customerID *uuid.UUID, now time.Time) (coupon.Usage, error) {
	var usage coupon.Usage
	for _, rv := range r.store.reservations {
		if rv.CouponID() != couponID {
			continue
		}
		active := rv.Status() == reservation.StatusCommitted ||
			(rv.Status() == reservation.StatusReserved && rv.ExpiresAt().After(now))
		if !active {
			continue
		}
		usage.Total++
		if customerID != nil && rv.CustomerID() != nil && *rv.CustomerID() == *customerID {
			usage.ByCustomer++
		}
	}
	return usage, nil
}

// fakeCouponReader adapts the store to the non-locking read-side interface.
type fakeCouponReader struct {
	store *fakeStore
}

func (r *fakeCouponReader) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	return (&fakeCouponRepo{r.store}).FindByCodeForUpdate(ctx, code)
}

func (r *fakeCouponReader) CountActiveUses(ctx context.Context, couponID uuid.UUID, customerID *uuid.UUID, now time.Time) (coupon.Usage, error) {
	return (&fakeCouponRepo{r.store}).CountActiveUses(ctx, couponID, customerID, now)
}
