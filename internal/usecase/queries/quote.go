package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"promo-engine/internal/domain/coupon"
	"promo-engine/internal/domain/promotion"
	"promo-engine/internal/domain/quote"
	"promo-engine/internal/infra"
	"promo-engine/internal/pkg/clock"
	"promo-engine/internal/pkg/errs"
)

// CatalogReader lists quotable campaigns. The cache decorator satisfies the
// same interface as the bare read store.
type CatalogReader interface {
	ActiveCampaigns(ctx context.Context, now time.Time) ([]promotion.Campaign, error)
}

type CampaignReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*promotion.Campaign, error)
}

type CouponReader interface {
	FindByCode(ctx context.Context, code string) (*coupon.Coupon, error)
	CountActiveUses(ctx context.Context, couponID uuid.UUID, customerID *uuid.UUID, now time.Time) (coupon.Usage, error)
}

type QuoteQueries interface {
	Execute(ctx context.Context, req quote.Request) (*quote.Result, error)
}

type quoteQueriesImpl struct {
	catalog   CatalogReader
	campaigns CampaignReader
	coupons   CouponReader
	engine    *quote.Engine
	clock     clock.Clock
}

func NewQuoteQueries(
	catalog CatalogReader,
	campaigns CampaignReader,
	coupons CouponReader,
	engine *quote.Engine,
	clk clock.Clock,
) QuoteQueries {
	return &quoteQueriesImpl{
		catalog:   catalog,
		campaigns: campaigns,
		coupons:   coupons,
		engine:    engine,
		clock:     clk,
	}
}

// Execute prices a cart. Quoting never consults budgets and holds no locks;
// a quoted discount is only guaranteed once reserved.
func (q *quoteQueriesImpl) Execute(ctx context.Context, req quote.Request) (*quote.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	if req.PricedAt.IsZero() {
		req.PricedAt = q.clock.Now()
	}

	campaigns, err := q.catalog.ActiveCampaigns(ctx, req.PricedAt)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load campaign catalog")
	}

	var explicitID *uuid.UUID
	if req.CouponCode != nil {
		explicitID, campaigns, err = q.resolveCoupon(ctx, *req.CouponCode, req.CustomerID, req.PricedAt, campaigns)
		if err != nil {
			return nil, err
		}
	}

	result, err := q.engine.Quote(campaigns, explicitID, req)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	return result, nil
}

// resolveCoupon checks the supplied code and makes its campaign a candidate.
// The catalog filter matches the eligibility rules, so a passing coupon's
// campaign is normally already listed; the fallback fetch covers catalog
// cache staleness.
func (q *quoteQueriesImpl) resolveCoupon(
	ctx context.Context,
	code string,
	customerID *uuid.UUID,
	now time.Time,
	campaigns []promotion.Campaign,
) (*uuid.UUID, []promotion.Campaign, error) {
	cp, err := q.coupons.FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.Mark(errs.Newf("coupon %q not found", code), errs.ErrNotFound)
		}
		return nil, nil, errs.Wrap(err, "failed to find coupon")
	}

	usage, err := q.coupons.CountActiveUses(ctx, cp.ID, customerID, now)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to count coupon uses")
	}

	campaign := findCampaign(campaigns, cp.CampaignID)
	if campaign == nil {
		campaign, err = q.campaigns.FindByID(ctx, cp.CampaignID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, nil, errs.Mark(errs.New("coupon campaign not found"), errs.ErrNotFound)
			}
			return nil, nil, errs.Wrap(err, "failed to find coupon campaign")
		}
		campaigns = append(campaigns, *campaign)
	}

	if err := coupon.CheckEligibility(cp, campaign, usage, customerID, now); err != nil {
		return nil, nil, errs.Mark(err, errs.ErrIneligible)
	}

	id := cp.CampaignID
	return &id, campaigns, nil
}

func findCampaign(campaigns []promotion.Campaign, id uuid.UUID) *promotion.Campaign {
	for i := range campaigns {
		if campaigns[i].ID == id {
			return &campaigns[i]
		}
	}
	return nil
}
