//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"promo-engine/internal/domain/coupon"
	"promo-engine/internal/domain/promotion"
	"promo-engine/internal/domain/quote"
	"promo-engine/internal/infra"
	"promo-engine/internal/pkg/clock"
	"promo-engine/internal/pkg/errs"
	"promo-engine/internal/usecase/queries"
	"promo-engine/tests/common/builder"
	queriesmock "promo-engine/tests/mock/queries"
)

type QuoteQueriesTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockCatalog   *queriesmock.MockCatalogReader
	mockCampaigns *queriesmock.MockCampaignReader
	mockCoupons   *queriesmock.MockCouponReader
	clock         *clock.MockClock
	queries       queries.QuoteQueries
}

func (s *QuoteQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCatalog = queriesmock.NewMockCatalogReader(s.mockCtrl)
	s.mockCampaigns = queriesmock.NewMockCampaignReader(s.mockCtrl)
	s.mockCoupons = queriesmock.NewMockCouponReader(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.queries = queries.NewQuoteQueries(s.mockCatalog, s.mockCampaigns, s.mockCoupons, quote.NewEngine(), s.clock)
}

func (s *QuoteQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestQuoteQueriesSuite(t *testing.T) {
	suite.Run(t, new(QuoteQueriesTestSuite))
}

func (s *QuoteQueriesTestSuite) validRequest() quote.Request {
	return quote.Request{
		Lines: []quote.Line{
			{ProductID: "p1", VendorID: "v1", UnitPrice: decimal.RequireFromString("50.00"), Quantity: 2},
		},
		ShippingAmount: decimal.RequireFromString("10.00"),
	}
}

func (s *QuoteQueriesTestSuite) TestExecute() {
	ctx := context.Background()

	s.Run("invalid request maps to validation error", func() {
		_, err := s.queries.Execute(ctx, quote.Request{})
		s.Require().Error(err)
		s.True(errors.Is(err, errs.ErrValidation))
	})

	s.Run("prices against the active catalog", func() {
		campaign := builder.NewCampaignBuilder().BuildDomain()
		s.mockCatalog.EXPECT().ActiveCampaigns(gomock.Any(), s.clock.Now()).
			Return([]promotion.Campaign{campaign}, nil)

		result, err := s.queries.Execute(ctx, s.validRequest())
		s.Require().NoError(err)
		s.Require().Len(result.AppliedPromotions, 1)
		s.Equal(campaign.ID, result.AppliedPromotions[0].PromotionID)
		s.Equal(s.clock.Now(), result.PricedAt)
	})

	s.Run("explicit priced-at wins over the clock", func() {
		pinned := s.clock.Now().Add(-time.Hour)
		s.mockCatalog.EXPECT().ActiveCampaigns(gomock.Any(), pinned).Return(nil, nil)

		req := s.validRequest()
		req.PricedAt = pinned
		result, err := s.queries.Execute(ctx, req)
		s.Require().NoError(err)
		s.Equal(pinned, result.PricedAt)
	})

	s.Run("catalog failure is wrapped", func() {
		s.mockCatalog.EXPECT().ActiveCampaigns(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused"))

		_, err := s.queries.Execute(ctx, s.validRequest())
		s.Require().Error(err)
	})
}

func (s *QuoteQueriesTestSuite) TestExecute_WithCoupon() {
	ctx := context.Background()
	code := "WELCOME10"

	s.Run("unknown coupon maps to not found", func() {
		s.mockCatalog.EXPECT().ActiveCampaigns(gomock.Any(), gomock.Any()).Return(nil, nil)
		s.mockCoupons.EXPECT().FindByCode(gomock.Any(), code).
			Return(nil, infra.WrapRepoErr("coupon not found", errors.New("no rows"), infra.KindNotFound))

		req := s.validRequest()
		req.CouponCode = &code
		_, err := s.queries.Execute(ctx, req)
		s.Require().Error(err)
		s.True(errors.Is(err, errs.ErrNotFound))
	})

	s.Run("coupon campaign becomes the explicit candidate", func() {
		campaign := builder.NewCampaignBuilder().
			With(func(b *builder.CampaignBuilder) { b.AutoApply = false }).
			BuildDomain()
		couponBuilder := builder.NewCouponBuilder()
		couponBuilder.CampaignID = campaign.ID
		cp := couponBuilder.BuildDomain()

		s.mockCatalog.EXPECT().ActiveCampaigns(gomock.Any(), gomock.Any()).
			Return([]promotion.Campaign{campaign}, nil)
		s.mockCoupons.EXPECT().FindByCode(gomock.Any(), code).Return(cp, nil)
		s.mockCoupons.EXPECT().CountActiveUses(gomock.Any(), cp.ID, gomock.Nil(), gomock.Any()).
			Return(coupon.Usage{}, nil)

		req := s.validRequest()
		req.CouponCode = &code
		result, err := s.queries.Execute(ctx, req)
		s.Require().NoError(err)
		s.Require().Len(result.AppliedPromotions, 1)
		s.Equal(campaign.ID, result.AppliedPromotions[0].PromotionID)
	})

	s.Run("campaign missing from catalog is fetched directly", func() {
		campaign := builder.NewCampaignBuilder().BuildDomain()
		couponBuilder := builder.NewCouponBuilder()
		couponBuilder.CampaignID = campaign.ID
		cp := couponBuilder.BuildDomain()

		s.mockCatalog.EXPECT().ActiveCampaigns(gomock.Any(), gomock.Any()).Return(nil, nil)
		s.mockCoupons.EXPECT().FindByCode(gomock.Any(), code).Return(cp, nil)
		s.mockCoupons.EXPECT().CountActiveUses(gomock.Any(), cp.ID, gomock.Nil(), gomock.Any()).
			Return(coupon.Usage{}, nil)
		s.mockCampaigns.EXPECT().FindByID(gomock.Any(), campaign.ID).Return(&campaign, nil)

		req := s.validRequest()
		req.CouponCode = &code
		result, err := s.queries.Execute(ctx, req)
		s.Require().NoError(err)
		s.Require().Len(result.AppliedPromotions, 1)
	})

	s.Run("ineligible coupon maps to 422 taxonomy", func() {
		campaign := builder.NewCampaignBuilder().BuildDomain()
		couponBuilder := builder.NewCouponBuilder()
		couponBuilder.CampaignID = campaign.ID
		couponBuilder.Active = false
		cp := couponBuilder.BuildDomain()

		s.mockCatalog.EXPECT().ActiveCampaigns(gomock.Any(), gomock.Any()).
			Return([]promotion.Campaign{campaign}, nil)
		s.mockCoupons.EXPECT().FindByCode(gomock.Any(), code).Return(cp, nil)
		s.mockCoupons.EXPECT().CountActiveUses(gomock.Any(), cp.ID, gomock.Nil(), gomock.Any()).
			Return(coupon.Usage{}, nil)

		req := s.validRequest()
		req.CouponCode = &code
		_, err := s.queries.Execute(ctx, req)
		s.Require().Error(err)
		s.True(errors.Is(err, errs.ErrIneligible))
		s.True(errors.Is(err, coupon.ErrInactive))
	})

	s.Run("usage limit reached maps to ineligible", func() {
		campaign := builder.NewCampaignBuilder().BuildDomain()
		couponBuilder := builder.NewCouponBuilder()
		couponBuilder.CampaignID = campaign.ID
		cp := couponBuilder.WithMaxUses(3).BuildDomain()

		s.mockCatalog.EXPECT().ActiveCampaigns(gomock.Any(), gomock.Any()).
			Return([]promotion.Campaign{campaign}, nil)
		s.mockCoupons.EXPECT().FindByCode(gomock.Any(), code).Return(cp, nil)
		s.mockCoupons.EXPECT().CountActiveUses(gomock.Any(), cp.ID, gomock.Nil(), gomock.Any()).
			Return(coupon.Usage{Total: 3}, nil)

		req := s.validRequest()
		req.CouponCode = &code
		_, err := s.queries.Execute(ctx, req)
		s.Require().Error(err)
		s.True(errors.Is(err, coupon.ErrUsageLimitReached))
	})
}
