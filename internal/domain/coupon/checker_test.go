//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"promo-engine/internal/domain/coupon"
	"promo-engine/internal/domain/promotion"
	"promo-engine/tests/common/builder"
)

func TestCheckEligibility(t *testing.T) {
	now := time.Now()
	customerID := uuid.New()

	testCases := []struct {
		name           string
		mutateCoupon   func(*builder.CouponBuilder)
		mutateCampaign func(*builder.CampaignBuilder)
		usage          coupon.Usage
		customerID     *uuid.UUID
		expectedErr    error
	}{
		{
			name: "eligible by default",
		},
		{
			name:         "inactive coupon",
			mutateCoupon: func(b *builder.CouponBuilder) { b.Active = false },
			expectedErr:  coupon.ErrInactive,
		},
		{
			name: "coupon not yet valid",
			mutateCoupon: func(b *builder.CouponBuilder) {
				b.WithWindow(now.Add(time.Hour), now.Add(2*time.Hour))
			},
			expectedErr: coupon.ErrNotYetValid,
		},
		{
			name: "coupon expired",
			mutateCoupon: func(b *builder.CouponBuilder) {
				b.WithWindow(now.Add(-2*time.Hour), now.Add(-time.Hour))
			},
			expectedErr: coupon.ErrExpired,
		},
		{
			name:           "campaign not active",
			mutateCampaign: func(b *builder.CampaignBuilder) { b.Lifecycle = promotion.LifecycleDraft },
			expectedErr:    coupon.ErrCampaignInactive,
		},
		{
			name:           "campaign rejected",
			mutateCampaign: func(b *builder.CampaignBuilder) { b.Approval = promotion.ApprovalRejected },
			expectedErr:    coupon.ErrCampaignNotApproved,
		},
		{
			name: "campaign outside window",
			mutateCampaign: func(b *builder.CampaignBuilder) {
				b.WithWindow(now.Add(-2*time.Hour), now.Add(-time.Hour))
			},
			expectedErr: coupon.ErrCampaignOutsideWindow,
		},
		{
			name:         "global usage limit reached",
			mutateCoupon: func(b *builder.CouponBuilder) { b.WithMaxUses(5) },
			usage:        coupon.Usage{Total: 5},
			expectedErr:  coupon.ErrUsageLimitReached,
		},
		{
			name:         "global usage below limit",
			mutateCoupon: func(b *builder.CouponBuilder) { b.WithMaxUses(5) },
			usage:        coupon.Usage{Total: 4},
		},
		{
			name:         "per-customer cap requires a customer",
			mutateCoupon: func(b *builder.CouponBuilder) { b.WithMaxUsesPerCustomer(1) },
			expectedErr:  coupon.ErrCustomerRequired,
		},
		{
			name:         "per-customer limit reached",
			mutateCoupon: func(b *builder.CouponBuilder) { b.WithMaxUsesPerCustomer(1) },
			usage:        coupon.Usage{Total: 3, ByCustomer: 1},
			customerID:   &customerID,
			expectedErr:  coupon.ErrCustomerLimitReached,
		},
		{
			name:         "per-customer usage below limit",
			mutateCoupon: func(b *builder.CouponBuilder) { b.WithMaxUsesPerCustomer(2) },
			usage:        coupon.Usage{Total: 3, ByCustomer: 1},
			customerID:   &customerID,
		},
		{
			name: "coupon window checked before campaign state",
			mutateCoupon: func(b *builder.CouponBuilder) {
				b.Active = false
			},
			mutateCampaign: func(b *builder.CampaignBuilder) { b.Lifecycle = promotion.LifecycleDraft },
			expectedErr:    coupon.ErrInactive,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			campaignBuilder := builder.NewCampaignBuilder()
			if tc.mutateCampaign != nil {
				campaignBuilder.With(tc.mutateCampaign)
			}
			campaign := campaignBuilder.BuildDomain()

			couponBuilder := builder.NewCouponBuilder()
			couponBuilder.CampaignID = campaign.ID
			if tc.mutateCoupon != nil {
				couponBuilder.With(tc.mutateCoupon)
			}
			cp := couponBuilder.BuildDomain()

			err := coupon.CheckEligibility(cp, &campaign, tc.usage, tc.customerID, now)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	require.Equal(t, "WELCOME10", coupon.NormalizeCode("  welcome10 "))
	require.Equal(t, "SAVE-20", coupon.NormalizeCode("save-20"))
}
