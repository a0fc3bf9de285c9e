//go:build unit || e2e

package builder

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"promo-engine/internal/domain/promotion"
)

// CampaignBuilder defaults to an auto-apply, stackable 10% off cart campaign
// with no budget and an open activity window.
type CampaignBuilder struct {
	ID   uuid.UUID
	Name string

	ScopeType promotion.ScopeType
	TargetIDs []string

	Level        promotion.ApplicationLevel
	BenefitType  promotion.BenefitType
	BenefitValue decimal.Decimal

	BuyQuantity *int32
	GetQuantity *int32

	MinimumOrderAmount    *decimal.Decimal
	MaximumDiscountAmount *decimal.Decimal

	Stackable bool
	Exclusive bool
	AutoApply bool
	Priority  int32

	BudgetAmount       *decimal.Decimal
	BurnedBudgetAmount decimal.Decimal

	StartsAt *time.Time
	EndsAt   *time.Time

	Lifecycle promotion.LifecycleStatus
	Approval  promotion.ApprovalStatus

	CreatedAt time.Time
}

func NewCampaignBuilder() *CampaignBuilder {
	return &CampaignBuilder{
		ID:                 uuid.New(),
		Name:               "Test Campaign",
		ScopeType:          promotion.ScopeOrder,
		Level:              promotion.LevelCart,
		BenefitType:        promotion.BenefitPercentageOff,
		BenefitValue:       decimal.NewFromInt(10),
		Stackable:          true,
		AutoApply:          true,
		Priority:           100,
		BurnedBudgetAmount: decimal.Zero,
		Lifecycle:          promotion.LifecycleActive,
		Approval:           promotion.ApprovalNotRequired,
		CreatedAt:          time.Now().Add(-24 * time.Hour),
	}
}

func (b *CampaignBuilder) With(mutate func(*CampaignBuilder)) *CampaignBuilder {
	mutate(b)
	return b
}

func (b *CampaignBuilder) WithBudget(budget string) *CampaignBuilder {
	d := decimal.RequireFromString(budget)
	b.BudgetAmount = &d
	return b
}

func (b *CampaignBuilder) WithMaxDiscount(max string) *CampaignBuilder {
	d := decimal.RequireFromString(max)
	b.MaximumDiscountAmount = &d
	return b
}

func (b *CampaignBuilder) WithMinimumOrder(min string) *CampaignBuilder {
	d := decimal.RequireFromString(min)
	b.MinimumOrderAmount = &d
	return b
}

func (b *CampaignBuilder) WithWindow(startsAt, endsAt time.Time) *CampaignBuilder {
	b.StartsAt = &startsAt
	b.EndsAt = &endsAt
	return b
}

func (b *CampaignBuilder) WithBuyGet(buy, get int32) *CampaignBuilder {
	b.BuyQuantity = &buy
	b.GetQuantity = &get
	return b
}

func (b *CampaignBuilder) BuildDomain() promotion.Campaign {
	return promotion.Campaign{
		ID:                    b.ID,
		Name:                  b.Name,
		ScopeType:             b.ScopeType,
		TargetIDs:             b.TargetIDs,
		Level:                 b.Level,
		BenefitType:           b.BenefitType,
		BenefitValue:          b.BenefitValue,
		BuyQuantity:           b.BuyQuantity,
		GetQuantity:           b.GetQuantity,
		MinimumOrderAmount:    b.MinimumOrderAmount,
		MaximumDiscountAmount: b.MaximumDiscountAmount,
		Stackable:             b.Stackable,
		Exclusive:             b.Exclusive,
		AutoApply:             b.AutoApply,
		Priority:              b.Priority,
		BudgetAmount:          b.BudgetAmount,
		BurnedBudgetAmount:    b.BurnedBudgetAmount,
		StartsAt:              b.StartsAt,
		EndsAt:                b.EndsAt,
		Lifecycle:             b.Lifecycle,
		Approval:              b.Approval,
		CreatedAt:             b.CreatedAt,
	}
}
