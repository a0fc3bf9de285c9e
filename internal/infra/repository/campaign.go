package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"promo-engine/internal/domain/promotion"
	"promo-engine/internal/infra"
	"promo-engine/internal/infra/db"
)

type CampaignRepository struct {
	db db.DBTX
}

func NewCampaignRepository(dbtx db.DBTX) *CampaignRepository {
	return &CampaignRepository{db: dbtx}
}

const campaignColumns = `
	c.id, c.name, c.scope_type, c.application_level, c.benefit_type, c.benefit_value,
	c.buy_quantity, c.get_quantity, c.minimum_order_amount, c.maximum_discount_amount,
	c.stackable, c.exclusive, c.auto_apply, c.priority,
	c.budget_amount, c.burned_budget_amount,
	c.starts_at, c.ends_at, c.lifecycle_status, c.approval_status, c.created_at,
	COALESCE(array_agg(t.target_id) FILTER (WHERE t.target_id IS NOT NULL), '{}') AS target_ids`

func (r *CampaignRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*promotion.Campaign, error) {
	// Lock first, then aggregate targets; FOR UPDATE cannot sit on a grouped
	// query.
	const query = `
		WITH locked AS (
			SELECT * FROM promotion_campaigns WHERE id = $1 FOR UPDATE
		)
		SELECT ` + campaignColumns + `
		FROM locked c
		LEFT JOIN promotion_campaign_targets t ON t.campaign_id = c.id
		GROUP BY c.id, c.name, c.scope_type, c.application_level, c.benefit_type, c.benefit_value,
			c.buy_quantity, c.get_quantity, c.minimum_order_amount, c.maximum_discount_amount,
			c.stackable, c.exclusive, c.auto_apply, c.priority,
			c.budget_amount, c.burned_budget_amount,
			c.starts_at, c.ends_at, c.lifecycle_status, c.approval_status, c.created_at`

	c, err := ScanCampaign(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("campaign not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find campaign for update", err)
	}
	return c, nil
}

func (r *CampaignRepository) AddBurnedBudget(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	const query = `
		UPDATE promotion_campaigns
		SET burned_budget_amount = GREATEST(burned_budget_amount + $2, 0),
		    updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, delta)
	if err != nil {
		return infra.WrapRepoErr("failed to adjust burned budget", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("campaign not found", nil, infra.KindNotFound)
	}
	return nil
}

// ScanCampaign maps one joined campaign row. Shared with the read store,
// which issues the same column list.
func ScanCampaign(row pgx.Row) (*promotion.Campaign, error) {
	var (
		c          promotion.Campaign
		scopeType  string
		level      string
		benefit    string
		lifecycle  string
		approval   string
		startsAt   *time.Time
		endsAt     *time.Time
	)
	err := row.Scan(
		&c.ID, &c.Name, &scopeType, &level, &benefit, &c.BenefitValue,
		&c.BuyQuantity, &c.GetQuantity, &c.MinimumOrderAmount, &c.MaximumDiscountAmount,
		&c.Stackable, &c.Exclusive, &c.AutoApply, &c.Priority,
		&c.BudgetAmount, &c.BurnedBudgetAmount,
		&startsAt, &endsAt, &lifecycle, &approval, &c.CreatedAt,
		&c.TargetIDs,
	)
	if err != nil {
		return nil, err
	}
	c.ScopeType = promotion.ScopeType(scopeType)
	c.Level = promotion.ApplicationLevel(level)
	c.BenefitType = promotion.BenefitType(benefit)
	c.Lifecycle = promotion.LifecycleStatus(lifecycle)
	c.Approval = promotion.ApprovalStatus(approval)
	c.StartsAt = startsAt
	c.EndsAt = endsAt
	return &c, nil
}
