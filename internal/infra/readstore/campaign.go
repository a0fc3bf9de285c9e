package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"promo-engine/internal/domain/promotion"
	"promo-engine/internal/infra"
	"promo-engine/internal/infra/db"
	"promo-engine/internal/infra/repository"
)

// CampaignReadStore serves the non-locking catalog reads of the quote path.
type CampaignReadStore struct {
	db db.DBTX
}

func NewCampaignReadStore(dbtx db.DBTX) *CampaignReadStore {
	return &CampaignReadStore{db: dbtx}
}

const campaignSelect = `
	SELECT
		c.id, c.name, c.scope_type, c.application_level, c.benefit_type, c.benefit_value,
		c.buy_quantity, c.get_quantity, c.minimum_order_amount, c.maximum_discount_amount,
		c.stackable, c.exclusive, c.auto_apply, c.priority,
		c.budget_amount, c.burned_budget_amount,
		c.starts_at, c.ends_at, c.lifecycle_status, c.approval_status, c.created_at,
		COALESCE(array_agg(t.target_id) FILTER (WHERE t.target_id IS NOT NULL), '{}') AS target_ids
	FROM promotion_campaigns c
	LEFT JOIN promotion_campaign_targets t ON t.campaign_id = c.id`

const campaignGroupBy = `
	GROUP BY c.id, c.name, c.scope_type, c.application_level, c.benefit_type, c.benefit_value,
		c.buy_quantity, c.get_quantity, c.minimum_order_amount, c.maximum_discount_amount,
		c.stackable, c.exclusive, c.auto_apply, c.priority,
		c.budget_amount, c.burned_budget_amount,
		c.starts_at, c.ends_at, c.lifecycle_status, c.approval_status, c.created_at`

// ActiveCampaigns returns the quotable catalog at now: ACTIVE lifecycle,
// approval satisfied, activity window open. Budget filtering stays with the
// reservation path; quoting never consults budgets.
func (s *CampaignReadStore) ActiveCampaigns(ctx context.Context, now time.Time) ([]promotion.Campaign, error) {
	query := campaignSelect + `
	WHERE c.lifecycle_status = 'ACTIVE'
	  AND c.approval_status IN ('NOT_REQUIRED', 'APPROVED')
	  AND (c.starts_at IS NULL OR c.starts_at <= $1)
	  AND (c.ends_at IS NULL OR c.ends_at >= $1)` + campaignGroupBy + `
	ORDER BY c.created_at, c.id`

	rows, err := s.db.Query(ctx, query, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active campaigns", err)
	}
	defer rows.Close()

	var campaigns []promotion.Campaign
	for rows.Next() {
		c, err := repository.ScanCampaign(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan campaign row", err)
		}
		campaigns = append(campaigns, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate campaigns", err)
	}
	return campaigns, nil
}

func (s *CampaignReadStore) FindByID(ctx context.Context, id uuid.UUID) (*promotion.Campaign, error) {
	query := campaignSelect + `
	WHERE c.id = $1` + campaignGroupBy

	c, err := repository.ScanCampaign(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("campaign not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find campaign", err)
	}
	return c, nil
}

// CatalogVersion reads the monotonic counter bumped by campaign writers. The
// catalog cache keys on it so stale entries die on the next write.
func (s *CampaignReadStore) CatalogVersion(ctx context.Context) (int64, error) {
	var version int64
	err := s.db.QueryRow(ctx, `SELECT version FROM catalog_version WHERE id = 1`).Scan(&version)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to read catalog version", err)
	}
	return version, nil
}
