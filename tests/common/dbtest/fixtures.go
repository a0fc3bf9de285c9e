//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"promo-engine/tests/common/builder"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx, so fixtures can seed
// either a live e2e database or a per-test transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CreateTestCampaign inserts the builder's campaign together with its target
// rows and returns the campaign id.
func CreateTestCampaign(t *testing.T, db DBLike, b *builder.CampaignBuilder) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	c := b.BuildDomain()
	_, err := db.Exec(ctx, `
		INSERT INTO promotion_campaigns (
			id, name, scope_type, application_level, benefit_type, benefit_value,
			buy_quantity, get_quantity, minimum_order_amount, maximum_discount_amount,
			stackable, exclusive, auto_apply, priority,
			budget_amount, burned_budget_amount,
			starts_at, ends_at, lifecycle_status, approval_status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$21)`,
		c.ID, c.Name, string(c.ScopeType), string(c.Level), string(c.BenefitType), c.BenefitValue,
		c.BuyQuantity, c.GetQuantity, c.MinimumOrderAmount, c.MaximumDiscountAmount,
		c.Stackable, c.Exclusive, c.AutoApply, c.Priority,
		c.BudgetAmount, c.BurnedBudgetAmount,
		c.StartsAt, c.EndsAt, string(c.Lifecycle), string(c.Approval), c.CreatedAt,
	)
	require.NoError(t, err)

	for _, target := range c.TargetIDs {
		_, err := db.Exec(ctx,
			"INSERT INTO promotion_campaign_targets (campaign_id, target_id) VALUES ($1, $2)",
			c.ID, target)
		require.NoError(t, err)
	}

	return c.ID
}

// CreateTestCoupon inserts the builder's coupon. The builder's CampaignID must
// reference an existing campaign.
func CreateTestCoupon(t *testing.T, db DBLike, b *builder.CouponBuilder) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	cp := b.BuildDomain()
	_, err := db.Exec(ctx, `
		INSERT INTO coupon_codes (
			id, campaign_id, code, active, starts_at, ends_at,
			max_uses, max_uses_per_customer, reservation_ttl_seconds, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		cp.ID, cp.CampaignID, cp.Code, cp.Active, cp.StartsAt, cp.EndsAt,
		cp.MaxUses, cp.MaxUsesPerCustomer, int32(cp.ReservationTTL/time.Second), cp.CreatedAt,
	)
	require.NoError(t, err)

	return cp.ID
}

func BumpCatalogVersion(t *testing.T, db DBLike) {
	t.Helper()
	_, err := db.Exec(context.Background(),
		"UPDATE catalog_version SET version = version + 1 WHERE id = 1")
	require.NoError(t, err)
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds the catalog version row
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	_, err := pool.Exec(ctx,
		"INSERT INTO catalog_version (id, version) VALUES (1, 1) ON CONFLICT (id) DO NOTHING")
	return err
}
