package coupon

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Coupon is a redeemable code bound 1:1 to a campaign. Read-only to this
// engine apart from usage-count queries.
type Coupon struct {
	ID         uuid.UUID
	CampaignID uuid.UUID

	// Code is stored normalized (upper case); lookups are case-insensitive.
	Code string

	Active   bool
	StartsAt *time.Time
	EndsAt   *time.Time

	MaxUses            *int32
	MaxUsesPerCustomer *int32

	ReservationTTL time.Duration

	CreatedAt time.Time
}

// NormalizeCode canonicalizes a user-supplied code for lookup and storage.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (c *Coupon) WithinWindow(now time.Time) bool {
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return false
	}
	if c.EndsAt != nil && now.After(*c.EndsAt) {
		return false
	}
	return true
}
