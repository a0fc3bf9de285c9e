package coupon

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"promo-engine/internal/domain/promotion"
)

var (
	ErrInactive              = errors.New("coupon is not active")
	ErrNotYetValid           = errors.New("coupon is not yet valid")
	ErrExpired               = errors.New("coupon has expired")
	ErrCampaignInactive      = errors.New("linked campaign is not active")
	ErrCampaignNotApproved   = errors.New("linked campaign is not approved")
	ErrCampaignOutsideWindow = errors.New("linked campaign is outside its activity window")
	ErrUsageLimitReached     = errors.New("coupon usage limit reached")
	ErrCustomerLimitReached  = errors.New("per-customer usage limit reached")
	ErrCustomerRequired      = errors.New("customer id required for per-customer capped coupon")
)

// Usage carries reservation-derived usage counts for a coupon: reservations
// that are COMMITTED or RESERVED-and-not-expired. ByCustomer is only
// meaningful when a customer id was supplied to the counter.
type Usage struct {
	Total      int64
	ByCustomer int64
}

// CheckEligibility runs the ordered eligibility rules; the first failure
// wins. Existence of the coupon is the caller's lookup concern. Pure: data
// fetching (locking or not) stays with the caller.
func CheckEligibility(c *Coupon, campaign *promotion.Campaign, usage Usage, customerID *uuid.UUID, now time.Time) error {
	if !c.Active {
		return ErrInactive
	}
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return ErrNotYetValid
	}
	if c.EndsAt != nil && now.After(*c.EndsAt) {
		return ErrExpired
	}
	if !campaign.IsLifecycleActive() {
		return ErrCampaignInactive
	}
	if !campaign.IsApprovalEligible() {
		return ErrCampaignNotApproved
	}
	if !campaign.WithinWindow(now) {
		return ErrCampaignOutsideWindow
	}
	if c.MaxUses != nil && usage.Total >= int64(*c.MaxUses) {
		return ErrUsageLimitReached
	}
	if c.MaxUsesPerCustomer != nil {
		if customerID == nil {
			return ErrCustomerRequired
		}
		if usage.ByCustomer >= int64(*c.MaxUsesPerCustomer) {
			return ErrCustomerLimitReached
		}
	}
	return nil
}
