package promotion

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidScopeType        = errors.New("invalid scope type")
	ErrInvalidApplicationLevel = errors.New("invalid application level")
	ErrInvalidBenefitType      = errors.New("invalid benefit type")
	ErrNegativeBenefitValue    = errors.New("benefit value cannot be negative")
	ErrInvalidPercentage       = errors.New("percentage must be between 0 and 100")
	ErrNegativeBudget          = errors.New("budget cannot be negative")
	ErrBurnedExceedsBudget     = errors.New("burned budget exceeds budget amount")
	ErrInvalidWindow           = errors.New("startsAt must be before endsAt")
	ErrMissingBuyGetQuantities = errors.New("buy/get quantities required for BUY_X_GET_Y")
)

// Campaign is a read-side snapshot of a promotion rule. The quote engine and
// reservation ledger only ever read campaign state; budget fields are mutated
// exclusively by the ledger through the campaign repository under a row lock.
type Campaign struct {
	ID   uuid.UUID
	Name string

	ScopeType ScopeType
	TargetIDs []string

	Level        ApplicationLevel
	BenefitType  BenefitType
	BenefitValue decimal.Decimal

	// Only set for BUY_X_GET_Y; enforced at authoring time (external).
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

	Lifecycle LifecycleStatus
	Approval  ApprovalStatus

	CreatedAt time.Time
}

func (c *Campaign) Validate() error {
	if !c.ScopeType.IsValid() {
		return ErrInvalidScopeType
	}
	if !c.Level.IsValid() {
		return ErrInvalidApplicationLevel
	}
	if !c.BenefitType.IsValid() {
		return ErrInvalidBenefitType
	}
	if c.BenefitValue.IsNegative() {
		return ErrNegativeBenefitValue
	}
	if c.usesPercentage() && c.BenefitValue.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidPercentage
	}
	if c.BenefitType == BenefitBuyXGetY {
		if c.BuyQuantity == nil || c.GetQuantity == nil || *c.BuyQuantity <= 0 || *c.GetQuantity <= 0 {
			return ErrMissingBuyGetQuantities
		}
	}
	if c.BudgetAmount != nil {
		if c.BudgetAmount.IsNegative() {
			return ErrNegativeBudget
		}
		if c.BurnedBudgetAmount.GreaterThan(*c.BudgetAmount) {
			return ErrBurnedExceedsBudget
		}
	}
	if c.BurnedBudgetAmount.IsNegative() {
		return ErrNegativeBudget
	}
	if c.StartsAt != nil && c.EndsAt != nil && !c.StartsAt.Before(*c.EndsAt) {
		return ErrInvalidWindow
	}
	return nil
}

func (c *Campaign) usesPercentage() bool {
	return c.BenefitType == BenefitPercentageOff || c.BenefitType == BenefitTieredSpend
}

func (c *Campaign) IsLifecycleActive() bool {
	return c.Lifecycle == LifecycleActive
}

func (c *Campaign) IsApprovalEligible() bool {
	return c.Approval == ApprovalNotRequired || c.Approval == ApprovalApproved
}

// WithinWindow reports whether now falls inside the activity window. Nil
// bounds are open-ended.
func (c *Campaign) WithinWindow(now time.Time) bool {
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return false
	}
	if c.EndsAt != nil && now.After(*c.EndsAt) {
		return false
	}
	return true
}

// Quotable combines the three candidacy gates of the quote path.
func (c *Campaign) Quotable(now time.Time) bool {
	return c.IsLifecycleActive() && c.IsApprovalEligible() && c.WithinWindow(now)
}

// RemainingBudget returns budget − burned − activeReserved, or nil when the
// campaign is unbudgeted.
func (c *Campaign) RemainingBudget(activeReserved decimal.Decimal) *decimal.Decimal {
	if c.BudgetAmount == nil {
		return nil
	}
	remaining := c.BudgetAmount.Sub(c.BurnedBudgetAmount).Sub(activeReserved)
	return &remaining
}

// MatchesTarget reports whether a line identified by vendor/product/categories
// falls under the campaign's targeting.
func (c *Campaign) MatchesTarget(vendorID, productID string, categoryIDs []string) bool {
	switch c.ScopeType {
	case ScopeOrder:
		return true
	case ScopeVendor:
		return c.containsTarget(vendorID)
	case ScopeProduct:
		return c.containsTarget(productID)
	case ScopeCategory:
		for _, id := range categoryIDs {
			if c.containsTarget(id) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (c *Campaign) containsTarget(id string) bool {
	for _, t := range c.TargetIDs {
		if t == id {
			return true
		}
	}
	return false
}
