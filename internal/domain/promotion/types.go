package promotion

type ScopeType string

const (
	ScopeOrder    ScopeType = "ORDER"
	ScopeVendor   ScopeType = "VENDOR"
	ScopeProduct  ScopeType = "PRODUCT"
	ScopeCategory ScopeType = "CATEGORY"
)

func (s ScopeType) IsValid() bool {
	switch s {
	case ScopeOrder, ScopeVendor, ScopeProduct, ScopeCategory:
		return true
	default:
		return false
	}
}

type ApplicationLevel string

const (
	LevelLineItem ApplicationLevel = "LINE_ITEM"
	LevelCart     ApplicationLevel = "CART"
	LevelShipping ApplicationLevel = "SHIPPING"
)

func (l ApplicationLevel) IsValid() bool {
	switch l {
	case LevelLineItem, LevelCart, LevelShipping:
		return true
	default:
		return false
	}
}

type BenefitType string

const (
	BenefitPercentageOff  BenefitType = "PERCENTAGE_OFF"
	BenefitFixedAmountOff BenefitType = "FIXED_AMOUNT_OFF"
	BenefitFreeShipping   BenefitType = "FREE_SHIPPING"
	BenefitBuyXGetY       BenefitType = "BUY_X_GET_Y"
	BenefitTieredSpend    BenefitType = "TIERED_SPEND"
	BenefitBundleDiscount BenefitType = "BUNDLE_DISCOUNT"
)

func (b BenefitType) IsValid() bool {
	switch b {
	case BenefitPercentageOff, BenefitFixedAmountOff, BenefitFreeShipping,
		BenefitBuyXGetY, BenefitTieredSpend, BenefitBundleDiscount:
		return true
	default:
		return false
	}
}

type LifecycleStatus string

const (
	LifecycleDraft    LifecycleStatus = "DRAFT"
	LifecycleActive   LifecycleStatus = "ACTIVE"
	LifecyclePaused   LifecycleStatus = "PAUSED"
	LifecycleArchived LifecycleStatus = "ARCHIVED"
)

type ApprovalStatus string

const (
	ApprovalNotRequired ApprovalStatus = "NOT_REQUIRED"
	ApprovalPending     ApprovalStatus = "PENDING"
	ApprovalApproved    ApprovalStatus = "APPROVED"
	ApprovalRejected    ApprovalStatus = "REJECTED"
)
