package errs

import "errors"

// Error taxonomy shared by the quoting and reservation usecases. Handlers map
// these onto HTTP statuses; everything else is treated as an internal error.
var (
	// ErrNotFound: unknown campaign, coupon or reservation id.
	ErrNotFound = errors.New("not found")

	// ErrValidation: malformed request (negative amounts, missing customer
	// for a per-customer capped coupon, coupon/reservation mismatch).
	ErrValidation = errors.New("validation error")

	// ErrIneligible: the coupon failed an eligibility rule. Expected,
	// user-facing outcome; carries a reason string when wrapped.
	ErrIneligible = errors.New("coupon ineligible")

	// ErrBudgetExhausted: insufficient remaining campaign budget.
	ErrBudgetExhausted = errors.New("campaign budget exhausted")

	// ErrConflict: requestKey reuse with different customer/coupon, or a
	// commit/release against an incompatible terminal state.
	ErrConflict = errors.New("conflict")
)
