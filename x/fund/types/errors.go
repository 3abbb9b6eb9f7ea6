package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrFundNotFound       = errors.Register(ModuleName, 1, "fund not found")
	ErrFundExists         = errors.Register(ModuleName, 2, "fund already exists")
	ErrInvalidFundConfig  = errors.Register(ModuleName, 3, "invalid fund configuration")
	ErrInvalidFeeRate     = errors.Register(ModuleName, 4, "invalid fee rate")
	ErrZeroDeposit        = errors.Register(ModuleName, 5, "deposit amount must be greater than zero")
	ErrInsufficientShares = errors.Register(ModuleName, 6, "insufficient shares")
	ErrInvalidPercentage  = errors.Register(ModuleName, 7, "withdrawal percentage out of range")
	ErrAssetNotPermitted  = errors.Register(ModuleName, 8, "destination asset not permitted")
	ErrMinimumReturnNotMet = errors.Register(ModuleName, 9, "realized return below minimum")
	ErrExternalQuoteFailed = errors.Register(ModuleName, 10, "external quote failed")
	ErrReentrancyDetected  = errors.Register(ModuleName, 11, "reentrant call detected")
	ErrPortalNotPermitted  = errors.Register(ModuleName, 12, "portal address not permitted")
	ErrNotAuthorized       = errors.Register(ModuleName, 13, "caller is not authorized")
	ErrInvestorNotAllowed  = errors.Register(ModuleName, 14, "investor not on fund whitelist")
	ErrFundTypeUnsupported = errors.Register(ModuleName, 15, "operation not supported by fund type")
	ErrExternalCallFailed  = errors.Register(ModuleName, 16, "external portal call failed")

	ErrInsufficientBalance = errors.Register(ModuleName, 18, "insufficient fund balance")

	// ErrNothingToWithdraw marks the no-op case of a manager fee withdrawal
	// with zero remaining cut. Callers treat it as success.
	ErrNothingToWithdraw = errors.Register(ModuleName, 17, "no remaining manager cut to withdraw")
)
