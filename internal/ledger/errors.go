package ledger

import (
	"errors"
)

var (
	ErrNotFound       = errors.New("asset not found")
	ErrInvalidPrice   = errors.New("price is below twice the listing fee")
	ErrInvalidFee     = errors.New("listing fee must be positive")
	ErrAlreadyListed  = errors.New("asset is already listed")
	ErrUnauthorized   = errors.New("caller is not the owner or approved delegate")
	ErrNotListed      = errors.New("asset is not listed for sale")
	ErrWrongAmount    = errors.New("payment does not match the listing price")
	ErrSelfPurchase   = errors.New("seller cannot purchase their own listing")
	ErrTransferFailed = errors.New("fund transfer failed")
)
