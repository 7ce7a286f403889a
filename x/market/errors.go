package market

import (
	"github.com/iov-one/weave-market/errors"
)

var (
	ErrMarketplacePaused    = errors.Register(300, "marketplace paused")
	ErrInvalidPrice         = errors.Register(301, "invalid price")
	ErrInvalidDuration      = errors.Register(302, "invalid duration")
	ErrInvalidFeePercentage = errors.Register(303, "invalid fee percentage")
	ErrListingNotActive     = errors.Register(304, "listing not active")
	ErrInvalidSeller        = errors.Register(305, "invalid seller")
	ErrInvalidOwner         = errors.Register(306, "invalid owner")
	ErrCannotBuyOwnNFT      = errors.Register(307, "cannot buy own asset")
	ErrInsufficientBalance  = errors.Register(308, "insufficient balance")
	ErrInvalidEscrowAccount = errors.Register(309, "invalid escrow account")
	ErrListingExpired       = errors.Register(310, "listing expired")
)
