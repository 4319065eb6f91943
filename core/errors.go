package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrUnauthorized caller lacks the required role or ownership
	ErrUnauthorized ErrorCode = 100001
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100002

	// ErrPositionNotFound no position for the given item
	ErrPositionNotFound ErrorCode = 100100
	// ErrAuctionNotFound no auction for the given item
	ErrAuctionNotFound ErrorCode = 100101
	// ErrItemNotFound no collateral item with the given id
	ErrItemNotFound ErrorCode = 100102
	// ErrPriceNotAvailable oracle price not set
	ErrPriceNotAvailable ErrorCode = 100103

	// ErrAlreadyDeposited an active position already exists for the item
	ErrAlreadyDeposited ErrorCode = 100200
	// ErrNotOwner caller does not own the item
	ErrNotOwner ErrorCode = 100201
	// ErrOutstandingDebt collateral locked while debt remains
	ErrOutstandingDebt ErrorCode = 100202
	// ErrPositionHealthy position is healthy, not liquidatable
	ErrPositionHealthy ErrorCode = 100203
	// ErrAuctionAlreadyActive an auction is already running for the item
	ErrAuctionAlreadyActive ErrorCode = 100204
	// ErrAuctionStillLive auction deadline not reached yet
	ErrAuctionStillLive ErrorCode = 100205
	// ErrAuctionEnded auction no longer accepts bids
	ErrAuctionEnded ErrorCode = 100206
	// ErrItemExists a collateral item with the same id is already minted
	ErrItemExists ErrorCode = 100207

	// ErrExceedsBorrowingLimit debt would exceed price * LTV
	ErrExceedsBorrowingLimit ErrorCode = 100300
	// ErrBidTooLow bid below the auction floor
	ErrBidTooLow ErrorCode = 100301
	// ErrRepayExceedsDebt repay amount exceeds outstanding debt
	ErrRepayExceedsDebt ErrorCode = 100302

	// ErrInsufficientBalance stable ledger balance too low
	ErrInsufficientBalance ErrorCode = 100400
	// ErrInsufficientAllowance stable ledger allowance too low
	ErrInsufficientAllowance ErrorCode = 100401
	// ErrInsufficientDeposit withdraw exceeds the depositor principal
	ErrInsufficientDeposit ErrorCode = 100402
	// ErrInsufficientPoolLiquidity pool custody cannot cover the transfer
	ErrInsufficientPoolLiquidity ErrorCode = 100403
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	switch e {
	case ErrUnauthorized:
		return "unauthorized"
	case ErrInvalidAmount:
		return "invalid amount"
	case ErrPositionNotFound:
		return "position not found"
	case ErrAuctionNotFound:
		return "auction not found"
	case ErrItemNotFound:
		return "collateral item not found"
	case ErrPriceNotAvailable:
		return "price not available"
	case ErrAlreadyDeposited:
		return "collateral already deposited"
	case ErrNotOwner:
		return "not the owner"
	case ErrOutstandingDebt:
		return "outstanding debt"
	case ErrPositionHealthy:
		return "position is healthy"
	case ErrAuctionAlreadyActive:
		return "auction already active"
	case ErrAuctionStillLive:
		return "auction still live"
	case ErrAuctionEnded:
		return "auction ended"
	case ErrItemExists:
		return "collateral item exists"
	case ErrExceedsBorrowingLimit:
		return "exceeds borrowing limit"
	case ErrBidTooLow:
		return "bid too low"
	case ErrRepayExceedsDebt:
		return "repay exceeds debt"
	case ErrInsufficientBalance:
		return "insufficient balance"
	case ErrInsufficientAllowance:
		return "insufficient allowance"
	case ErrInsufficientDeposit:
		return "insufficient deposit"
	case ErrInsufficientPoolLiquidity:
		return "insufficient pool liquidity"
	default:
		return "unknown error " + e.String()
	}
}
