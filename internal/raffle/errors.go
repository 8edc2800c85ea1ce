package raffle

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameters       = errors.New("raffle: invalid parameters")
	ErrUnknownRaffle           = errors.New("raffle: unknown raffle")
	ErrRaffleNotOpen           = errors.New("raffle: raffle not open")
	ErrRaffleNotExpired        = errors.New("raffle: raffle not yet expired")
	ErrCapacityExceeded        = errors.New("raffle: entry capacity exceeded")
	ErrCapacityFilled          = errors.New("raffle: capacity filled, raffle must resolve a winner")
	ErrInsufficientPayment     = errors.New("raffle: insufficient payment")
	ErrNoRefundAvailable       = errors.New("raffle: no refund available")
	ErrAssetTransferFailed     = errors.New("raffle: asset transfer failed")
	ErrUnexpectedNativePayment = errors.New("raffle: unexpected native payment")
	ErrUnauthorized            = errors.New("raffle: unauthorized")
	ErrReentrant               = errors.New("raffle: reentrant call rejected")
)

// InsufficientPaymentError reports the exact mismatch between the cost of an
// entry purchase and the native value that accompanied it.
type InsufficientPaymentError struct {
	Expected uint64
	Received uint64
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("raffle: insufficient payment: expected %d, received %d", e.Expected, e.Received)
}

func (e *InsufficientPaymentError) Unwrap() error {
	return ErrInsufficientPayment
}
