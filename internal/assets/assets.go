package assets

import "errors"

// Asset identifies a fungible asset. The Native sentinel denotes the
// platform's native currency, everything else is resolved against the
// adapter's registered tokens.
type Asset string

const Native Asset = "native"

var (
	ErrUnknownAsset        = errors.New("assets: unknown asset")
	ErrInsufficientBalance = errors.New("assets: insufficient balance")
)

// Token is the transfer primitive of a fungible token. Implementations are
// not trusted to conform: some deduct a fee in transit, some report success
// without moving anything. The adapter only propagates what the token says.
type Token interface {
	Transfer(from string, to string, amount uint64) error
	BalanceOf(account string) uint64
}
