package assets

import (
	"fmt"
	"sync"

	"raffled/internal/logger"

	"go.uber.org/zap"
)

// Adapter moves asset quantities in and out of the escrow account through a
// single pair of operations, dispatching on whether the asset is the native
// sentinel or a registered token. Callers must treat a failed Pull or Push as
// fatal to the enclosing operation.
type Adapter struct {
	mu     sync.Mutex
	escrow string
	native *NativeBook
	tokens map[Asset]Token
}

func NewAdapter(escrow string, native *NativeBook) *Adapter {
	return &Adapter{
		escrow: escrow,
		native: native,
		tokens: make(map[Asset]Token),
	}
}

func (a *Adapter) RegisterToken(id Asset, token Token) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tokens[id] = token
}

func (a *Adapter) Escrow() string {
	return a.escrow
}

func (a *Adapter) Native() *NativeBook {
	return a.native
}

// Pull moves amount of asset from the given account into escrow.
func (a *Adapter) Pull(from string, asset Asset, amount uint64) error {
	return a.transfer(from, a.escrow, asset, amount)
}

// Push moves amount of asset out of escrow to the given account.
func (a *Adapter) Push(to string, asset Asset, amount uint64) error {
	return a.transfer(a.escrow, to, asset, amount)
}

func (a *Adapter) transfer(from string, to string, asset Asset, amount uint64) error {
	if asset == Native {
		if err := a.native.Transfer(from, to, amount); err != nil {
			logger.Debug("adapter: native transfer failed",
				zap.String("from", from), zap.String("to", to), zap.Uint64("amount", amount), zap.Error(err))
			return err
		}
		return nil
	}

	a.mu.Lock()
	token, ok := a.tokens[asset]
	a.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}

	if err := token.Transfer(from, to, amount); err != nil {
		logger.Debug("adapter: token transfer failed",
			zap.String("asset", string(asset)), zap.String("from", from), zap.String("to", to),
			zap.Uint64("amount", amount), zap.Error(err))
		return err
	}
	return nil
}
