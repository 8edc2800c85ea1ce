package assets

import "sync"

// StandardToken is a conforming token: transfers move the exact amount and
// fail loudly on insufficient balance.
type StandardToken struct {
	mu       sync.Mutex
	balances map[string]uint64
}

func NewStandardToken() *StandardToken {
	return &StandardToken{balances: make(map[string]uint64)}
}

func (t *StandardToken) Mint(account string, amount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[account] += amount
}

func (t *StandardToken) Transfer(from string, to string, amount uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.balances[from] < amount {
		return ErrInsufficientBalance
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}

func (t *StandardToken) BalanceOf(account string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[account]
}

// FeeToken deducts a flat fee in transit: the sender is debited the full
// amount but the recipient receives amount-fee. Used to exercise the
// documented hard-failure path when such an asset is escrowed as a prize.
type FeeToken struct {
	mu       sync.Mutex
	fee      uint64
	balances map[string]uint64
}

func NewFeeToken(fee uint64) *FeeToken {
	return &FeeToken{fee: fee, balances: make(map[string]uint64)}
}

func (t *FeeToken) Mint(account string, amount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[account] += amount
}

func (t *FeeToken) Transfer(from string, to string, amount uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.balances[from] < amount {
		return ErrInsufficientBalance
	}
	t.balances[from] -= amount

	credited := uint64(0)
	if amount > t.fee {
		credited = amount - t.fee
	}
	t.balances[to] += credited
	return nil
}

func (t *FeeToken) BalanceOf(account string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[account]
}

// SilentToken reports success without moving anything when the sender's
// balance is short. Its transfer primitive gives no usable success
// indicator, matching the worst-behaved assets in the wild.
type SilentToken struct {
	mu       sync.Mutex
	balances map[string]uint64
}

func NewSilentToken() *SilentToken {
	return &SilentToken{balances: make(map[string]uint64)}
}

func (t *SilentToken) Mint(account string, amount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[account] += amount
}

func (t *SilentToken) Transfer(from string, to string, amount uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.balances[from] < amount {
		return nil
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}

func (t *SilentToken) BalanceOf(account string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[account]
}
