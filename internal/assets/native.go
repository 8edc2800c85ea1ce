package assets

import "sync"

// NativeBook tracks native-currency balances per account. Accounts may
// register a receipt hook that fires when funds are credited to them, which
// models recipients that run code on receiving a transfer.
type NativeBook struct {
	mu       sync.Mutex
	balances map[string]uint64
	hooks    map[string]func()
}

func NewNativeBook() *NativeBook {
	return &NativeBook{
		balances: make(map[string]uint64),
		hooks:    make(map[string]func()),
	}
}

func (b *NativeBook) Credit(account string, amount uint64) {
	b.mu.Lock()
	b.balances[account] += amount
	hook := b.hooks[account]
	b.mu.Unlock()

	if hook != nil {
		hook()
	}
}

func (b *NativeBook) Debit(account string, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.balances[account] < amount {
		return ErrInsufficientBalance
	}
	b.balances[account] -= amount
	return nil
}

func (b *NativeBook) Transfer(from string, to string, amount uint64) error {
	if err := b.Debit(from, amount); err != nil {
		return err
	}
	b.Credit(to, amount)
	return nil
}

func (b *NativeBook) BalanceOf(account string) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[account]
}

// SetReceiptHook installs fn to run whenever account is credited. Passing nil
// removes the hook.
func (b *NativeBook) SetReceiptHook(account string, fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if fn == nil {
		delete(b.hooks, account)
		return
	}
	b.hooks[account] = fn
}
