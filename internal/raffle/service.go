package raffle

import (
	"fmt"
	"sync"
	"time"

	"raffled/internal/assets"
	"raffled/internal/logger"

	"go.uber.org/zap"
)

// Service is the raffle lifecycle ledger: the authoritative raffle registry,
// the per-raffle ordered entry sequence, the per-entrant position table and
// the randomness request correlation table, all behind one non-blocking
// guard. Every mutating entry point acquires the guard or fails with
// ErrReentrant; state is committed before the single outbound transfer of
// each operation, so a transfer hook that calls back in is rejected without
// ever observing a half-applied state.
type Service struct {
	mu       sync.Mutex
	now      func() time.Time
	adapter  *assets.Adapter
	recorder Recorder
	oracle   string

	nextID    uint64
	raffles   map[uint64]*Raffle
	entries   map[uint64][]string
	positions map[uint64]map[string]uint64
	requests  map[string]uint64
	inflight  map[uint64]string
}

// Option configures a Service at construction.
type Option func(*Service)

// WithClock overrides the time source, used by tests to advance past expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(adapter *assets.Adapter, recorder Recorder, oracleIdentity string, opts ...Option) *Service {
	s := &Service{
		now:       time.Now,
		adapter:   adapter,
		recorder:  recorder,
		oracle:    oracleIdentity,
		nextID:    1,
		raffles:   make(map[uint64]*Raffle),
		entries:   make(map[uint64][]string),
		positions: make(map[uint64]map[string]uint64),
		requests:  make(map[string]uint64),
		inflight:  make(map[uint64]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) lock() error {
	if !s.mu.TryLock() {
		return ErrReentrant
	}
	return nil
}

// Create escrows the prize and opens a new raffle. The prize is pulled from
// the host before the record is committed, so a failed pull leaves no trace
// and the returned id is only ever observable for a funded raffle.
func (s *Service) Create(host string, prizeAsset assets.Asset, prizeQty uint64, paymentAsset assets.Asset, pricePerEntry uint64, maxEntries uint64, duration time.Duration) (uint64, error) {
	if err := s.lock(); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()

	if host == "" || prizeAsset == "" || paymentAsset == "" {
		return 0, ErrInvalidParameters
	}
	if prizeQty == 0 || pricePerEntry == 0 || duration <= 0 {
		return 0, ErrInvalidParameters
	}
	if maxEntries == 0 || maxEntries > MaxEntriesLimit {
		return 0, ErrInvalidParameters
	}
	if pricePerEntry*maxEntries/maxEntries != pricePerEntry {
		return 0, ErrInvalidParameters
	}

	if err := s.adapter.Pull(host, prizeAsset, prizeQty); err != nil {
		return 0, fmt.Errorf("%w: escrow prize: %w", ErrAssetTransferFailed, err)
	}

	id := s.nextID
	s.nextID++
	r := &Raffle{
		ID:            id,
		Host:          host,
		PrizeAsset:    prizeAsset,
		PrizeQty:      prizeQty,
		PaymentAsset:  paymentAsset,
		PricePerEntry: pricePerEntry,
		MaxEntries:    maxEntries,
		Expiry:        s.now().Add(duration),
		Status:        StatusOpen,
	}
	s.raffles[id] = r
	s.entries[id] = make([]string, 0)
	s.positions[id] = make(map[string]uint64)

	s.recorder.RaffleCreated(id, host, prizeAsset, prizeQty, paymentAsset, r.Expiry)
	logger.Info("raffle created",
		zap.Uint64("raffle", id), zap.String("host", host),
		zap.String("prize asset", string(prizeAsset)), zap.Uint64("prize qty", prizeQty),
		zap.Time("expiry", r.Expiry))
	return id, nil
}

// Enter purchases count entries for caller. attachedNative is the native
// value accompanying the call: it must equal the exact cost on a
// native-denominated raffle and must be zero on a token-denominated one.
// State grows only after payment has succeeded.
func (s *Service) Enter(caller string, raffleID uint64, count uint64, attachedNative uint64) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	r, ok := s.raffles[raffleID]
	if !ok {
		return ErrUnknownRaffle
	}
	if caller == "" || count == 0 {
		return ErrInvalidParameters
	}
	if r.Status != StatusOpen || !s.now().Before(r.Expiry) {
		return ErrRaffleNotOpen
	}
	if count > r.MaxEntries-r.EntriesSold {
		return ErrCapacityExceeded
	}

	cost := r.PricePerEntry * count

	if r.PaymentAsset == assets.Native {
		if attachedNative != cost {
			return &InsufficientPaymentError{Expected: cost, Received: attachedNative}
		}
		if err := s.adapter.Pull(caller, assets.Native, cost); err != nil {
			return fmt.Errorf("%w: entry payment: %w", ErrAssetTransferFailed, err)
		}
	} else {
		if attachedNative != 0 {
			return ErrUnexpectedNativePayment
		}
		if err := s.adapter.Pull(caller, r.PaymentAsset, cost); err != nil {
			return fmt.Errorf("%w: entry payment: %w", ErrAssetTransferFailed, err)
		}
	}

	r.EntriesSold += count
	s.positions[raffleID][caller] += count
	for i := uint64(0); i < count; i++ {
		s.entries[raffleID] = append(s.entries[raffleID], caller)
	}

	s.recorder.EntryPurchased(raffleID, caller, count)
	logger.Debug("entries purchased",
		zap.Uint64("raffle", raffleID), zap.String("buyer", caller),
		zap.Uint64("count", count), zap.Uint64("sold", r.EntriesSold))
	return nil
}

// Cancel terminates an expired, not fully subscribed raffle and returns the
// prize to the host. Anyone may call: cancellation only ever unlocks refunds
// for entrants and the prize for the host.
func (s *Service) Cancel(raffleID uint64) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	r, ok := s.raffles[raffleID]
	if !ok {
		return ErrUnknownRaffle
	}
	if r.Status != StatusOpen {
		return ErrRaffleNotOpen
	}
	if s.now().Before(r.Expiry) {
		return ErrRaffleNotExpired
	}
	if r.EntriesSold >= r.MaxEntries {
		return ErrCapacityFilled
	}

	return s.cancelLocked(r)
}

// cancelLocked flips the raffle to CANCELLED and pushes the prize back to the
// host. The status write precedes the transfer; on transfer failure the
// write is rolled back so the operation stays atomic to its caller.
func (s *Service) cancelLocked(r *Raffle) error {
	r.Status = StatusCancelled

	if err := s.adapter.Push(r.Host, r.PrizeAsset, r.PrizeQty); err != nil {
		r.Status = StatusOpen
		return fmt.Errorf("%w: return prize: %w", ErrAssetTransferFailed, err)
	}
	delete(s.inflight, r.ID)

	s.recorder.RaffleCancelled(r.ID)
	logger.Info("raffle cancelled", zap.Uint64("raffle", r.ID), zap.Uint64("entries sold", r.EntriesSold))
	return nil
}

// ClaimRefund pays caller back count*pricePerEntry for a cancelled raffle.
// The position is zeroed before the transfer, so a reentrant second claim
// finds nothing to refund.
func (s *Service) ClaimRefund(caller string, raffleID uint64) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	r, ok := s.raffles[raffleID]
	if !ok {
		return ErrUnknownRaffle
	}
	if r.Status != StatusCancelled {
		return ErrNoRefundAvailable
	}

	count := s.positions[raffleID][caller]
	if count == 0 {
		return ErrNoRefundAvailable
	}

	refund := count * r.PricePerEntry
	s.positions[raffleID][caller] = 0

	if err := s.adapter.Push(caller, r.PaymentAsset, refund); err != nil {
		s.positions[raffleID][caller] = count
		return fmt.Errorf("%w: refund: %w", ErrAssetTransferFailed, err)
	}

	s.recorder.RefundClaimed(raffleID, caller, refund)
	logger.Info("refund claimed",
		zap.Uint64("raffle", raffleID), zap.String("claimer", caller), zap.Uint64("amount", refund))
	return nil
}

// Get returns a snapshot of the raffle record.
func (s *Service) Get(raffleID uint64) (Raffle, error) {
	if err := s.lock(); err != nil {
		return Raffle{}, err
	}
	defer s.mu.Unlock()

	r, ok := s.raffles[raffleID]
	if !ok {
		return Raffle{}, ErrUnknownRaffle
	}
	return *r, nil
}

// Entries returns a copy of the ordered entry sequence of the raffle.
func (s *Service) Entries(raffleID uint64) ([]string, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	seq, ok := s.entries[raffleID]
	if !ok {
		return nil, ErrUnknownRaffle
	}
	out := make([]string, len(seq))
	copy(out, seq)
	return out, nil
}

// Position returns how many entries the account holds in the raffle.
func (s *Service) Position(raffleID uint64, account string) (uint64, error) {
	if err := s.lock(); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()

	positions, ok := s.positions[raffleID]
	if !ok {
		return 0, ErrUnknownRaffle
	}
	return positions[account], nil
}
