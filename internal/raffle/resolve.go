package raffle

import (
	"fmt"

	"raffled/internal/logger"

	"go.uber.org/zap"
)

// finalizeLocked completes the raffle with the entrant at index as winner.
// The terminal status is written before the payout transfer is attempted, so
// a reentrant call from the winner's receipt hook already sees the raffle
// resolved. A failed payout rolls the status back and surfaces the failure;
// this is the documented hard-failure path for prizes escrowed in
// fee-deducting assets.
func (s *Service) finalizeLocked(r *Raffle, index uint64) error {
	winner := s.entries[r.ID][index]
	r.Status = StatusCompleted

	if err := s.adapter.Push(winner, r.PrizeAsset, r.PrizeQty); err != nil {
		r.Status = StatusOpen
		return fmt.Errorf("%w: prize payout: %w", ErrAssetTransferFailed, err)
	}
	delete(s.inflight, r.ID)

	s.recorder.WinnerPicked(r.ID, winner)
	logger.Info("winner picked",
		zap.Uint64("raffle", r.ID), zap.String("winner", winner), zap.Uint64("index", index))
	return nil
}

// ResolveByIndex finalizes an expired raffle with an explicit winner index.
// Permissionless: this is the escape hatch that keeps resolution reachable
// when the oracle never answers.
func (s *Service) ResolveByIndex(raffleID uint64, index uint64) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	r, err := s.resolvableLocked(raffleID)
	if err != nil {
		return err
	}
	if index >= uint64(len(s.entries[raffleID])) {
		return ErrInvalidParameters
	}

	return s.finalizeLocked(r, index)
}

// ResolveByRandomValue finalizes an expired raffle using a caller-supplied
// random value, reduced modulo the entry sequence length.
func (s *Service) ResolveByRandomValue(raffleID uint64, value uint64) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	r, err := s.resolvableLocked(raffleID)
	if err != nil {
		return err
	}
	length := uint64(len(s.entries[raffleID]))
	if length == 0 {
		return ErrInvalidParameters
	}

	return s.finalizeLocked(r, value%length)
}

func (s *Service) resolvableLocked(raffleID uint64) (*Raffle, error) {
	r, ok := s.raffles[raffleID]
	if !ok {
		return nil, ErrUnknownRaffle
	}
	if r.Status != StatusOpen {
		return nil, ErrRaffleNotOpen
	}
	if s.now().Before(r.Expiry) {
		return nil, ErrRaffleNotExpired
	}
	return r, nil
}
