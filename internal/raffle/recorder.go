package raffle

import (
	"time"

	"raffled/internal/assets"
)

// Recorder receives the records the ledger emits at each lifecycle step.
// Implementations persist them for external indexers; emission must not fail
// the emitting operation.
type Recorder interface {
	RaffleCreated(raffleID uint64, host string, prizeAsset assets.Asset, prizeQty uint64, paymentAsset assets.Asset, expiry time.Time)
	EntryPurchased(raffleID uint64, buyer string, count uint64)
	RaffleCancelled(raffleID uint64)
	WinnerPicked(raffleID uint64, winner string)
	RefundClaimed(raffleID uint64, claimer string, amount uint64)
	RandomnessRequested(raffleID uint64, requestID string)
}

type NopRecorder struct{}

func (NopRecorder) RaffleCreated(uint64, string, assets.Asset, uint64, assets.Asset, time.Time) {}
func (NopRecorder) EntryPurchased(uint64, string, uint64)                                      {}
func (NopRecorder) RaffleCancelled(uint64)                                                     {}
func (NopRecorder) WinnerPicked(uint64, string)                                                {}
func (NopRecorder) RefundClaimed(uint64, string, uint64)                                       {}
func (NopRecorder) RandomnessRequested(uint64, string)                                         {}
