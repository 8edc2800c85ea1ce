package raffle

import (
	"time"

	"raffled/internal/assets"
)

type Status uint8

const (
	StatusOpen Status = iota
	StatusCancelled
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "OPEN"
	case StatusCancelled:
		return "CANCELLED"
	case StatusCompleted:
		return "COMPLETED"
	}
	return "UNKNOWN"
}

// MaxEntriesLimit bounds the entry cap so counters and index arithmetic stay
// inside the accounting range.
const MaxEntriesLimit = 1<<32 - 1

// Raffle is one escrow-and-draw cycle. Ids start at 1 and are never reused.
// Status only ever moves OPEN -> CANCELLED or OPEN -> COMPLETED; terminal
// raffles stay queryable.
type Raffle struct {
	ID            uint64
	Host          string
	PrizeAsset    assets.Asset
	PrizeQty      uint64
	PaymentAsset  assets.Asset
	PricePerEntry uint64
	MaxEntries    uint64
	Expiry        time.Time
	EntriesSold   uint64
	Status        Status
}
