package storage

import "time"

// One table per emitted record kind. RaffleID is indexed everywhere: external
// indexers read per-raffle histories.

type RaffleCreatedRecord struct {
	ID           int64  `gorm:"primaryKey"`
	RaffleID     uint64 `gorm:"uniqueIndex"`
	Host         string `gorm:"not null"`
	PrizeAsset   string `gorm:"not null"`
	PrizeQty     uint64 `gorm:"not null"`
	PaymentAsset string `gorm:"not null"`
	Expiry       time.Time
	CreatedAt    time.Time
}

type EntryPurchasedRecord struct {
	ID        int64  `gorm:"primaryKey"`
	RaffleID  uint64 `gorm:"index"`
	Buyer     string `gorm:"not null"`
	Count     uint64 `gorm:"not null"`
	CreatedAt time.Time
}

type RaffleCancelledRecord struct {
	ID        int64  `gorm:"primaryKey"`
	RaffleID  uint64 `gorm:"uniqueIndex"`
	CreatedAt time.Time
}

type WinnerPickedRecord struct {
	ID        int64  `gorm:"primaryKey"`
	RaffleID  uint64 `gorm:"uniqueIndex"`
	Winner    string `gorm:"not null"`
	CreatedAt time.Time
}

type RefundClaimedRecord struct {
	ID        int64  `gorm:"primaryKey"`
	RaffleID  uint64 `gorm:"index"`
	Claimer   string `gorm:"not null"`
	Amount    uint64 `gorm:"not null"`
	CreatedAt time.Time
}

type RandomnessRequestedRecord struct {
	ID        int64  `gorm:"primaryKey"`
	RaffleID  uint64 `gorm:"index"`
	RequestID string `gorm:"uniqueIndex"`
	CreatedAt time.Time
}
