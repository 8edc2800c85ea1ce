package storage

import (
	"time"

	"raffled/internal/assets"
	"raffled/internal/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SqliteStorage persists every record the ledger emits. It satisfies the
// ledger's Recorder interface; persistence failures are logged, never
// propagated, because record emission must not fail a lifecycle operation.
type SqliteStorage struct {
	db *gorm.DB
}

func NewSqliteStorage(path string) *SqliteStorage {

	logger.Debug("initializing database...", zap.String("path", path))
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	err = db.AutoMigrate(
		&RaffleCreatedRecord{},
		&EntryPurchasedRecord{},
		&RaffleCancelledRecord{},
		&WinnerPickedRecord{},
		&RefundClaimedRecord{},
		&RandomnessRequestedRecord{},
	)

	if err != nil {
		panic(err)
	}

	return &SqliteStorage{
		db: db,
	}
}

func (s *SqliteStorage) RaffleCreated(raffleID uint64, host string, prizeAsset assets.Asset, prizeQty uint64, paymentAsset assets.Asset, expiry time.Time) {
	record := &RaffleCreatedRecord{
		RaffleID:     raffleID,
		Host:         host,
		PrizeAsset:   string(prizeAsset),
		PrizeQty:     prizeQty,
		PaymentAsset: string(paymentAsset),
		Expiry:       expiry,
	}
	if err := s.db.Create(record).Error; err != nil {
		logger.Error("cannot persist raffle created record", zap.Uint64("raffle", raffleID), zap.Error(err))
	}
}

func (s *SqliteStorage) EntryPurchased(raffleID uint64, buyer string, count uint64) {
	record := &EntryPurchasedRecord{
		RaffleID: raffleID,
		Buyer:    buyer,
		Count:    count,
	}
	if err := s.db.Create(record).Error; err != nil {
		logger.Error("cannot persist entry purchased record", zap.Uint64("raffle", raffleID), zap.Error(err))
	}
}

func (s *SqliteStorage) RaffleCancelled(raffleID uint64) {
	if err := s.db.Create(&RaffleCancelledRecord{RaffleID: raffleID}).Error; err != nil {
		logger.Error("cannot persist raffle cancelled record", zap.Uint64("raffle", raffleID), zap.Error(err))
	}
}

func (s *SqliteStorage) WinnerPicked(raffleID uint64, winner string) {
	if err := s.db.Create(&WinnerPickedRecord{RaffleID: raffleID, Winner: winner}).Error; err != nil {
		logger.Error("cannot persist winner picked record", zap.Uint64("raffle", raffleID), zap.Error(err))
	}
}

func (s *SqliteStorage) RefundClaimed(raffleID uint64, claimer string, amount uint64) {
	record := &RefundClaimedRecord{
		RaffleID: raffleID,
		Claimer:  claimer,
		Amount:   amount,
	}
	if err := s.db.Create(record).Error; err != nil {
		logger.Error("cannot persist refund claimed record", zap.Uint64("raffle", raffleID), zap.Error(err))
	}
}

func (s *SqliteStorage) RandomnessRequested(raffleID uint64, requestID string) {
	record := &RandomnessRequestedRecord{
		RaffleID:  raffleID,
		RequestID: requestID,
	}
	if err := s.db.Create(record).Error; err != nil {
		logger.Error("cannot persist randomness requested record", zap.Uint64("raffle", raffleID), zap.Error(err))
	}
}

func (s *SqliteStorage) GetRaffleCreated(raffleID uint64) (*RaffleCreatedRecord, error) {

	var record RaffleCreatedRecord
	err := s.db.Where("raffle_id = ?", raffleID).First(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (s *SqliteStorage) GetEntryPurchases(raffleID uint64) ([]*EntryPurchasedRecord, error) {

	var records []*EntryPurchasedRecord
	err := s.db.Where("raffle_id = ?", raffleID).Order("id asc").Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (s *SqliteStorage) GetWinnerPicked(raffleID uint64) (*WinnerPickedRecord, error) {

	var record WinnerPickedRecord
	err := s.db.Where("raffle_id = ?", raffleID).First(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (s *SqliteStorage) GetRefundClaims(raffleID uint64) ([]*RefundClaimedRecord, error) {

	var records []*RefundClaimedRecord
	err := s.db.Where("raffle_id = ?", raffleID).Order("id asc").Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (s *SqliteStorage) GetRandomnessRequests(raffleID uint64) ([]*RandomnessRequestedRecord, error) {

	var records []*RandomnessRequestedRecord
	err := s.db.Where("raffle_id = ?", raffleID).Order("id asc").Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (s *SqliteStorage) IsCancelled(raffleID uint64) (bool, error) {

	var count int64
	err := s.db.Model(&RaffleCancelledRecord{}).Where("raffle_id = ?", raffleID).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
