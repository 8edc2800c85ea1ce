package raffle

import (
	"github.com/google/uuid"

	"raffled/internal/logger"

	"go.uber.org/zap"
)

// requestRandomnessLocked issues one randomness request for the raffle and
// records the correlation from the opaque request handle back to the raffle
// id. One random value per request, always.
func (s *Service) requestRandomnessLocked(r *Raffle) (string, error) {
	requestID := uuid.NewString()
	s.requests[requestID] = r.ID
	s.inflight[r.ID] = requestID

	s.recorder.RandomnessRequested(r.ID, requestID)
	logger.Info("randomness requested", zap.Uint64("raffle", r.ID), zap.String("request", requestID))
	return requestID, nil
}

// DeliverRandomness is the oracle callback. Only the configured oracle
// identity may call it. The correlation entry is deleted on first
// consumption: a duplicate or stale delivery finds no entry and is a silent
// no-op, as is a delivery for a raffle that is no longer open.
func (s *Service) DeliverRandomness(caller string, requestID string, values []uint64) error {
	if caller != s.oracle {
		return ErrUnauthorized
	}

	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	raffleID, ok := s.requests[requestID]
	if !ok {
		logger.Debug("randomness delivery ignored: unknown or consumed request", zap.String("request", requestID))
		return nil
	}

	// A malformed delivery must not consume the correlation, the oracle may
	// still retry with a well-formed one.
	if len(values) == 0 {
		return ErrInvalidParameters
	}

	delete(s.requests, requestID)
	if s.inflight[raffleID] == requestID {
		delete(s.inflight, raffleID)
	}

	r, ok := s.raffles[raffleID]
	if !ok || r.Status != StatusOpen {
		logger.Debug("randomness delivery ignored: raffle no longer open", zap.Uint64("raffle", raffleID))
		return nil
	}

	length := uint64(len(s.entries[raffleID]))
	if length == 0 {
		return nil
	}

	return s.finalizeLocked(r, values[0]%length)
}

// PendingRequests reports how many randomness requests await delivery.
func (s *Service) PendingRequests() (int, error) {
	if err := s.lock(); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()
	return len(s.requests), nil
}
