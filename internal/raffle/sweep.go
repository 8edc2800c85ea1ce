package raffle

import (
	"raffled/internal/logger"

	"go.uber.org/zap"
)

// Scan returns the lowest-id raffle that is open, past its expiry and not
// already awaiting a randomness delivery, or ok=false when none qualifies. A
// deliberately linear walk: it runs off the critical path and Process
// re-validates before acting.
func (s *Service) Scan() (raffleID uint64, ok bool, err error) {
	if err := s.lock(); err != nil {
		return 0, false, err
	}
	defer s.mu.Unlock()

	now := s.now()
	for id := uint64(1); id < s.nextID; id++ {
		r := s.raffles[id]
		if r.Status != StatusOpen || now.Before(r.Expiry) {
			continue
		}
		if _, awaiting := s.inflight[id]; awaiting {
			continue
		}
		return id, true, nil
	}
	return 0, false, nil
}

// Process advances one expired raffle: with no entries it auto-cancels and
// returns the prize to the host, otherwise it issues a randomness request
// and returns the request handle. Scan output is re-validated here, so a
// stale or replayed id fails cleanly. One raffle per round; callers loop
// Scan+Process until Scan reports none.
func (s *Service) Process(raffleID uint64) (requestID string, err error) {
	if err := s.lock(); err != nil {
		return "", err
	}
	defer s.mu.Unlock()

	r, err := s.resolvableLocked(raffleID)
	if err != nil {
		return "", err
	}

	// One outstanding request per raffle: a repeat round returns the same
	// handle instead of issuing a duplicate.
	if requestID, awaiting := s.inflight[raffleID]; awaiting {
		return requestID, nil
	}

	if len(s.entries[raffleID]) == 0 {
		logger.Info("expired raffle has no entries, auto-cancelling", zap.Uint64("raffle", raffleID))
		return "", s.cancelLocked(r)
	}

	return s.requestRandomnessLocked(r)
}
