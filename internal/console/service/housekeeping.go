package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/opsdeck/console/internal/console/store"
)

// HousekeepingService periodically removes expired sessions and spent or
// expired action tokens.
type HousekeepingService struct {
	store    store.Store
	logger   *slog.Logger
	interval time.Duration

	stop chan struct{}
	done chan struct{}
}

func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		store:    st,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background loop. One cleanup pass runs immediately.
func (s *HousekeepingService) Start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.run()
		for {
			select {
			case <-ticker.C:
				s.run()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the loop and waits for it to exit.
func (s *HousekeepingService) Stop() {
	close(s.stop)
	<-s.done
}

func (s *HousekeepingService) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.store.Sessions().DeleteExpiredSessions(ctx); err != nil {
		s.logger.Warn("housekeeping: failed to delete expired sessions", "err", err)
	}
	if err := s.store.ActionTokens().DeleteExpiredActionTokens(ctx); err != nil {
		s.logger.Warn("housekeeping: failed to delete expired action tokens", "err", err)
	}
}
