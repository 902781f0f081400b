package session

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper periodically logs out sessions whose refresh token has expired.
type Sweeper struct {
	repo     Repository
	interval time.Duration
	now      func() time.Time
}

func NewSweeper(repo Repository, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{repo: repo, interval: interval, now: time.Now}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.SweepOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

func (s *Sweeper) SweepOnce(ctx context.Context) int64 {
	n, err := s.repo.SweepExpired(ctx, s.now())
	if err != nil {
		log.Error().Err(err).Msg("session sweep failed")
		return 0
	}
	if n > 0 {
		log.Info().Int64("sessions", n).Msg("expired sessions logged out")
	}
	return n
}
