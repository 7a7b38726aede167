package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"gad-officerhub/internal/adapters/persistence/session"
)

// CronService runs the scheduled maintenance jobs: pruning idle sessions
// nightly so abandoned tabs do not pin cached profile documents forever.
type CronService struct {
	cron     *cron.Cron
	sessions *session.Store
	maxIdle  time.Duration
}

// NewCronService creates the scheduler. maxIdle is how long a session may go
// untouched before the nightly prune drops it.
func NewCronService(sessions *session.Store, maxIdle time.Duration) *CronService {
	return &CronService{
		cron:     cron.New(),
		sessions: sessions,
		maxIdle:  maxIdle,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *CronService) Start() error {
	// Nightly at 03:00 server time.
	if _, err := s.cron.AddFunc("0 3 * * *", s.pruneSessions); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("✅ Cron scheduler started")
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish.
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron scheduler stopped")
}

func (s *CronService) pruneSessions() {
	removed := s.sessions.PruneIdle(s.maxIdle)
	if removed > 0 {
		log.Printf("🧹 Pruned %d idle session(s)", removed)
	}
}
