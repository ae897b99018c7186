package retention

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"bugtrail/internal/domain"
	"bugtrail/internal/repository"
)

var (
	ErrAlreadyRunning = errors.New("cleanup scheduler already running")
	ErrNotRunning     = errors.New("cleanup scheduler not running")
)

// failureBackoff is how long the loop waits after a failed cycle before
// trying again, instead of waiting the full configured interval.
const failureBackoff = time.Hour

// stopTimeout bounds how long Stop waits for the loop goroutine to exit.
const stopTimeout = 5 * time.Second

type policyReader interface {
	RetentionPolicy(ctx context.Context) domain.RetentionPolicy
}

// Service owns the single background goroutine that prunes stored in-app
// notifications: rows older than the retention window, and rows beyond the
// per-user cap.
type Service interface {
	Start(intervalHours int) error
	Stop() error
	Running() bool
	CleanupExpired(ctx context.Context) (int64, error)
	CleanupExcess(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*domain.CleanupStats, error)
}

type service struct {
	notifRepo repository.NotificationRepository
	policy    policyReader
	log       zerolog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func NewService(notifRepo repository.NotificationRepository, policy policyReader, log zerolog.Logger) Service {
	return &service{
		notifRepo: notifRepo,
		policy:    policy,
		log:       log.With().Str("component", "retention").Logger(),
	}
}

func (s *service) Start(intervalHours int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}
	if intervalHours < 1 {
		intervalHours = 24
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	interval := time.Duration(intervalHours) * time.Hour
	go s.run(ctx, interval, s.done)

	s.log.Info().Dur("interval", interval).Msg("cleanup scheduler started")
	return nil
}

func (s *service) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	cancel := s.cancel
	done := s.done
	s.mu.Unlock()

	cancel()
	select {
	case <-done:
		s.log.Info().Msg("cleanup scheduler stopped")
	case <-time.After(stopTimeout):
		s.log.Warn().Msg("cleanup scheduler did not stop in time")
	}

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	return nil
}

func (s *service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *service) run(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		wait := interval
		if err := s.runCycle(ctx); err != nil {
			s.log.Error().Err(err).Msg("cleanup cycle failed, backing off")
			if failureBackoff < wait {
				wait = failureBackoff
			}
		}
		timer.Reset(wait)
	}
}

func (s *service) runCycle(ctx context.Context) error {
	if !s.policy.RetentionPolicy(ctx).AutoCleanup {
		s.log.Debug().Msg("auto cleanup disabled, skipping cycle")
		return nil
	}

	expired, err := s.CleanupExpired(ctx)
	if err != nil {
		return err
	}

	excess, err := s.CleanupExcess(ctx)
	if err != nil {
		return err
	}

	s.log.Info().Int64("expired", expired).Int64("excess", excess).Msg("cleanup cycle finished")
	return nil
}

// CleanupExpired removes notifications older than the retention window.
func (s *service) CleanupExpired(ctx context.Context) (int64, error) {
	days := s.policy.RetentionPolicy(ctx).Days
	cutoff := time.Now().AddDate(0, 0, -days)
	return s.notifRepo.DeleteOlderThan(ctx, cutoff)
}

// CleanupExcess trims every user's inbox to the newest max_per_user rows.
func (s *service) CleanupExcess(ctx context.Context) (int64, error) {
	keep := s.policy.RetentionPolicy(ctx).MaxPerUser
	return s.notifRepo.DeleteExcess(ctx, keep)
}

// Stats reports the current retention picture without deleting anything.
func (s *service) Stats(ctx context.Context) (*domain.CleanupStats, error) {
	policy := s.policy.RetentionPolicy(ctx)

	total, err := s.notifRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	perUser, err := s.notifRepo.CountByUser(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -policy.Days)
	expired, err := s.notifRepo.CountOlderThan(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	var excess int64
	for _, c := range perUser {
		if c.Count > int64(policy.MaxPerUser) {
			excess += c.Count - int64(policy.MaxPerUser)
		}
	}

	return &domain.CleanupStats{
		Total:         total,
		PerUser:       perUser,
		ExpiredCount:  expired,
		ExcessCount:   excess,
		RetentionDays: policy.Days,
		MaxPerUser:    policy.MaxPerUser,
	}, nil
}
