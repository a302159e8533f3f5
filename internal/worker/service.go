package worker

import (
	"context"
	"errors"
	"time"

	"github.com/fretehub/fretehub/internal/config"
	"github.com/fretehub/fretehub/internal/logger"
	"github.com/fretehub/fretehub/internal/queue"

	"github.com/hibiken/asynq"
)

const tokenSweepInterval = time.Hour

// Service runs the asynq consumer plus a periodic sweep of expired sessions
// and reset tokens.
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService creates the queue consumer service.
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name returns the service name.
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the consumer until Stop.
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	go s.runTokenSweepLoop(ctx)
	return s.server.Run(s.mux)
}

// Stop shuts the consumer down.
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

func (s *Service) runTokenSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.Container == nil {
		return
	}
	runOnce := func() {
		now := time.Now()
		if n, err := s.consumer.SessaoRepo.DeleteExpired(now); err != nil {
			logger.Warnw("worker_session_sweep_failed", "error", err)
		} else if n > 0 {
			logger.Infow("worker_session_sweep_done", "removed", n)
		}
		if n, err := s.consumer.ResetSenhaRepo.DeleteExpired(now); err != nil {
			logger.Warnw("worker_reset_token_sweep_failed", "error", err)
		} else if n > 0 {
			logger.Infow("worker_reset_token_sweep_done", "removed", n)
		}
	}
	runOnce()

	ticker := time.NewTicker(tokenSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
