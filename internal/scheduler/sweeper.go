// Package scheduler corre la degradación periódica de todas las mascotas, para que
// la entrada a Critical no dependa de que el dueño abra la app.
package scheduler

import (
	"context"
	"sync"
	"time"

	"virtual-pet/internal/domain/pets"

	"go.uber.org/zap"
)

// Refresher lo implementa *pets.Service.
type Refresher interface {
	RefreshAll(ctx context.Context) (pets.SweepReport, error)
}

// Ticker permite reemplazar time.Ticker en tests.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

func NewTicker(d time.Duration) Ticker { return realTicker{t: time.NewTicker(d)} }

type Sweeper struct {
	refresher Refresher
	interval  time.Duration
	newTicker func(time.Duration) Ticker
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

type Option func(*Sweeper)

func WithTicker(f func(time.Duration) Ticker) Option {
	return func(s *Sweeper) { s.newTicker = f }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Sweeper) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewSweeper(r Refresher, interval time.Duration, opts ...Option) *Sweeper {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Sweeper{
		refresher: r,
		interval:  interval,
		newTicker: NewTicker,
		logger:    zap.NewNop(),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("sweeper")
	return s
}

// Start bloquea hasta Stop. La primera pasada ocurre al primer tick, no al arrancar.
func (s *Sweeper) Start() error {
	defer close(s.done)

	t := s.newTicker(s.interval)
	defer t.Stop()

	s.logger.Info("sweeper started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-s.ctx.Done():
			return nil
		case <-t.C():
			s.RunOnce(s.ctx)
		}
	}
}

// Stop cancela la pasada en curso y espera a que Start termine. Es idempotente.
func (s *Sweeper) Stop() {
	s.once.Do(s.cancel)
	<-s.done
}

func (s *Sweeper) RunOnce(ctx context.Context) pets.SweepReport {
	started := time.Now()
	rep, err := s.refresher.RefreshAll(ctx)
	if err != nil {
		s.logger.Warn("sweep interrupted", zap.Error(err), zap.Int("scanned", rep.Scanned))
		return rep
	}
	s.logger.Info("sweep finished",
		zap.Int("scanned", rep.Scanned),
		zap.Int("updated", rep.Updated),
		zap.Int("failed", rep.Failed),
		zap.Int("entered_critical", rep.EnteredCritical),
		zap.Duration("elapsed", time.Since(started)),
	)
	return rep
}
