package daemon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kardianos/service"
	"go.uber.org/zap"
)

const (
	startTimeout = 30 * time.Second
	stopTimeout  = 60 * time.Second
)

// App is the part of *fx.App the program drives.
type App interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Program runs a fresh App every time the service manager starts it.
type Program struct {
	newApp func() App

	mu  sync.Mutex
	app App

	logger *zap.Logger
}

var _ service.Interface = (*Program)(nil)

func NewProgram(newApp func() App, logger *zap.Logger) *Program {
	return &Program{
		newApp: newApp,

		logger: logger,
	}
}

// Start implements service.Interface. It returns once the application's start
// hooks have run; the HTTP server and the scheduler keep running in the background.
func (p *Program) Start(_ service.Service) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.app != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	app := p.newApp()
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}
	p.app = app

	p.logger.Info("service started", zap.Bool("interactive", service.Interactive()))

	return nil
}

// Stop implements service.Interface.
func (p *Program) Stop(_ service.Service) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.app == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	err := p.app.Stop(ctx)
	p.app = nil
	if err != nil {
		return fmt.Errorf("failed to stop application: %w", err)
	}

	p.logger.Info("service stopped")

	return nil
}

// Running reports whether an application instance is live.
func (p *Program) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.app != nil
}
