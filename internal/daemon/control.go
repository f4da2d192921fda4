package daemon

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kardianos/service"
)

const actionStatus = "status"

// Actions lists the service manager operations besides status.
func Actions() []string {
	return slices.Clone(service.ControlAction[:])
}

// New binds prg to the platform service manager.
func New(prg service.Interface, config Config) (service.Service, error) {
	svc, err := service.New(prg, &service.Config{
		Name:        config.Name,
		DisplayName: config.DisplayName,
		Description: config.Description,
		Arguments:   config.Arguments,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrControl, err)
	}

	return svc, nil
}

// Control runs one of Actions against svc.
func Control(svc service.Service, action string) error {
	if !slices.Contains(service.ControlAction[:], action) {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	if err := service.Control(svc, action); err != nil {
		return fmt.Errorf("%w: %w", ErrControl, err)
	}

	return nil
}

// StatusReader is the part of service.Service that reports state.
type StatusReader interface {
	Status() (service.Status, error)
}

// Status is the daemon state as seen by the service manager.
type Status struct {
	Installed bool
	IsRunning bool
	State     string
}

// ReadStatus queries the service manager. A service that was never installed
// is reported as not running rather than as an error.
func ReadStatus(svc StatusReader) (Status, error) {
	status, err := svc.Status()
	if err != nil {
		if errors.Is(err, service.ErrNotInstalled) {
			return Status{State: "not installed"}, nil
		}
		return Status{}, fmt.Errorf("%w: %w", ErrControl, err)
	}

	return Status{
		Installed: true,
		IsRunning: status == service.StatusRunning,
		State:     stateName(status),
	}, nil
}

func stateName(status service.Status) string {
	switch status {
	case service.StatusRunning:
		return "running"
	case service.StatusStopped:
		return "stopped"
	case service.StatusUnknown:
		return "unknown"
	}

	return fmt.Sprintf("status(%d)", status)
}
