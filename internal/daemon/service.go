package daemon

import (
	"context"

	"github.com/kardianos/service"
)

// ServiceConfig describes sweepd to the host service manager
// (systemd, launchd, or the Windows service control manager).
func ServiceConfig() *service.Config {
	return &service.Config{
		Name:        "sweepd",
		DisplayName: "Condor submit directory cleanup",
		Description: "Removes submission work directories once their job clusters have left the condor queue.",
	}
}

// program adapts a Daemon to the kardianos service interface.
type program struct {
	daemon *Daemon
	cancel context.CancelFunc
}

// Start implements service.Interface. It must not block.
func (p *program) Start(_ service.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	return p.daemon.Start(ctx)
}

// Stop implements service.Interface.
func (p *program) Stop(_ service.Service) error {
	if p.cancel != nil {
		p.cancel()
	}
	return p.daemon.Stop(context.Background())
}

// NewService wraps a Daemon in a host service manager handle. Callers use
// the handle to install, uninstall, start, stop, or run the service.
func NewService(d *Daemon) (service.Service, error) {
	return service.New(&program{daemon: d}, ServiceConfig())
}
