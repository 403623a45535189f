// Package healthz exposes the liveness endpoint used by load balancers.
package healthz

import (
	"errors"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"

	"github.com/dirauthd/dirauthd/internal/web/handler"
)

const (
	// Path is the path to the health endpoint.
	Path = "/healthz"
)

// Probe reports whether the directory server currently accepts
// connections. The result is advisory and does not fail the health check;
// a daemon with an unreachable directory may still serve stand-in logins.
type Probe func() bool

// Service is the healthz handler service.
type Service struct {
	alive *atomic.Bool
	probe Probe
}

// Handler is the healthz handler.
var Handler = Service{}

// Init initializes the healthz handler.
func (s *Service) Init(app *fiber.App, alive *atomic.Bool, probe Probe) error {
	if app == nil || alive == nil {
		return errors.New("app or alive flag is nil")
	}

	s.alive = alive
	s.probe = probe

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
	})

	return nil
}

// Get reports liveness, plus directory reachability as a detail.
func (s *Service) Get(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "shutting down",
		})
	}

	directory := "unknown"

	if s.probe != nil {
		if s.probe() {
			directory = "online"
		} else {
			directory = "offline"
		}
	}

	return c.JSON(fiber.Map{
		"status":    "ok",
		"directory": directory,
	})
}
