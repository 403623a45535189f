package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dirauthd/dirauthd/internal/auth"
	"github.com/dirauthd/dirauthd/internal/config"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, authenticator Authenticator) error
}

// Authenticator is the authentication surface handlers consume.
type Authenticator interface {
	Authenticate(creds auth.Credentials) (*auth.Outcome, error)
}
