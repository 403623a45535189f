// Package authenticate exposes the authentication operation as a JSON
// endpoint.
package authenticate

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/dirauthd/dirauthd/internal/auth"
	"github.com/dirauthd/dirauthd/internal/config"
	"github.com/dirauthd/dirauthd/internal/web/handler"
)

const (
	// Path is the path to the authenticate endpoint.
	Path = "/api/v1/authenticate"
)

// Service is the authenticate handler service.
type Service struct {
	cfg           *config.Config
	authenticator handler.Authenticator
}

// Handler is the authenticate handler.
var Handler = Service{}

// response is the JSON body returned for every authentication attempt.
// Directory level failure detail never leaks to the caller.
type response struct {
	Status  auth.Status `json:"status"`
	Account string      `json:"account,omitempty"`
	Roles   []string    `json:"roles,omitempty"`
	Standin bool        `json:"standin,omitempty"`
}

// Init initializes the authenticate handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, authenticator handler.Authenticator) error {
	if app == nil || cfg == nil || authenticator == nil {
		return errors.New(handler.ErrNilACAFatalLogMsg)
	}

	s.cfg = cfg
	s.authenticator = authenticator

	app.Route(Path, func(router fiber.Router) {
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Post runs one authentication attempt for the posted credentials.
func (s *Service) Post(c *fiber.Ctx) error {
	var creds auth.Credentials

	if err := c.BodyParser(&creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response{
			Status: auth.StatusNoCredentials,
		})
	}

	outcome, err := s.authenticator.Authenticate(creds)
	if err != nil {
		log.Error().Err(err).Str("username", creds.Username).Msg("authentication attempt failed")

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "authentication unavailable",
		})
	}

	switch outcome.Status {
	case auth.StatusNoCredentials:
		return c.Status(fiber.StatusBadRequest).JSON(response{
			Status: outcome.Status,
		})
	case auth.StatusWrongCredentials:
		return c.Status(fiber.StatusUnauthorized).JSON(response{
			Status: outcome.Status,
		})
	default:
		return c.JSON(response{
			Status:  outcome.Status,
			Account: outcome.Account.Identifier,
			Roles:   outcome.Roles,
			Standin: outcome.Standin,
		})
	}
}
