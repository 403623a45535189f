package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dirauthd/dirauthd/internal/config"
	"github.com/dirauthd/dirauthd/internal/db/controller/role"
	"github.com/dirauthd/dirauthd/internal/roles"
)

// seed makes every role the mapping policy references known to the role
// registry. Mappings naming a role that is absent here would otherwise be
// skipped on every evaluation.
func seed(cfg *config.Config, db *gorm.DB) {
	for _, identifier := range policyRoles(&cfg.Directory.Roles) {
		if err := role.Ensure(db, identifier, "seeded from role mapping policy"); err != nil {
			// Authentication still works; the role is skipped during
			// evaluation until it exists.
			log.Warn().Err(err).Str("role", identifier).Msg("failed to seed role")
		}
	}
}

// policyRoles collects every role identifier the mapping policy can grant.
func policyRoles(cfg *roles.Config) []string {
	seen := make(map[string]bool)

	var identifiers []string

	add := func(identifier string) {
		if identifier == "" || seen[identifier] {
			return
		}

		seen[identifier] = true
		identifiers = append(identifiers, identifier)
	}

	for _, identifier := range cfg.Default {
		add(identifier)
	}

	for identifier := range cfg.UserMapping {
		add(identifier)
	}

	for identifier := range cfg.GroupMapping {
		add(identifier)
	}

	for identifier := range cfg.PropertyMapping {
		add(identifier)
	}

	return identifiers
}
