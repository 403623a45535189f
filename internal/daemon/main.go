package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dirauthd/dirauthd/internal/auth"
	"github.com/dirauthd/dirauthd/internal/config"
	"github.com/dirauthd/dirauthd/internal/db"
	"github.com/dirauthd/dirauthd/internal/db/dsn"
	"github.com/dirauthd/dirauthd/internal/db/models"
	"github.com/dirauthd/dirauthd/internal/ldap"
	"github.com/dirauthd/dirauthd/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
	port       int
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	return d.webService.Start(fmt.Sprintf(":%d", d.port))
}

// WaitShutdown blocks until the web service has shut down gracefully.
func (d *Daemon) WaitShutdown() {
	d.webService.WaitShutdown()
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	gdb, err := gorm.Open(openDialector(cfg), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
		return nil
	}

	if err = gdb.AutoMigrate(
		&models.Account{},
		&models.Role{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
		return nil
	}

	seed(cfg, gdb)

	directory := &cfg.Directory

	newDirectory := func() (auth.Directory, error) {
		client, errClient := ldap.NewClient(directory.ConnectionOptions())
		if errClient != nil {
			return nil, errClient
		}

		return client, nil
	}

	authenticator := auth.New(
		auth.Options{
			ProviderName:      directory.ProviderName,
			AllowStandin:      directory.AllowStandinAuthentication,
			AllowAutoCreation: directory.AllowAutoCreation,
			Roles:             directory.Roles,
		},
		newDirectory,
		db.NewAccountStore(gdb, directory.AllowAutoCreation),
		db.NewRoleRegistry(gdb),
		nil,
	)

	probe := func() bool {
		client, errClient := ldap.NewClient(directory.ConnectionOptions())
		if errClient != nil {
			return false
		}

		if !client.IsServerOnline() {
			return false
		}

		// With a service account or anonymous bind available the probe can
		// go further than a socket check and verify the directory accepts a
		// bind. Direct-bind-only configurations stop at reachability.
		if directory.Bind.Password != "" || directory.Bind.Anonymous {
			return client.TestConnection() == nil
		}

		return true
	}

	return &Daemon{
		webService: web.New(cfg, authenticator, probe),
		port:       cfg.Webserver.Port,
	}
}

// openDialector selects the gorm driver for the configured engine.
func openDialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DB.Engine {
	case "mysql":
		return gormmysql.Open(dsn.Create(cfg))
	case "postgres":
		return gormpostgres.Open(dsn.CreatePostgres(cfg))
	default:
		return sqlite.Open(cfg.DB.Name)
	}
}
