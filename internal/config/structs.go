package config

import (
	"github.com/dirauthd/dirauthd/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool       `mapstructure:"devMode"` // enable dev mode for development
	DB        DB         `mapstructure:"db"`
	Log       logger.Log `mapstructure:"log"`
	Webserver Webserver  `mapstructure:"webserver"`
	Directory Directory  `mapstructure:"directory"`
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   `mapstructure:"disableRecover"`                  // disable recover middleware
	Port           int    `mapstructure:"port" validate:"gte=0,lte=65535"` // listening port for the webserver
	ShutDownTime   int    `mapstructure:"shutDownTime"`                    // wait time for shutdown
	URL            string `mapstructure:"url"`                             // base url for the webserver
}
