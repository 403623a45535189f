// Package config handles input from etc/dirauthd.yaml with DIRAUTHD_*
// environment overrides.
package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	v := viper.New()

	v.SetConfigName("dirauthd")
	v.SetConfigType("yaml")

	if path == "" {
		path = "./etc/"
	}

	v.AddConfigPath(path)

	v.SetEnvPrefix("DIRAUTHD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	return c, validate(&c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("webserver.port", 8080)
	v.SetDefault("webserver.shutDownTime", 5)
	v.SetDefault("db.engine", "sqlite")
	v.SetDefault("db.name", "dirauthd")
	v.SetDefault("directory.providerName", "directory")
	v.SetDefault("directory.type", "plain")
	v.SetDefault("directory.protocolVersion", 3)
	v.SetDefault("directory.timeout", "10s")
	v.SetDefault("log.logLevel", "info")
	v.SetDefault("log.appName", "dirauthd")
	v.SetDefault("log.serviceName", "dirauthd")
}

// validate checks the decoded configuration for deployment defects. The
// directory connection itself is validated again when a client is built
// from it; this catches what must hold before the daemon starts at all.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	return nil
}
