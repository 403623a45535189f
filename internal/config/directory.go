package config

import (
	"time"

	"github.com/dirauthd/dirauthd/internal/ldap"
	"github.com/dirauthd/dirauthd/internal/roles"
)

// Bind configures how the directory connection is bound before searching.
type Bind struct {
	Anonymous bool   `mapstructure:"anonymous"`
	DN        string `mapstructure:"dn"`
	Password  string `mapstructure:"password"`
}

// User configures the direct-credential bind DN template.
type User struct {
	DN string `mapstructure:"dn"`
}

// Filter holds the directory search filter templates.
type Filter struct {
	Account      string `mapstructure:"account"`
	MemberOf     string `mapstructure:"memberOf"`
	IgnoreDomain bool   `mapstructure:"ignoreDomain"`
}

// Directory describes the directory server, the bind and search policy and
// the role mapping applied after a successful authentication.
type Directory struct {
	ProviderName string `mapstructure:"providerName"`

	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	Type string `mapstructure:"type" validate:"oneof=plain active-directory"`

	UseSSL     bool `mapstructure:"useSsl"`
	StartTLS   bool `mapstructure:"startTls"`
	SkipVerify bool `mapstructure:"skipVerify"`

	Bind   Bind   `mapstructure:"bind"`
	User   User   `mapstructure:"user"`
	Filter Filter `mapstructure:"filter"`

	BaseDN          string `mapstructure:"baseDn" validate:"required"`
	ProtocolVersion int    `mapstructure:"protocolVersion"`

	Domain         string `mapstructure:"domain"`
	UsernameSuffix string `mapstructure:"usernameSuffix"`

	Attributes []string      `mapstructure:"attributes"`
	Timeout    time.Duration `mapstructure:"timeout"`

	// AllowStandinAuthentication enables the cached-credential fallback
	// when the directory server is unreachable.
	AllowStandinAuthentication bool `mapstructure:"allowStandinAuthentication"`
	// AllowAutoCreation permits provisioning a local account on first
	// successful directory login.
	AllowAutoCreation bool `mapstructure:"allowAutoCreation"`

	Roles roles.Config `mapstructure:"roles"`
}

// ConnectionOptions converts the configuration into directory client
// options. The client applies its own defaults and validation on top.
func (d *Directory) ConnectionOptions() *ldap.ConnectionOptions {
	return &ldap.ConnectionOptions{
		Host:       d.Host,
		Port:       d.Port,
		Type:       ldap.ConnectionType(d.Type),
		UseSSL:     d.UseSSL,
		StartTLS:   d.StartTLS,
		SkipVerify: d.SkipVerify,
		Bind: ldap.BindOptions{
			Anonymous: d.Bind.Anonymous,
			DN:        d.Bind.DN,
			Password:  d.Bind.Password,
		},
		User: ldap.UserOptions{
			DN: d.User.DN,
		},
		Filter: ldap.FilterOptions{
			Account:      d.Filter.Account,
			MemberOf:     d.Filter.MemberOf,
			IgnoreDomain: d.Filter.IgnoreDomain,
		},
		BaseDN: d.BaseDN,
		Protocol: ldap.ProtocolOptions{
			Version: d.ProtocolVersion,
		},
		Domain:         d.Domain,
		UsernameSuffix: d.UsernameSuffix,
		Attributes:     d.Attributes,
		Timeout:        d.Timeout,
	}
}
