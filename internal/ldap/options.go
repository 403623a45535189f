package ldap

import (
	"strings"
	"time"
)

// ConnectionType selects the bind strategy used for a directory connection.
type ConnectionType string

const (
	// ConnectionTypePlain selects the plain LDAP bind strategy.
	ConnectionTypePlain ConnectionType = "plain"
	// ConnectionTypeActiveDirectory selects the Active Directory bind strategy.
	ConnectionTypeActiveDirectory ConnectionType = "active-directory"
)

// Placeholder is the substitution marker recognized in DN and filter
// templates, e.g. "(uid=?)" or "uid=?,ou=Users,dc=example,dc=com".
const Placeholder = "?"

// BindOptions configures how the connection is bound before searching.
type BindOptions struct {
	// Anonymous permits binding without any credentials.
	Anonymous bool
	// DN is either a fixed service account DN or, if it contains the
	// placeholder, a template for building the user's bind DN.
	DN string
	// Password is the service account password. When set, DN is treated as
	// a fixed service account DN.
	Password string
}

// UserOptions configures the direct-credential bind.
type UserOptions struct {
	// DN is a bind DN template containing the placeholder. It takes
	// precedence over BindOptions.DN when both could apply.
	DN string
}

// FilterOptions holds the search filter templates.
type FilterOptions struct {
	// Account locates the user entry; the placeholder is replaced with the
	// filtered username (e.g. "(uid=?)").
	Account string
	// MemberOf locates the groups a user belongs to; the placeholder is
	// replaced with the user's DN (e.g. "(member=?)"). Empty disables group
	// lookup.
	MemberOf string
	// IgnoreDomain strips the NetBIOS domain from the username before it is
	// substituted into search filters (Active Directory only).
	IgnoreDomain bool
}

// ProtocolOptions carries wire-level directory options.
type ProtocolOptions struct {
	// Version is the LDAP protocol version. Only version 3 is supported.
	Version int
}

// ConnectionOptions describes one directory server and how to bind and
// search against it. The struct is treated as immutable once handed to a
// Client; each Client owns its options exclusively.
type ConnectionOptions struct {
	// Host is the directory server hostname or IP address.
	Host string
	// Port is the directory server port. Defaults to 389, or 636 with SSL.
	Port int
	// Type selects the bind strategy.
	Type ConnectionType

	// UseSSL connects with ldaps:// instead of ldap://.
	UseSSL bool
	// StartTLS upgrades a plain connection to TLS after connecting.
	StartTLS bool
	// SkipVerify disables TLS certificate verification.
	SkipVerify bool

	Bind   BindOptions
	User   UserOptions
	Filter FilterOptions

	// BaseDN is the search base; it may contain the placeholder, which is
	// replaced with the filtered username.
	BaseDN string

	// Protocol carries wire-level options.
	Protocol ProtocolOptions

	// Domain is the NetBIOS domain prefixed to usernames (Active Directory).
	Domain string
	// UsernameSuffix is the UPN suffix appended to usernames (Active
	// Directory).
	UsernameSuffix string

	// Attributes restricts which attributes the user search returns. Empty
	// means all attributes.
	Attributes []string

	// Timeout bounds connect and search operations.
	Timeout time.Duration
}

const (
	defaultPort     = 389
	defaultSSLPort  = 636
	defaultTimeout  = 10 * time.Second
	protocolVersion = 3
)

func (o *ConnectionOptions) applyDefaults() {
	if o.Type == "" {
		o.Type = ConnectionTypePlain
	}

	if o.Port == 0 {
		if o.UseSSL {
			o.Port = defaultSSLPort
		} else {
			o.Port = defaultPort
		}
	}

	if o.Timeout == 0 {
		o.Timeout = defaultTimeout
	}

	if o.Protocol.Version == 0 {
		o.Protocol.Version = protocolVersion
	}
}

// Validate checks the options for deployment defects. Errors from Validate
// indicate misconfiguration and must never be reported as failed
// authentication.
func (o *ConnectionOptions) Validate() error {
	if o.Host == "" {
		return ErrMissingHost
	}

	if o.BaseDN == "" {
		return ErrMissingBaseDN
	}

	if o.Filter.Account == "" {
		return ErrMissingAccountFilter
	}

	if !strings.Contains(o.Filter.Account, Placeholder) {
		return ErrFilterWithoutPlaceholder
	}

	if o.User.DN != "" && !strings.Contains(o.User.DN, Placeholder) {
		return ErrBindDNWithoutPlaceholder
	}

	if o.Protocol.Version != protocolVersion {
		return ErrUnsupportedProtocolVersion
	}

	switch o.Type {
	case ConnectionTypePlain, ConnectionTypeActiveDirectory:
	default:
		return ErrUnknownBindStrategy
	}

	return nil
}

// bindDNTemplate returns the template used to build the user's bind DN.
// user.dn is preferred; bind.dn with a placeholder is the legacy location.
func (o *ConnectionOptions) bindDNTemplate() string {
	if o.User.DN != "" {
		return o.User.DN
	}

	return o.Bind.DN
}

// substitute replaces the placeholder in a DN or filter template.
func substitute(template, value string) string {
	return strings.ReplaceAll(template, Placeholder, value)
}
