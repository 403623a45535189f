package ldap

import (
	"strings"

	goldap "github.com/go-ldap/ldap/v3"
)

// plainBind binds against a classic LDAP server in one of three ways,
// checked in order:
//
//  1. Both username and password given: bind with the DN built from the
//     user.dn (or legacy bind.dn) template and the user's password.
//  2. A service account password is configured: bind with the fixed
//     bind.dn / bind.password pair.
//  3. Anonymous binding is permitted: bind without credentials.
//
// If none applies the bind fails with ErrNoBindStrategy.
type plainBind struct {
	opts *ConnectionOptions
}

func (b *plainBind) Bind(conn Conn, username, password string) (bool, error) {
	template := b.opts.bindDNTemplate()
	if username != "" && password != "" && strings.Contains(template, Placeholder) {
		dn := substitute(template, goldap.EscapeDN(username))
		if err := conn.Bind(dn, password); err != nil {
			return false, wrapBindError(err, "could not bind to LDAP server")
		}

		// The bind DN was built from the username, so the directory has
		// already checked the user's password.
		return true, nil
	}

	if b.opts.Bind.Password != "" {
		if err := conn.Bind(b.opts.Bind.DN, b.opts.Bind.Password); err != nil {
			return false, wrapBindError(err, "could not bind with service account")
		}

		return false, nil
	}

	if b.opts.Bind.Anonymous {
		if err := conn.UnauthenticatedBind(""); err != nil {
			return false, wrapBindError(err, "could not bind anonymously")
		}

		return false, nil
	}

	return false, ErrNoBindStrategy
}

func (b *plainBind) VerifyCredentials(conn Conn, dn, password string) error {
	if err := conn.Bind(dn, password); err != nil {
		return wrapBindError(err, "could not verify credentials for dn "+dn)
	}

	return nil
}

// FilterUsername is the identity transform for plain LDAP.
func (b *plainBind) FilterUsername(username string) string {
	return username
}
