package ldap

import "strings"

// activeDirectoryBind binds with the username normalized to the form
// Active Directory expects: a NetBIOS domain prefix (DOMAIN\user) and/or a
// UPN suffix (user@example.com). The user's own password always backs the
// bind, so no verify re-bind is needed afterwards.
type activeDirectoryBind struct {
	opts *ConnectionOptions
}

// principal normalizes a login name into the bind identity. A username
// that already carries a domain separator or an @ is left untouched.
func (b *activeDirectoryBind) principal(username string) string {
	if b.opts.Domain != "" && !strings.Contains(username, `\`) {
		username = b.opts.Domain + `\` + username
	}

	if b.opts.UsernameSuffix != "" && !strings.Contains(username, "@") {
		username += "@" + b.opts.UsernameSuffix
	}

	return username
}

func (b *activeDirectoryBind) Bind(conn Conn, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, ErrNoBindStrategy
	}

	if err := conn.Bind(b.principal(username), password); err != nil {
		return false, wrapBindError(err, "could not bind to ActiveDirectory server")
	}

	return true, nil
}

func (b *activeDirectoryBind) VerifyCredentials(conn Conn, dn, password string) error {
	if err := conn.Bind(dn, password); err != nil {
		return wrapBindError(err, "could not verify credentials for dn "+dn)
	}

	return nil
}

// FilterUsername prepares the login name for search filters. With a
// configured domain and filter.ignoreDomain enabled, DOMAIN\alice becomes
// alice; otherwise the name passes through unchanged and is escaped as a
// whole when substituted into the filter.
func (b *activeDirectoryBind) FilterUsername(username string) string {
	if b.opts.Domain == "" || !b.opts.Filter.IgnoreDomain {
		return username
	}

	parts := strings.Split(username, `\`)

	return parts[len(parts)-1]
}
