package ldap

import "fmt"

// BindStrategy encapsulates how a connection is authenticated against the
// directory and how usernames are prepared for search filters.
type BindStrategy interface {
	// Bind authenticates conn for the given credentials. The returned flag
	// reports whether the bind already proved the supplied password; when
	// false, the caller must verify the located entry's DN and password
	// with VerifyCredentials after searching.
	Bind(conn Conn, username, password string) (credentialsVerified bool, err error)

	// VerifyCredentials re-binds with an explicit DN and password to
	// confirm a located user's credentials after a service-account or
	// anonymous search bind.
	VerifyCredentials(conn Conn, dn, password string) error

	// FilterUsername transforms the login name into the form substituted
	// into search filters.
	FilterUsername(username string) string
}

// bindStrategyFor maps the connection type tag to a strategy. This is a
// plain tagged dispatch; new strategies are added here.
func bindStrategyFor(o *ConnectionOptions) (BindStrategy, error) {
	switch o.Type {
	case ConnectionTypePlain:
		return &plainBind{opts: o}, nil
	case ConnectionTypeActiveDirectory:
		return &activeDirectoryBind{opts: o}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBindStrategy, o.Type)
	}
}

// wrapBindError normalizes a failed bind: credential rejections become
// ErrInvalidCredentials, everything else keeps its cause.
func wrapBindError(err error, context string) error {
	if err == nil {
		return nil
	}

	if isCredentialRejection(err) {
		return fmt.Errorf("%s: %w", context, ErrInvalidCredentials)
	}

	return fmt.Errorf("%s: %w", context, err)
}
