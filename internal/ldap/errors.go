package ldap

import (
	"errors"

	goldap "github.com/go-ldap/ldap/v3"
)

var (
	// ErrConnectionFailed is returned when the directory server cannot be
	// reached or the connection is lost.
	ErrConnectionFailed = errors.New("could not connect to directory server")

	// ErrUnknownBindStrategy is returned when the configured connection type
	// does not map to a bind strategy.
	ErrUnknownBindStrategy = errors.New("unknown directory connection type")

	// ErrNoBindStrategy is returned when neither direct credentials, a
	// service account nor anonymous binding is available.
	ErrNoBindStrategy = errors.New("no applicable bind strategy")

	// ErrInvalidCredentials is returned when the directory rejects a bind
	// because of a wrong DN/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned when the user search does not match
	// exactly one entry. Ambiguous matches are deliberately treated the
	// same as no match.
	ErrUserNotFound = errors.New("user not found in directory")

	// ErrNotConnected is returned when a search is attempted before the
	// client is connected and bound.
	ErrNotConnected = errors.New("directory client is not connected")

	// Configuration errors. These indicate a deployment defect, not a
	// failed authentication.
	ErrMissingHost                = errors.New("directory host must not be empty")
	ErrMissingBaseDN              = errors.New("baseDn must not be empty")
	ErrMissingAccountFilter       = errors.New("filter.account must not be empty")
	ErrFilterWithoutPlaceholder   = errors.New("filter.account must contain the ? placeholder")
	ErrBindDNWithoutPlaceholder   = errors.New("user.dn must contain the ? placeholder")
	ErrUnsupportedProtocolVersion = errors.New("only LDAP protocol version 3 is supported")
)

// IsConnectionError reports whether err stems from an unreachable server or
// a broken connection, as opposed to the server rejecting an operation. The
// orchestrator uses this to decide whether stand-in authentication applies.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrConnectionFailed) {
		return true
	}

	var ldapErr *goldap.Error
	if errors.As(err, &ldapErr) {
		switch ldapErr.ResultCode {
		case goldap.ErrorNetwork,
			goldap.LDAPResultServerDown,
			goldap.LDAPResultUnavailable,
			goldap.LDAPResultConnectError,
			goldap.LDAPResultBusy:
			return true
		}
	}

	return false
}

// isCredentialRejection reports whether err is the server refusing a bind
// because of wrong credentials rather than a transport failure.
func isCredentialRejection(err error) bool {
	return goldap.IsErrorAnyOf(err,
		goldap.LDAPResultInvalidCredentials,
		goldap.LDAPResultInappropriateAuthentication,
	)
}
