package auth

import (
	"github.com/dirauthd/dirauthd/internal/db/models"
	"github.com/dirauthd/dirauthd/internal/ldap"
)

// Directory is the directory client surface the authenticator consumes.
// One Directory instance serves exactly one authentication attempt.
type Directory interface {
	AuthenticateUser(username, password string) (*ldap.Entry, error)
	GroupsOfUser(dn string) ([]string, error)
	IsServerOnline() bool
	Close()
}

// DirectoryFactory opens a fresh directory client for one attempt.
// Concurrent attempts must not share a client, so the authenticator asks
// for a new one per call.
type DirectoryFactory func() (Directory, error)

// AccountStore persists local account records. FindActiveAccount returns
// (nil, nil) when no matching account exists; CreateAccount may return
// (nil, nil) to refuse auto-provisioning.
type AccountStore interface {
	FindActiveAccount(identifier, providerName string) (*models.Account, error)
	CreateAccount(identifier, providerName string) (*models.Account, error)
	UpdateAccount(acct *models.Account) error
}

// ProfileStore receives notifications about directory-backed profiles. The
// authenticator does not depend on the outcome of these calls; failures
// are logged and the authentication result stands.
type ProfileStore interface {
	CreateProfile(acct *models.Account, entry *ldap.Entry) error
	UpdateProfile(acct *models.Account, entry *ldap.Entry) error
}
