package auth

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dirauthd/dirauthd/internal/db/models"
	"github.com/dirauthd/dirauthd/internal/ldap"
	"github.com/dirauthd/dirauthd/internal/roles"
)

// Options configures an Authenticator.
type Options struct {
	// ProviderName tags the accounts owned by this authenticator.
	ProviderName string
	// AllowStandin enables verification against the cached password hash
	// when the directory server is unreachable. It also controls whether
	// the hash is cached in the first place.
	AllowStandin bool
	// AllowAutoCreation permits creating a local account on the first
	// successful directory authentication. When disabled, users without an
	// existing account cannot log in.
	AllowAutoCreation bool
	// Roles is the role mapping policy.
	Roles roles.Config
}

// Authenticator runs the authentication flow. It is safe for concurrent
// use; every attempt gets its own directory client from the factory.
type Authenticator struct {
	opts         Options
	newDirectory DirectoryFactory
	accounts     AccountStore
	registry     roles.Registry
	profiles     ProfileStore
}

// New creates an Authenticator. The profile store is optional and may be
// nil.
func New(opts Options, newDirectory DirectoryFactory, accounts AccountStore, registry roles.Registry, profiles ProfileStore) *Authenticator {
	return &Authenticator{
		opts:         opts,
		newDirectory: newDirectory,
		accounts:     accounts,
		registry:     registry,
		profiles:     profiles,
	}
}

// Authenticate runs one authentication attempt from start to finish. The
// returned error reports configuration or infrastructure defects only;
// rejected credentials are an Outcome, not an error.
func (a *Authenticator) Authenticate(creds Credentials) (*Outcome, error) {
	if !creds.complete() {
		return &Outcome{Status: StatusNoCredentials}, nil
	}

	dir, err := a.newDirectory()
	if err != nil {
		return nil, err
	}

	defer dir.Close()

	if !dir.IsServerOnline() {
		log.Warn().Str("username", creds.Username).Msg("directory server unreachable, evaluating stand-in authentication")
		return a.standin(creds)
	}

	entry, err := dir.AuthenticateUser(creds.Username, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, ldap.ErrInvalidCredentials), errors.Is(err, ldap.ErrUserNotFound):
			return a.rejected(creds)
		case ldap.IsConnectionError(err):
			log.Warn().Err(err).Str("username", creds.Username).Msg("directory connection failed, evaluating stand-in authentication")
			return a.standin(creds)
		default:
			return nil, err
		}
	}

	return a.succeeded(creds, dir, entry)
}

// succeeded finishes a live directory authentication: resolve the account,
// recompute its role set and persist the result.
func (a *Authenticator) succeeded(creds Credentials, dir Directory, entry *ldap.Entry) (*Outcome, error) {
	acct, created, err := a.resolveAccount(creds.Username)
	if err != nil {
		return nil, err
	}

	if acct == nil {
		log.Warn().Str("username", creds.Username).Msg("no local account and auto-creation refused, rejecting")
		return &Outcome{Status: StatusWrongCredentials}, nil
	}

	groups, err := dir.GroupsOfUser(entry.DN)
	if err != nil {
		// Group resolution is best-effort: the user has already proven
		// their credentials, so a failed group search only narrows the
		// role set to the group-independent rules.
		log.Warn().Err(err).Str("dn", entry.DN).Msg("group lookup failed, continuing without group roles")

		groups = nil
	}

	identifiers, err := roles.Evaluate(a.opts.Roles, entry, groups, a.registry)
	if err != nil {
		return nil, err
	}

	acct.DN = entry.DN
	acct.Roles = models.RoleSet(identifiers)
	acct.AuthenticationAttempted(true)

	if a.opts.AllowStandin {
		if err := acct.SetVerifier(creds.Password); err != nil {
			return nil, err
		}
	} else {
		acct.ClearVerifier()
	}

	if err := a.accounts.UpdateAccount(acct); err != nil {
		return nil, err
	}

	a.notifyProfile(acct, entry, created)

	return &Outcome{
		Status:  StatusSuccessful,
		Account: acct,
		Roles:   identifiers,
	}, nil
}

// resolveAccount finds the active account for a username, creating it when
// permitted. A nil account with a nil error means provisioning was refused.
func (a *Authenticator) resolveAccount(identifier string) (acct *models.Account, created bool, err error) {
	acct, err = a.accounts.FindActiveAccount(identifier, a.opts.ProviderName)
	if err != nil {
		return nil, false, err
	}

	if acct != nil {
		return acct, false, nil
	}

	if !a.opts.AllowAutoCreation {
		return nil, false, nil
	}

	acct, err = a.accounts.CreateAccount(identifier, a.opts.ProviderName)
	if err != nil {
		return nil, false, err
	}

	return acct, acct != nil, nil
}

// rejected records a failed attempt on the account, if one exists, and
// reports WrongCredentials.
func (a *Authenticator) rejected(creds Credentials) (*Outcome, error) {
	acct, err := a.accounts.FindActiveAccount(creds.Username, a.opts.ProviderName)
	if err != nil {
		return nil, err
	}

	if acct != nil {
		acct.AuthenticationAttempted(false)

		if err := a.accounts.UpdateAccount(acct); err != nil {
			log.Error().Err(err).Str("username", creds.Username).Msg("failed to record failed authentication attempt")
		}
	}

	return &Outcome{Status: StatusWrongCredentials}, nil
}

// standin verifies the credentials against the hash cached on the account
// during an earlier successful directory login.
func (a *Authenticator) standin(creds Credentials) (*Outcome, error) {
	if !a.opts.AllowStandin {
		log.Warn().Str("username", creds.Username).Msg("stand-in authentication disabled, rejecting while directory is unreachable")
		return &Outcome{Status: StatusWrongCredentials}, nil
	}

	acct, err := a.accounts.FindActiveAccount(creds.Username, a.opts.ProviderName)
	if err != nil {
		return nil, err
	}

	if acct == nil || !acct.VerifyPassword(creds.Password) {
		return a.rejected(creds)
	}

	acct.AuthenticationAttempted(true)

	if err := a.accounts.UpdateAccount(acct); err != nil {
		return nil, err
	}

	log.Info().Str("username", creds.Username).Msg("authenticated against cached credentials")

	return &Outcome{
		Status:  StatusSuccessful,
		Account: acct,
		Roles:   acct.Roles,
		Standin: true,
	}, nil
}

// notifyProfile informs the optional profile store about the account. The
// authentication outcome does not depend on the result.
func (a *Authenticator) notifyProfile(acct *models.Account, entry *ldap.Entry, created bool) {
	if a.profiles == nil {
		return
	}

	var err error
	if created {
		err = a.profiles.CreateProfile(acct, entry)
	} else {
		err = a.profiles.UpdateProfile(acct, entry)
	}

	if err != nil {
		log.Warn().Err(err).Str("identifier", acct.Identifier).Msg("profile notification failed")
	}
}
