// Package auth implements the end-to-end directory authentication flow.
//
// The Authenticator ties the pieces together for one authentication
// attempt:
//   - validate the supplied credentials
//   - authenticate against the directory through a short-lived client
//   - resolve or create the local account record
//   - compute the account's role set from the mapping policy
//   - fall back to a cached password verifier when the directory is
//     unreachable and stand-in authentication is enabled
//
// # Outcomes
//
// Every attempt ends in exactly one of three states:
//   - NoCredentials: username or password missing; nothing was contacted
//   - WrongCredentials: the directory rejected the credentials, the user
//     was not found, or the stand-in verifier did not match
//   - Successful: the user is authenticated and the outcome carries the
//     resolved account and its recomputed role set
//
// Configuration and infrastructure defects (bad options, broken account
// store) are returned as errors, never disguised as a failed login.
//
// # Stand-in authentication
//
// When the directory server is unreachable and stand-in authentication is
// enabled, the attempt is verified against an Argon2id hash cached on the
// account during an earlier successful directory login. The plaintext
// password is never stored. With stand-in disabled, an unreachable server
// yields WrongCredentials and the transport failure is logged.
//
// # Collaborators
//
// The account store, the role registry and the optional profile store are
// consumed through narrow interfaces owned by this package; their
// implementations live elsewhere.
//
// Example usage:
//
//	authenticator := auth.New(opts, directoryFactory, accounts, registry, profiles)
//	outcome, err := authenticator.Authenticate(auth.Credentials{
//	    Username: "alice",
//	    Password: "secret",
//	})
package auth
