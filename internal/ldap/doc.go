// Package ldap implements the directory side of the authentication engine:
// connection handling, bind strategies and the searches needed to locate a
// user and their group memberships.
//
// # Bind strategies
//
// A BindStrategy decides how a connection is authenticated against the
// directory before (or instead of) searching:
//
//   - plainBind covers classic LDAP servers with three modes: binding
//     directly with a DN built from a template and the user's password,
//     binding with a configured service account, or binding anonymously.
//   - activeDirectoryBind covers Active Directory, where the bind identity
//     is the username normalized with a NetBIOS domain prefix
//     (DOMAIN\user) and/or a UPN suffix (user@example.com).
//
// The strategy is selected from ConnectionOptions.Type; there is no
// reflection or dynamic lookup involved.
//
// # Client lifecycle
//
// A Client owns exactly one connection and is meant to live for a single
// authentication attempt:
//
//	client, err := ldap.NewClient(opts)
//	entry, err := client.AuthenticateUser(username, password)
//	groups, err := client.GroupsOfUser(entry.DN)
//	client.Close()
//
// When the search bind did not already prove the user's password (service
// account or anonymous bind), AuthenticateUser re-binds with the located
// entry's DN to verify the credentials. A user search that does not match
// exactly one entry fails with ErrUserNotFound; the client never picks an
// entry out of an ambiguous result.
//
// Clients must not be shared between concurrent authentication attempts.
package ldap
