// Package main provides the entry point for the directory authentication
// service. It runs a web server using the Fiber framework that accepts
// credential submissions over a REST API, verifies them against an LDAP
// directory, and maps directory entries to application roles. Accounts are
// persisted with gorm, and cached credential verifiers allow stand-in
// authentication while the directory is unreachable.
package main
