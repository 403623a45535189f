package ldap

import (
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	goldap "github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog/log"
)

// Conn is the subset of *ldap.Conn the engine uses. It exists so the client
// and the bind strategies can be exercised against a fake in tests.
type Conn interface {
	Bind(username, password string) error
	UnauthenticatedBind(username string) error
	Search(req *goldap.SearchRequest) (*goldap.SearchResult, error)
	Close() error
}

// DialFunc opens a connection for the given options. Replaced in tests.
type DialFunc func(o *ConnectionOptions) (Conn, error)

// dialDirectory is the production DialFunc: it dials ldap:// or ldaps://,
// optionally upgrades with StartTLS and applies the configured timeout.
func dialDirectory(o *ConnectionOptions) (Conn, error) {
	hostPort := net.JoinHostPort(o.Host, strconv.Itoa(o.Port))

	scheme := "ldap://"
	if o.UseSSL {
		scheme = "ldaps://"
	}

	var tlsConfig *tls.Config
	if o.UseSSL || o.StartTLS {
		tlsConfig = &tls.Config{
			InsecureSkipVerify: o.SkipVerify, //nolint:gosec // skipping verifying tls is ok
			ServerName:         o.Host,
		}
	}

	conn, err := goldap.DialURL(scheme+hostPort, goldap.DialWithTLSConfig(tlsConfig))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	if !o.UseSSL && o.StartTLS {
		if errTLS := conn.StartTLS(tlsConfig); errTLS != nil {
			if errClose := conn.Close(); errClose != nil {
				log.Error().Err(errClose).Msg("failed to close directory connection")
			}

			return nil, fmt.Errorf("failed to start TLS: %w", errTLS)
		}
	}

	if o.Timeout > 0 {
		conn.SetTimeout(o.Timeout)
	}

	return conn, nil
}

// IsServerOnline probes whether host:port accepts TCP connections within
// timeout. The probe is advisory: a positive answer does not guarantee a
// later bind will succeed, and a negative answer never raises an error.
func IsServerOnline(host string, port int, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = probeTimeout
	}

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), timeout)
	if err != nil {
		return false
	}

	if errClose := conn.Close(); errClose != nil {
		log.Debug().Err(errClose).Msg("failed to close probe connection")
	}

	return true
}

const probeTimeout = 5 * time.Second
