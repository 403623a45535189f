package ldap

import (
	"fmt"

	goldap "github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog/log"
)

// Client owns one directory connection for the duration of a single
// authentication attempt. It is not safe for concurrent use; concurrent
// attempts must each construct their own Client.
type Client struct {
	opts     *ConnectionOptions
	dial     DialFunc
	conn     Conn
	strategy BindStrategy
}

// NewClient validates the options and returns an unconnected client. The
// options are owned by the returned client and must not be mutated.
func NewClient(opts *ConnectionOptions) (*Client, error) {
	opts.applyDefaults()

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		opts: opts,
		dial: dialDirectory,
	}, nil
}

// Connect opens the underlying connection and selects the bind strategy.
// Calling Connect on an already-connected client is a no-op.
func (c *Client) Connect() error {
	if c.conn != nil {
		return nil
	}

	strategy, err := bindStrategyFor(c.opts)
	if err != nil {
		return err
	}

	conn, err := c.dial(c.opts)
	if err != nil {
		return err
	}

	c.conn = conn
	c.strategy = strategy

	return nil
}

// Close releases the underlying connection. Safe to call on an
// unconnected client.
func (c *Client) Close() {
	if c.conn == nil {
		return
	}

	if err := c.conn.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close directory connection")
	}

	c.conn = nil
}

// AuthenticateUser connects if needed, binds with the configured strategy,
// searches for exactly one entry matching the account filter and, when the
// search bind did not already prove the supplied password, verifies the
// located DN/password pair with a re-bind.
func (c *Client) AuthenticateUser(username, password string) (*Entry, error) {
	if err := c.Connect(); err != nil {
		return nil, err
	}

	verified, err := c.strategy.Bind(c.conn, username, password)
	if err != nil {
		return nil, err
	}

	entry, err := c.searchUser(username)
	if err != nil {
		return nil, err
	}

	if !verified {
		if err := c.strategy.VerifyCredentials(c.conn, entry.DN, password); err != nil {
			return nil, err
		}
	}

	return entry, nil
}

// searchUser runs the account filter and requires exactly one match.
func (c *Client) searchUser(username string) (*Entry, error) {
	filtered := c.strategy.FilterUsername(username)

	req := goldap.NewSearchRequest(
		substitute(c.opts.BaseDN, goldap.EscapeDN(filtered)),
		goldap.ScopeWholeSubtree,
		goldap.NeverDerefAliases,
		0,
		int(c.opts.Timeout.Seconds()),
		false,
		substitute(c.opts.Filter.Account, goldap.EscapeFilter(filtered)),
		c.opts.Attributes,
		nil,
	)

	result, err := c.conn.Search(req)
	if err != nil {
		return nil, fmt.Errorf("user search failed: %w", err)
	}

	switch len(result.Entries) {
	case 0:
		return nil, ErrUserNotFound
	case 1:
		return newEntry(result.Entries[0]), nil
	default:
		log.Warn().
			Str("username", username).
			Int("matches", len(result.Entries)).
			Msg("ambiguous user search, treating as not found")

		return nil, ErrUserNotFound
	}
}

// GroupsOfUser returns the DNs of all group entries matching the memberOf
// filter for the given user DN. With no memberOf filter configured the
// lookup is disabled and returns no groups.
func (c *Client) GroupsOfUser(dn string) ([]string, error) {
	if c.conn == nil {
		return nil, ErrNotConnected
	}

	if c.opts.Filter.MemberOf == "" {
		return nil, nil
	}

	req := goldap.NewSearchRequest(
		substitute(c.opts.BaseDN, dn),
		goldap.ScopeWholeSubtree,
		goldap.NeverDerefAliases,
		0,
		int(c.opts.Timeout.Seconds()),
		false,
		substitute(c.opts.Filter.MemberOf, goldap.EscapeFilter(dn)),
		[]string{"dn"},
		nil,
	)

	result, err := c.conn.Search(req)
	if err != nil {
		return nil, fmt.Errorf("group search failed: %w", err)
	}

	groups := make([]string, 0, len(result.Entries))
	for _, entry := range result.Entries {
		groups = append(groups, entry.DN)
	}

	return groups, nil
}

// IsServerOnline probes directory reachability with a bounded raw TCP
// connect. Advisory only: see IsServerOnline in conn.go.
func (c *Client) IsServerOnline() bool {
	return IsServerOnline(c.opts.Host, c.opts.Port, probeTimeout)
}

// TestConnection connects and binds with the configured service account or
// anonymously, without touching user credentials. Used by health checks.
func (c *Client) TestConnection() error {
	if err := c.Connect(); err != nil {
		return err
	}

	defer c.Close()

	if _, err := c.strategy.Bind(c.conn, "", ""); err != nil {
		return err
	}

	return nil
}
