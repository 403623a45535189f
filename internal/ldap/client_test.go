package ldap

import (
	"errors"
	"testing"

	goldap "github.com/go-ldap/ldap/v3"
)

func serviceOpts() *ConnectionOptions {
	return &ConnectionOptions{
		Host:   "ldap.example.com",
		BaseDN: "dc=example,dc=com",
		Bind:   BindOptions{DN: "cn=service,dc=example,dc=com", Password: "svcpw"},
		Filter: FilterOptions{Account: "(uid=?)"},
	}
}

func TestClientAuthenticateUser_ServicePathVerifies(t *testing.T) {
	conn := &fakeConn{
		searchFn: func(_ *goldap.SearchRequest) (*goldap.SearchResult, error) {
			return searchResult(testEntry("uid=alice,ou=Users,dc=example,dc=com", map[string][]string{
				"mail": {"alice@example.com"},
			})), nil
		},
	}
	client := clientWithConn(serviceOpts(), conn)

	entry, err := client.AuthenticateUser("alice", "secret")
	if err != nil {
		t.Fatalf("AuthenticateUser() error = %v", err)
	}

	if entry.DN != "uid=alice,ou=Users,dc=example,dc=com" {
		t.Fatalf("unexpected entry DN %q", entry.DN)
	}

	if got := entry.Value("mail"); got != "alice@example.com" {
		t.Fatalf("mail = %q", got)
	}

	// Service bind first, verify re-bind with the located DN second.
	if len(conn.binds) != 2 {
		t.Fatalf("expected 2 binds, got %d", len(conn.binds))
	}

	verify := conn.binds[1]
	if verify.dn != "uid=alice,ou=Users,dc=example,dc=com" || verify.password != "secret" {
		t.Fatalf("unexpected verify bind %+v", verify)
	}
}

func TestClientAuthenticateUser_DirectPathSkipsVerify(t *testing.T) {
	opts := serviceOpts()
	opts.Bind = BindOptions{}
	opts.User = UserOptions{DN: "uid=?,ou=Users,dc=example,dc=com"}

	conn := &fakeConn{
		searchFn: func(_ *goldap.SearchRequest) (*goldap.SearchResult, error) {
			return searchResult(testEntry("uid=alice,ou=Users,dc=example,dc=com", nil)), nil
		},
	}
	client := clientWithConn(opts, conn)

	if _, err := client.AuthenticateUser("alice", "secret"); err != nil {
		t.Fatalf("AuthenticateUser() error = %v", err)
	}

	if len(conn.binds) != 1 {
		t.Fatalf("direct bind must not re-bind, got %d binds", len(conn.binds))
	}
}

func TestClientAuthenticateUser_NoMatch(t *testing.T) {
	client := clientWithConn(serviceOpts(), &fakeConn{})

	_, err := client.AuthenticateUser("ghost", "pw")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestClientAuthenticateUser_AmbiguousMatch(t *testing.T) {
	conn := &fakeConn{
		searchFn: func(_ *goldap.SearchRequest) (*goldap.SearchResult, error) {
			return searchResult(
				testEntry("uid=alice,ou=Users,dc=example,dc=com", nil),
				testEntry("uid=alice,ou=Admins,dc=example,dc=com", nil),
			), nil
		},
	}
	client := clientWithConn(serviceOpts(), conn)

	_, err := client.AuthenticateUser("alice", "pw")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("ambiguous match must behave as not found, got %v", err)
	}

	// The password must not be checked against any of the candidates.
	if len(conn.binds) != 1 {
		t.Fatalf("expected only the service bind, got %d binds", len(conn.binds))
	}
}

func TestClientAuthenticateUser_WrongPassword(t *testing.T) {
	conn := &fakeConn{
		bindFn: func(dn, _ string) error {
			if dn == "cn=service,dc=example,dc=com" {
				return nil
			}

			return goldap.NewError(goldap.LDAPResultInvalidCredentials, errors.New("invalid credentials"))
		},
		searchFn: func(_ *goldap.SearchRequest) (*goldap.SearchResult, error) {
			return searchResult(testEntry("uid=alice,ou=Users,dc=example,dc=com", nil)), nil
		},
	}
	client := clientWithConn(serviceOpts(), conn)

	_, err := client.AuthenticateUser("alice", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestClientSearchUser_EscapesFilterInput(t *testing.T) {
	conn := &fakeConn{
		searchFn: func(_ *goldap.SearchRequest) (*goldap.SearchResult, error) {
			return searchResult(testEntry("uid=x,dc=example,dc=com", nil)), nil
		},
	}
	client := clientWithConn(serviceOpts(), conn)

	if _, err := client.AuthenticateUser(`ali*ce)(uid=*`, "pw"); err != nil {
		t.Fatalf("AuthenticateUser() error = %v", err)
	}

	if len(conn.searches) != 1 {
		t.Fatalf("expected 1 search, got %d", len(conn.searches))
	}

	got := conn.searches[0].Filter
	want := `(uid=ali\2ace\29\28uid=\2a)`
	if got != want {
		t.Fatalf("filter = %q, want %q", got, want)
	}
}

func TestClientGroupsOfUser(t *testing.T) {
	opts := serviceOpts()
	opts.Filter.MemberOf = "(member=?)"

	conn := &fakeConn{
		searchFn: func(req *goldap.SearchRequest) (*goldap.SearchResult, error) {
			if req.Filter != `(member=uid=alice,ou=Users,dc=example,dc=com)` {
				t.Fatalf("unexpected group filter %q", req.Filter)
			}

			return searchResult(
				testEntry("cn=admins,ou=Groups,dc=example,dc=com", nil),
				testEntry("cn=users,ou=Groups,dc=example,dc=com", nil),
			), nil
		},
	}
	client := clientWithConn(opts, conn)

	if err := client.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	groups, err := client.GroupsOfUser("uid=alice,ou=Users,dc=example,dc=com")
	if err != nil {
		t.Fatalf("GroupsOfUser() error = %v", err)
	}

	if len(groups) != 2 || groups[0] != "cn=admins,ou=Groups,dc=example,dc=com" {
		t.Fatalf("unexpected groups %v", groups)
	}
}

func TestClientGroupsOfUser_DisabledWithoutFilter(t *testing.T) {
	conn := &fakeConn{}
	client := clientWithConn(serviceOpts(), conn)

	if err := client.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	groups, err := client.GroupsOfUser("uid=alice,dc=example,dc=com")
	if err != nil {
		t.Fatalf("GroupsOfUser() error = %v", err)
	}

	if groups != nil {
		t.Fatalf("expected no groups, got %v", groups)
	}

	if len(conn.searches) != 0 {
		t.Fatal("no search must be issued without a memberOf filter")
	}
}

func TestClientGroupsOfUser_NotConnected(t *testing.T) {
	client := clientWithConn(serviceOpts(), &fakeConn{})

	if _, err := client.GroupsOfUser("uid=alice,dc=example,dc=com"); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

func TestClientConnect_Idempotent(t *testing.T) {
	dials := 0
	conn := &fakeConn{}
	client := clientWithConn(serviceOpts(), conn)
	client.dial = func(_ *ConnectionOptions) (Conn, error) {
		dials++
		return conn, nil
	}

	if err := client.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if err := client.Connect(); err != nil {
		t.Fatalf("second Connect() error = %v", err)
	}

	if dials != 1 {
		t.Fatalf("expected 1 dial, got %d", dials)
	}
}

func TestClientConnect_UnknownType(t *testing.T) {
	opts := serviceOpts()
	opts.Type = "novell"
	client := clientWithConn(opts, &fakeConn{})

	if err := client.Connect(); !errors.Is(err, ErrUnknownBindStrategy) {
		t.Fatalf("expected ErrUnknownBindStrategy, got %v", err)
	}
}

func TestClientClose(t *testing.T) {
	conn := &fakeConn{}
	client := clientWithConn(serviceOpts(), conn)

	// Close without Connect is a no-op.
	client.Close()

	if err := client.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	client.Close()

	if !conn.closed {
		t.Fatal("underlying connection not closed")
	}
}

func TestClientTestConnection(t *testing.T) {
	conn := &fakeConn{}
	client := clientWithConn(serviceOpts(), conn)

	if err := client.TestConnection(); err != nil {
		t.Fatalf("TestConnection() error = %v", err)
	}

	if len(conn.binds) != 1 || conn.binds[0].dn != "cn=service,dc=example,dc=com" {
		t.Fatalf("expected a service bind, got %+v", conn.binds)
	}

	if !conn.closed {
		t.Fatal("TestConnection must close the connection")
	}
}
