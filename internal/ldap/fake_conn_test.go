package ldap

import (
	goldap "github.com/go-ldap/ldap/v3"
)

// bindCall records one simple bind observed by the fake connection.
type bindCall struct {
	dn       string
	password string
}

// fakeConn is an in-memory Conn for exercising bind strategies and the
// client without a directory server.
type fakeConn struct {
	binds     []bindCall
	anonBinds int
	closed    bool

	bindFn   func(dn, password string) error
	searchFn func(req *goldap.SearchRequest) (*goldap.SearchResult, error)

	searches []*goldap.SearchRequest
}

func (f *fakeConn) Bind(dn, password string) error {
	f.binds = append(f.binds, bindCall{dn: dn, password: password})

	if f.bindFn != nil {
		return f.bindFn(dn, password)
	}

	return nil
}

func (f *fakeConn) UnauthenticatedBind(_ string) error {
	f.anonBinds++
	return nil
}

func (f *fakeConn) Search(req *goldap.SearchRequest) (*goldap.SearchResult, error) {
	f.searches = append(f.searches, req)

	if f.searchFn != nil {
		return f.searchFn(req)
	}

	return &goldap.SearchResult{}, nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func testEntry(dn string, attrs map[string][]string) *goldap.Entry {
	entry := &goldap.Entry{DN: dn}
	for name, values := range attrs {
		entry.Attributes = append(entry.Attributes, &goldap.EntryAttribute{
			Name:   name,
			Values: values,
		})
	}

	return entry
}

func searchResult(entries ...*goldap.Entry) *goldap.SearchResult {
	return &goldap.SearchResult{Entries: entries}
}

// clientWithConn wires a client to a fake connection, bypassing the dialer.
func clientWithConn(opts *ConnectionOptions, conn *fakeConn) *Client {
	client := &Client{
		opts: opts,
		dial: func(_ *ConnectionOptions) (Conn, error) {
			return conn, nil
		},
	}
	opts.applyDefaults()

	return client
}
