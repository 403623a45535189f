package ldap

import goldap "github.com/go-ldap/ldap/v3"

// Entry is a directory entry: a distinguished name plus its attributes.
// Directory attributes are multi-valued, so every attribute maps to an
// ordered list of string values. Entries are read-only snapshots of a
// search result.
type Entry struct {
	DN         string
	Attributes map[string][]string
}

func newEntry(e *goldap.Entry) *Entry {
	attrs := make(map[string][]string, len(e.Attributes))
	for _, a := range e.Attributes {
		values := make([]string, len(a.Values))
		copy(values, a.Values)
		attrs[a.Name] = values
	}

	return &Entry{
		DN:         e.DN,
		Attributes: attrs,
	}
}

// Values returns all values of the named attribute, or nil if the entry
// does not carry it.
func (e *Entry) Values(name string) []string {
	return e.Attributes[name]
}

// Value returns the first value of the named attribute, or "".
func (e *Entry) Value(name string) string {
	values := e.Attributes[name]
	if len(values) == 0 {
		return ""
	}

	return values[0]
}
