package ldap

import (
	"errors"
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	opts := &ConnectionOptions{}
	opts.applyDefaults()

	if opts.Type != ConnectionTypePlain {
		t.Fatalf("default type = %q", opts.Type)
	}

	if opts.Port != 389 {
		t.Fatalf("default port = %d", opts.Port)
	}

	if opts.Timeout != 10*time.Second {
		t.Fatalf("default timeout = %v", opts.Timeout)
	}

	if opts.Protocol.Version != 3 {
		t.Fatalf("default protocol version = %d", opts.Protocol.Version)
	}
}

func TestApplyDefaults_SSLPort(t *testing.T) {
	opts := &ConnectionOptions{UseSSL: true}
	opts.applyDefaults()

	if opts.Port != 636 {
		t.Fatalf("default ssl port = %d", opts.Port)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	opts := &ConnectionOptions{
		Type:    ConnectionTypeActiveDirectory,
		Port:    10389,
		Timeout: time.Second,
	}
	opts.applyDefaults()

	if opts.Type != ConnectionTypeActiveDirectory || opts.Port != 10389 || opts.Timeout != time.Second {
		t.Fatalf("explicit values overwritten: %+v", opts)
	}
}

func TestOptionsValidate(t *testing.T) {
	valid := func() *ConnectionOptions {
		o := &ConnectionOptions{
			Host:   "ldap.example.com",
			BaseDN: "dc=example,dc=com",
			Filter: FilterOptions{Account: "(uid=?)"},
		}
		o.applyDefaults()

		return o
	}

	tests := []struct {
		name   string
		mutate func(o *ConnectionOptions)
		want   error
	}{
		{"valid", func(_ *ConnectionOptions) {}, nil},
		{"missing host", func(o *ConnectionOptions) { o.Host = "" }, ErrMissingHost},
		{"missing base dn", func(o *ConnectionOptions) { o.BaseDN = "" }, ErrMissingBaseDN},
		{"missing account filter", func(o *ConnectionOptions) { o.Filter.Account = "" }, ErrMissingAccountFilter},
		{"filter without placeholder", func(o *ConnectionOptions) { o.Filter.Account = "(uid=alice)" }, ErrFilterWithoutPlaceholder},
		{"user dn without placeholder", func(o *ConnectionOptions) { o.User.DN = "uid=alice,dc=example,dc=com" }, ErrBindDNWithoutPlaceholder},
		{"protocol version 2", func(o *ConnectionOptions) { o.Protocol.Version = 2 }, ErrUnsupportedProtocolVersion},
		{"unknown type", func(o *ConnectionOptions) { o.Type = "novell" }, ErrUnknownBindStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid()
			tt.mutate(opts)

			err := opts.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}

				return
			}

			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBindDNTemplate(t *testing.T) {
	opts := &ConnectionOptions{
		Bind: BindOptions{DN: "uid=?,ou=Legacy,dc=example,dc=com"},
		User: UserOptions{DN: "uid=?,ou=Users,dc=example,dc=com"},
	}

	if got := opts.bindDNTemplate(); got != "uid=?,ou=Users,dc=example,dc=com" {
		t.Fatalf("user.dn must win, got %q", got)
	}

	opts.User.DN = ""
	if got := opts.bindDNTemplate(); got != "uid=?,ou=Legacy,dc=example,dc=com" {
		t.Fatalf("fallback to bind.dn, got %q", got)
	}
}

func TestSubstitute(t *testing.T) {
	if got := substitute("(uid=?)", "alice"); got != "(uid=alice)" {
		t.Fatalf("substitute filter = %q", got)
	}

	if got := substitute("dc=example,dc=com", "alice"); got != "dc=example,dc=com" {
		t.Fatalf("template without placeholder changed: %q", got)
	}
}
