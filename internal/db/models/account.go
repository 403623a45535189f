package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// ErrInvalidRoleSet is returned when a stored role set cannot be decoded.
var ErrInvalidRoleSet = errors.New("invalid role set value")

// RoleSet is the list of role identifiers granted to an account. It is
// persisted as a JSON array in a single text column.
type RoleSet []string

// Value serializes the role set for storage.
func (r RoleSet) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}

	encoded, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}

	return string(encoded), nil
}

// Scan deserializes a stored role set.
func (r *RoleSet) Scan(value any) error {
	if value == nil {
		*r = RoleSet{}
		return nil
	}

	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), r)
	case []byte:
		return json.Unmarshal(v, r)
	default:
		return ErrInvalidRoleSet
	}
}

// Account represents a locally persisted directory account.
// Accounts are created on first successful directory authentication and
// carry the role set computed from the mapping policy, plus an optional
// one-way password verifier used for stand-in authentication when the
// directory is unreachable.
type Account struct {
	// ID is the unique identifier for the account.
	ID uint64 `gorm:"primaryKey"`
	// Active indicates whether the account may authenticate.
	Active bool `gorm:"default:true"`
	// Identifier is the login name as presented by the user.
	Identifier string `gorm:"size:255;not null;uniqueIndex:idx_accounts_identity"`
	// ProviderName names the authentication provider that owns this account.
	ProviderName string `gorm:"size:100;not null;uniqueIndex:idx_accounts_identity"`
	// DN is the distinguished name resolved for this account on the last
	// successful directory authentication.
	DN string `gorm:"size:512"`
	// Roles is the role set computed on the last successful authentication.
	Roles RoleSet `gorm:"type:text"`
	// CredentialsVerifier is an Argon2id hash of the account password,
	// cached only when stand-in authentication is enabled. Never stores
	// the plaintext.
	CredentialsVerifier string `gorm:"size:255"`
	// FailedAttempts counts consecutive failed authentications.
	FailedAttempts uint
	// LastSuccessfulAuthAt is the timestamp of the last successful authentication.
	LastSuccessfulAuthAt *time.Time
	// LastFailedAuthAt is the timestamp of the last failed authentication.
	LastFailedAuthAt *time.Time
	// CreatedAt is the timestamp when the account was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the account was last updated (managed by GORM).
	UpdatedAt time.Time
	// DeletedAt is the soft delete timestamp (nil if not deleted, managed by GORM).
	DeletedAt *time.Time
}

// TableName specifies the database table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// SetVerifier caches an Argon2id hash of the given password on the account.
func (a *Account) SetVerifier(password string) error {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return err
	}

	a.CredentialsVerifier = hash

	return nil
}

// ClearVerifier removes the cached password verifier.
func (a *Account) ClearVerifier() {
	a.CredentialsVerifier = ""
}

// VerifyPassword checks a plaintext password against the cached verifier.
// An account without a cached verifier never matches.
func (a *Account) VerifyPassword(password string) bool {
	if a.CredentialsVerifier == "" {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(password, a.CredentialsVerifier)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}

// AuthenticationAttempted records the outcome of an authentication attempt:
// a success stamps LastSuccessfulAuthAt and resets the failure counter, a
// failure stamps LastFailedAuthAt and increments it.
func (a *Account) AuthenticationAttempted(successful bool) {
	now := time.Now()

	if successful {
		a.LastSuccessfulAuthAt = &now
		a.FailedAttempts = 0

		return
	}

	a.LastFailedAuthAt = &now
	a.FailedAttempts++
}
