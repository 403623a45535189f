// Package db wires the gorm-backed persistence layer to the interfaces the
// authentication flow consumes.
package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dirauthd/dirauthd/internal/db/controller/account"
	"github.com/dirauthd/dirauthd/internal/db/controller/role"
	"github.com/dirauthd/dirauthd/internal/db/models"
)

// AccountStore is the gorm-backed account store.
type AccountStore struct {
	db *gorm.DB
	// AllowCreation gates auto-provisioning at the store level. When
	// false, CreateAccount refuses by returning a nil account.
	AllowCreation bool
}

// NewAccountStore creates an account store on the given database handle.
func NewAccountStore(db *gorm.DB, allowCreation bool) *AccountStore {
	return &AccountStore{db: db, AllowCreation: allowCreation}
}

// FindActiveAccount returns the active account for an identifier and
// provider, or nil when none exists.
func (s *AccountStore) FindActiveAccount(identifier, providerName string) (*models.Account, error) {
	acct, err := account.FindActive(s.db, identifier, providerName)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return acct, nil
}

// CreateAccount provisions a new account, or returns nil when the store is
// configured to refuse auto-provisioning.
func (s *AccountStore) CreateAccount(identifier, providerName string) (*models.Account, error) {
	if !s.AllowCreation {
		return nil, nil
	}

	return account.Create(s.db, identifier, providerName)
}

// UpdateAccount persists the account's changed fields.
func (s *AccountStore) UpdateAccount(acct *models.Account) error {
	return account.Save(s.db, acct)
}

// RoleRegistry answers role existence queries from the roles table.
type RoleRegistry struct {
	db *gorm.DB
}

// NewRoleRegistry creates a registry on the given database handle.
func NewRoleRegistry(db *gorm.DB) *RoleRegistry {
	return &RoleRegistry{db: db}
}

// HasRole reports whether the role identifier is known.
func (r *RoleRegistry) HasRole(identifier string) (bool, error) {
	return role.Exists(r.db, identifier)
}
