// Package account provides persistence operations for directory accounts.
package account

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dirauthd/dirauthd/internal/db/models"
)

const identityQueryPattern = "identifier = ? AND provider_name = ? AND active = ?"

var (
	// ErrAccountNotFound is returned when no matching active account exists.
	ErrAccountNotFound = errors.New("account not found")
	// ErrIdentifierEmpty is returned when an operation is attempted with an empty identifier.
	ErrIdentifierEmpty = errors.New("account identifier cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// FindActive retrieves the active account for an identifier and provider.
func FindActive(db *gorm.DB, identifier, providerName string) (*models.Account, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if identifier == "" {
		return nil, ErrIdentifierEmpty
	}

	var acct models.Account
	result := db.Where(identityQueryPattern, identifier, providerName, true).First(&acct)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, result.Error
	}

	return &acct, nil
}

// Create inserts a new active account for an identifier and provider.
func Create(db *gorm.DB, identifier, providerName string) (*models.Account, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if identifier == "" {
		return nil, ErrIdentifierEmpty
	}

	acct := &models.Account{
		Active:       true,
		Identifier:   identifier,
		ProviderName: providerName,
		Roles:        models.RoleSet{},
	}

	result := db.Create(acct)
	if result.Error != nil {
		return nil, result.Error
	}

	return acct, nil
}

// Save persists all changed fields of an existing account.
func Save(db *gorm.DB, acct *models.Account) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Save(acct)

	return result.Error
}
