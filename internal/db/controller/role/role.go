// Package role provides lookup and seeding operations for roles.
package role

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dirauthd/dirauthd/internal/db/models"
)

const identifierQueryPattern = "identifier = ?"

var (
	// ErrRoleNotFound is returned when a role is not found.
	ErrRoleNotFound = errors.New("role not found")
	// ErrIdentifierEmpty is returned when a role identifier is empty.
	ErrIdentifierEmpty = errors.New("role identifier cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a role by its identifier.
func Get(db *gorm.DB, identifier string) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if identifier == "" {
		return nil, ErrIdentifierEmpty
	}

	var r models.Role
	result := db.Where(identifierQueryPattern, identifier).First(&r)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, result.Error
	}

	return &r, nil
}

// Exists reports whether a role with the given identifier is known.
func Exists(db *gorm.DB, identifier string) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}
	if identifier == "" {
		return false, nil
	}

	var count int64
	result := db.Model(&models.Role{}).Where(identifierQueryPattern, identifier).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// Ensure creates a role with the given identifier if it does not exist yet.
func Ensure(db *gorm.DB, identifier, description string) error {
	if db == nil {
		return ErrDBNil
	}
	if identifier == "" {
		return ErrIdentifierEmpty
	}

	exists, err := Exists(db, identifier)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	result := db.Create(&models.Role{
		Identifier:  identifier,
		Description: description,
	})

	return result.Error
}
