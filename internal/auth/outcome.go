package auth

import "github.com/dirauthd/dirauthd/internal/db/models"

// Status is the tri-state result of an authentication attempt.
type Status string

const (
	// StatusNoCredentials indicates the attempt was aborted because the
	// username or password was missing. No directory contact was made.
	StatusNoCredentials Status = "no-credentials"
	// StatusWrongCredentials indicates the credentials were rejected.
	StatusWrongCredentials Status = "wrong-credentials"
	// StatusSuccessful indicates the user is authenticated.
	StatusSuccessful Status = "successful"
)

// Credentials is a structured username and password pair.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// complete reports whether both parts of the credential pair are present.
func (c Credentials) complete() bool {
	return c.Username != "" && c.Password != ""
}

// Outcome describes how an authentication attempt ended. Account and Roles
// are populated only on StatusSuccessful.
type Outcome struct {
	Status  Status
	Account *models.Account
	Roles   []string
	// Standin is set when the attempt succeeded against the cached
	// password verifier instead of a live directory bind.
	Standin bool
}
