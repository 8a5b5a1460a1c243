package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"scheduleboard/server/config"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrUnknownUser        = errors.New("unknown user")
	ErrInvalidPassword    = errors.New("invalid password")
)

// Credential is the stored secret of one user
type Credential struct {
	Password     string
	PasswordHash string
}

// Authenticator checks logins against a fixed username -> credential map
type Authenticator struct {
	users map[string]Credential
}

// NewAuthenticator copies the configured users into an Authenticator
func NewAuthenticator(users map[string]config.UserEntry) *Authenticator {
	a := &Authenticator{users: make(map[string]Credential, len(users))}
	for name, entry := range users {
		a.users[name] = Credential{
			Password:     entry.Password,
			PasswordHash: entry.PasswordHash,
		}
	}
	return a
}

// Check verifies a username/password pair with a direct key lookup
func (a *Authenticator) Check(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrMissingCredentials
	}

	cred, ok := a.users[username]
	if !ok {
		return ErrUnknownUser
	}

	if cred.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
			return ErrInvalidPassword
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(cred.Password), []byte(password)) != 1 {
		return ErrInvalidPassword
	}
	return nil
}

// Len returns the number of configured users
func (a *Authenticator) Len() int {
	return len(a.users)
}
