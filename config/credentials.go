package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// UserEntry is one dashboard user from the credentials file.
// Either Password or PasswordHash (bcrypt) must be set.
type UserEntry struct {
	Password     string `toml:"password"`
	PasswordHash string `toml:"password_hash"`
}

// CredentialsFile is the layout of the users TOML file
type CredentialsFile struct {
	Users map[string]UserEntry `toml:"users"`
}

// LoadCredentials reads the users file keyed by username
func LoadCredentials(path string) (map[string]UserEntry, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	return ParseCredentials(data)
}

// ParseCredentials decodes a users TOML document
func ParseCredentials(data []byte) (map[string]UserEntry, error) {
	var file CredentialsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	users := make(map[string]UserEntry, len(file.Users))
	for name, entry := range file.Users {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("credentials: empty username")
		}
		if entry.Password == "" && entry.PasswordHash == "" {
			return nil, fmt.Errorf("credentials: user %q has no password", name)
		}
		users[name] = entry
	}
	return users, nil
}
