package keyring

import (
	"errors"
	"fmt"

	"github.com/julianstephens/workform/internal/constants"
	"github.com/zalando/go-keyring"
)

var (
	// ErrNotFound is returned when no secret is stored under the key
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Keys that the CLI exposes through `workform keyring`.
var Keys = []string{
	constants.DefaultKeyringUser,
	constants.KeyringSMTPPassword,
	constants.KeyringSessionSecret,
}

// KnownKey reports whether key is one of Keys.
func KnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Get retrieves the secret stored under key.
// Returns ErrNotFound if nothing is stored.
func Get(key string) (string, error) {
	secret, err := keyring.Get(constants.AppName, key)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// Set stores secret under key.
func Set(key, secret string) error {
	if secret == "" {
		return fmt.Errorf("%s cannot be empty", key)
	}
	if err := keyring.Set(constants.AppName, key, secret); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", key, err)
	}
	return nil
}

// Delete removes the secret stored under key.
func Delete(key string) error {
	if err := keyring.Delete(constants.AppName, key); err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", key, err)
	}
	return nil
}

// Lookup returns fallback when it is set, otherwise the secret stored under
// key. A missing or unreachable keyring yields "".
func Lookup(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	secret, err := Get(key)
	if err != nil {
		return ""
	}
	return secret
}

// GetConnectionString retrieves the database connection string from the OS keyring.
func GetConnectionString() (string, error) {
	return Get(constants.DefaultKeyringUser)
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return Set(constants.DefaultKeyringUser, connStr)
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	return Delete(constants.DefaultKeyringUser)
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
