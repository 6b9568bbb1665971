package session

import (
	"fmt"

	"github.com/99designs/keyring"
)

const (
	serviceName = "shopdesk"
	tokenKey    = "session-token"
)

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/shopdesk/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("shopdesk-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// readToken retrieves the stored session token from the system keyring.
func readToken() (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(tokenKey)
	if err != nil {
		return "", fmt.Errorf("getting session token: %w", err)
	}

	return string(item.Data), nil
}

// writeToken stores the session token in the system keyring.
func writeToken(token string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  tokenKey,
		Data: []byte(token),
	})
	if err != nil {
		return fmt.Errorf("storing session token: %w", err)
	}

	return nil
}

// deleteToken removes the session token from the system keyring.
func deleteToken() error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(tokenKey)
	if err != nil {
		return fmt.Errorf("deleting session token: %w", err)
	}

	return nil
}
