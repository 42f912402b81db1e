// Package auth stores djecho secrets in the system keyring.
package auth

import (
	"errors"
	"os"

	"github.com/djecho/djecho/constant"
	"github.com/zalando/go-keyring"
)

// Secret names a credential kept in the keyring.
type Secret struct {
	// Name is the keyring user entry.
	Name string
	// Env overrides the keyring when set, so .env files keep working.
	Env string
}

var (
	SubsonicPassword = Secret{Name: "subsonic-password", Env: "NAVIDROME_PASS"}
	ElevenLabsKey    = Secret{Name: "elevenlabs-api-key", Env: "ELEVENLABS_API_KEY"}
)

// ErrNotFound is returned when a secret is neither in the environment nor in the keyring.
var ErrNotFound = keyring.ErrNotFound

func Set(s Secret, value string) error {
	return keyring.Set(constant.App, s.Name, value)
}

// Get reads the environment first, then the keyring.
func Get(s Secret) (string, error) {
	if s.Env != "" {
		if value, ok := os.LookupEnv(s.Env); ok && value != "" {
			return value, nil
		}
	}

	return keyring.Get(constant.App, s.Name)
}

func Delete(s Secret) error {
	err := keyring.Delete(constant.App, s.Name)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// Has reports whether the secret can be resolved.
func Has(s Secret) bool {
	_, err := Get(s)
	return err == nil
}
