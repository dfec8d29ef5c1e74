// Package auth persists the TMDb API key in the system keyring.
package auth

import (
	"github.com/lumina-cli/lumina/key"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

const (
	service = "lumina-cli"
	user    = "tmdb-api-key"
)

// SetAPIKey stores the TMDb API key.
func SetAPIKey(apiKey string) error {
	return keyring.Set(service, user, apiKey)
}

// GetAPIKey returns the stored TMDb API key.
func GetAPIKey() (string, error) {
	return keyring.Get(service, user)
}

// DeleteAPIKey removes the stored TMDb API key.
func DeleteAPIKey() error {
	return keyring.Delete(service, user)
}

// ResolveAPIKey prefers the configured key and falls back to the keyring.
// An empty string means no key is available anywhere.
func ResolveAPIKey() string {
	if k := viper.GetString(key.CatalogAPIKey); k != "" {
		return k
	}

	k, err := GetAPIKey()
	if err != nil {
		return ""
	}
	return k
}
