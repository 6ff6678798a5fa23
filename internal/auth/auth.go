// Package auth stores QuickDeployer API keys in the OS keychain.
//
// Keys are stored per API host, so a staging key and a production key can
// live side by side.
package auth

import (
	"errors"
	"net/url"
	"os"
	"strings"

	"quickdeployer/qd/internal/util"
)

const ServiceName = "quickdeployer"

// EnvAPIKey, when set, takes precedence over any stored key.
const EnvAPIKey = "QUICKDEPLOYER_API_KEY"

var ErrTokenNotFound = errors.New("api key not found")

type Store interface {
	SetToken(host string, token string) error
	GetToken(host string) (string, error)
	DeleteToken(host string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// HostKey derives the keychain account name for a base URI: the lowercased
// host, or the normalized input when it does not parse as a URL.
func HostKey(baseURI string) string {
	u, err := url.Parse(strings.TrimSpace(baseURI))
	if err != nil || u.Host == "" {
		return util.NormalizeKey(baseURI)
	}
	return util.NormalizeKey(u.Host)
}

// Resolve returns the API key for baseURI, preferring the environment
// variable over the store. fromEnv reports which source won.
func Resolve(store Store, baseURI string) (key string, fromEnv bool, err error) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		return v, true, nil
	}
	key, err = store.GetToken(HostKey(baseURI))
	return key, false, err
}
