package client

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenLifetime is how long an admin token stays valid.
	TokenLifetime = 300 * time.Second

	// AdminAudience scopes admin tokens to the Admin API.
	AdminAudience = "/admin/"
)

// AdminKey is a parsed Admin API key.
type AdminKey struct {
	ID     string
	Secret []byte
}

// ParseAdminKey splits an "id:secret" Admin API key and decodes the hex
// secret.
func ParseAdminKey(raw string) (AdminKey, error) {
	if raw == "" {
		return AdminKey{}, &ConfigurationError{Setting: "admin_key", Message: "not set"}
	}

	id, secretHex, ok := strings.Cut(raw, ":")
	if !ok || id == "" || secretHex == "" {
		return AdminKey{}, &ConfigurationError{Setting: "admin_key", Message: "invalid (expected id:secret)"}
	}

	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		return AdminKey{}, &ConfigurationError{Setting: "admin_key", Message: "secret is not hexadecimal", Err: err}
	}

	return AdminKey{ID: id, Secret: secret}, nil
}

// IssueToken signs a fresh Admin API token for key, issued at now and
// expiring TokenLifetime later. Identical inputs produce identical tokens;
// timestamps have one second resolution.
func IssueToken(key AdminKey, now time.Time) (string, error) {
	iat := now.Unix()

	claims := jwt.MapClaims{
		"iat": iat,
		"exp": iat + int64(TokenLifetime/time.Second),
		"aud": AdminAudience,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = key.ID

	return token.SignedString(key.Secret)
}
