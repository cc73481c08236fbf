// Package access gates CLI generation behind an optional shared access key.
package access

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost used when ACCESS_BCRYPT_COST is not set.
const DefaultCost = 12

// KeyConfig holds configuration for access key hashing and verification.
type KeyConfig struct {
	BcryptCost int
	Pepper     string // optional global secret appended before hashing
}

// NewKeyConfig creates a key configuration from environment variables.
// It reads ACCESS_BCRYPT_COST (default: 12) and optionally ACCESS_KEY_PEPPER.
func NewKeyConfig() (*KeyConfig, error) {
	cost := DefaultCost
	if costStr := os.Getenv("ACCESS_BCRYPT_COST"); costStr != "" {
		parsed, err := strconv.Atoi(costStr)
		if err != nil {
			return nil, fmt.Errorf("invalid ACCESS_BCRYPT_COST: %v", err)
		}
		cost = parsed
	}

	config := &KeyConfig{
		BcryptCost: cost,
		Pepper:     os.Getenv("ACCESS_KEY_PEPPER"),
	}
	if err := config.normalize(); err != nil {
		return nil, err
	}
	return config, nil
}

// normalize validates the configuration.
func (c *KeyConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

func (c *KeyConfig) peppered(key string) []byte {
	return []byte(key + c.Pepper)
}

// HashKey hashes an access key using bcrypt (with optional pepper).
func (c *KeyConfig) HashKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("access key is empty")
	}
	hash, err := bcrypt.GenerateFromPassword(c.peppered(key), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash access key: %w", err)
	}
	return string(hash), nil
}

// VerifyKey verifies an access key against a stored hash (with optional pepper).
func (c *KeyConfig) VerifyKey(key, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), c.peppered(key)) == nil
}
