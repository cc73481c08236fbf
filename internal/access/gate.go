package access

import "errors"

// ErrAccessDenied is returned when the access key does not match.
var ErrAccessDenied = errors.New("access denied: invalid access key")

// Gate decides whether a caller may run a generation.
type Gate interface {
	Check(key string) error
}

// OpenGate admits every caller. Used when no access key hash is configured.
type OpenGate struct{}

// Check always succeeds.
func (OpenGate) Check(string) error { return nil }

// BcryptGate compares access keys against a bcrypt hash.
type BcryptGate struct {
	hash   string
	config *KeyConfig
}

// NewBcryptGate returns a gate for the given hash.
func NewBcryptGate(hash string, config *KeyConfig) *BcryptGate {
	if config == nil {
		config = &KeyConfig{BcryptCost: DefaultCost}
	}
	return &BcryptGate{hash: hash, config: config}
}

// Check returns ErrAccessDenied unless key matches the stored hash.
func (g *BcryptGate) Check(key string) error {
	if key == "" || !g.config.VerifyKey(key, g.hash) {
		return ErrAccessDenied
	}
	return nil
}

// New returns an OpenGate for an empty hash and a BcryptGate otherwise.
func New(hash string, config *KeyConfig) Gate {
	if hash == "" {
		return OpenGate{}
	}
	return NewBcryptGate(hash, config)
}
