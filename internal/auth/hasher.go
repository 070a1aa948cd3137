package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and verifies password digests.
type Hasher interface {
	Hash(password string) (string, error)
	// Verify reports whether candidate matches the stored digest.
	// A mismatch is a normal negative result, not an error.
	Verify(candidate, digest string) bool
}

// BcryptHasher is the default Hasher: per-password random salt, adaptive cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a BcryptHasher. Cost values outside the bcrypt
// range fall back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h *BcryptHasher) Verify(candidate, digest string) bool {
	// Records written by old builds carry a hex sha256 digest instead of a
	// bcrypt string; accept those so existing accounts keep working.
	if !strings.HasPrefix(digest, "$2") {
		return legacyVerify(candidate, digest)
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(candidate)) == nil
}

// legacySalt is the static developer salt used by pre-bcrypt builds. It is
// kept for verification only; new digests are always bcrypt.
const legacySalt = "kitchen-system-dev-salt"

// LegacyHash computes the deterministic sha256(password + static salt) digest
// of older builds. Exported for migration tooling and tests.
func LegacyHash(password string) string {
	sum := sha256.Sum256([]byte(password + legacySalt))
	return hex.EncodeToString(sum[:])
}

func legacyVerify(candidate, digest string) bool {
	computed := LegacyHash(candidate)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
