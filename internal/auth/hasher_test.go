package auth

import (
	"strings"
	"testing"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(4)

	digest, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Fatalf("expected bcrypt digest, got %q", digest)
	}
	if !h.Verify("pw1", digest) {
		t.Fatalf("expected digest to verify")
	}
	if h.Verify("wrong", digest) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestBcryptHasher_DistinctSalts(t *testing.T) {
	h := NewBcryptHasher(4)

	a, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	b, err := h.Hash("same")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if a == b {
		t.Fatalf("expected per-password salts to produce distinct digests")
	}
}

func TestBcryptHasher_LegacyDigest(t *testing.T) {
	h := NewBcryptHasher(4)

	digest := LegacyHash("oldpass")
	if LegacyHash("oldpass") != digest {
		t.Fatalf("legacy digest must be deterministic")
	}
	if !h.Verify("oldpass", digest) {
		t.Fatalf("expected legacy digest to verify")
	}
	if h.Verify("otherpass", digest) {
		t.Fatalf("expected wrong password to fail against legacy digest")
	}
}
