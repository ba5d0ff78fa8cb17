package password

import (
	"strings"
	"testing"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasherWithCost(4) // minimum cost keeps the test fast

	digest, err := h.Hash("securepassword123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "securepassword123" {
		t.Fatalf("digest must not equal the plaintext")
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Fatalf("expected bcrypt digest, got %q", digest)
	}

	if !h.Verify("securepassword123", digest) {
		t.Fatalf("Verify rejected the correct password")
	}
	if h.Verify("WRONGpassword", digest) {
		t.Fatalf("Verify accepted a wrong password")
	}
}

func TestHasher_FreshSaltPerCall(t *testing.T) {
	h := NewHasherWithCost(4)

	first, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same input must differ (per-call salt)")
	}
}

func TestHasher_MalformedDigestIsMismatch(t *testing.T) {
	h := NewHasher()

	for _, digest := range []string{"", "not-a-digest", "$2a$10$truncated"} {
		if h.Verify("anything", digest) {
			t.Fatalf("Verify accepted malformed digest %q", digest)
		}
	}
}

func TestNewHasherWithCost_OutOfRange(t *testing.T) {
	// Out-of-range costs fall back to the default rather than failing later.
	h := NewHasherWithCost(99)
	digest, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !h.Verify("pw", digest) {
		t.Fatalf("digest from fallback cost did not verify")
	}
}
