package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestStrategies(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
	}{
		{name: "plain", strategy: "plain"},
		{name: "bcrypt", strategy: "bcrypt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.strategy)
			if err != nil {
				t.Fatalf("New(%q): %v", tt.strategy, err)
			}
			if b, ok := a.(Bcrypt); ok {
				b.Cost = bcrypt.MinCost
				a = b
			}

			sealed, err := a.Seal("s3cret")
			if err != nil {
				t.Fatalf("Seal: %v", err)
			}
			if !a.Verify(sealed, "s3cret") {
				t.Errorf("Verify rejected the sealed password")
			}
			if a.Verify(sealed, "S3cret") {
				t.Errorf("Verify accepted a different password")
			}
		})
	}
}

func TestPlain_StoresVerbatim(t *testing.T) {
	sealed, _ := Plain{}.Seal("x")
	if sealed != "x" {
		t.Fatalf("Seal = %q, want verbatim", sealed)
	}
}

func TestBcrypt_RejectsMalformedHash(t *testing.T) {
	if (Bcrypt{}).Verify("not-a-hash", "x") {
		t.Fatal("Verify accepted a malformed hash")
	}
}

func TestNew_Unknown(t *testing.T) {
	if _, err := New("argon2"); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}
