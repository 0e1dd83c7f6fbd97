package promotoken

import (
	"testing"
	"time"

	"flowershop-api/internal/domain"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewHMAC([]byte("test-secret"), time.Hour)
	state := domain.PromoState{Code: "SAVE10", DiscountPercent: 10}

	token, err := codec.Encode(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != state {
		t.Fatalf("expected %+v, got %+v", state, got)
	}
}

func TestCodecRejectsTamperedToken(t *testing.T) {
	codec := NewHMAC([]byte("test-secret"), time.Hour)
	token, err := codec.Encode(domain.PromoState{Code: "SAVE10", DiscountPercent: 10})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := codec.Decode(token + "x"); err == nil {
		t.Fatalf("expected error for tampered token")
	}
}

func TestCodecRejectsWrongSecret(t *testing.T) {
	issuer := NewHMAC([]byte("secret-a"), time.Hour)
	verifier := NewHMAC([]byte("secret-b"), time.Hour)
	token, err := issuer.Encode(domain.PromoState{Code: "SAVE10", DiscountPercent: 10})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := verifier.Decode(token); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestCodecRejectsExpiredToken(t *testing.T) {
	codec := NewHMAC([]byte("test-secret"), -time.Minute)
	token, err := codec.Encode(domain.PromoState{Code: "SAVE10", DiscountPercent: 10})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := codec.Decode(token); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestCodecRejectsGarbage(t *testing.T) {
	codec := NewHMAC([]byte("test-secret"), time.Hour)
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Decode(token); err == nil {
			t.Fatalf("expected error for %q", token)
		}
	}
}
