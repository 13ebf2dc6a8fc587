package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("jomok123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=4$") {
		t.Errorf("unexpected hash prefix: %s", hash)
	}

	hash2, err := HashPassword("jomok123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == hash2 {
		t.Error("two hashes of the same password should differ by salt")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("jomok123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
		wantErr  bool
	}{
		{name: "correct password", password: "jomok123", hash: hash, want: true},
		{name: "wrong password", password: "jomok124", hash: hash},
		{name: "empty password", password: "", hash: hash},
		{name: "not a hash", password: "jomok123", hash: "invalid", wantErr: true},
		{name: "wrong algorithm", password: "jomok123", hash: "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA", wantErr: true},
		{name: "wrong version", password: "jomok123", hash: "$argon2id$v=16$m=65536,t=1,p=4$c2FsdA$aGFzaA", wantErr: true},
		{name: "bad params", password: "jomok123", hash: "$argon2id$v=19$m=x,t=1,p=4$c2FsdA$aGFzaA", wantErr: true},
		{name: "bad salt", password: "jomok123", hash: "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VerifyPassword(tt.password, tt.hash)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformedHash) {
				t.Errorf("err = %v, want ErrMalformedHash", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqualString(t *testing.T) {
	if !EqualString("admin", "admin") {
		t.Error("equal strings should match")
	}
	if EqualString("admin", "admin2") || EqualString("", "admin") {
		t.Error("different strings should not match")
	}
}
