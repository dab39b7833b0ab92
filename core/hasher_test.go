package core

import (
	"errors"
	"strings"
	"testing"
)

// fastHashParams keeps argon2 cheap enough for unit tests.
var fastHashParams = HashParams{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func TestHashAndVerify_Roundtrip(t *testing.T) {
	t.Parallel()

	h := NewHasher(fastHashParams)
	encoded, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected hash format: %q", encoded)
	}

	ok, err := h.Verify("correct horse battery staple", encoded)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatalf("expected correct password to verify")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	t.Parallel()

	h := NewHasher(fastHashParams)
	encoded, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := h.Verify("pw2", encoded)
	if err != nil {
		t.Fatalf("Verify should not error on a well-formed mismatch: %v", err)
	}
	if ok {
		t.Fatalf("wrong password must not verify")
	}
}

func TestHash_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	h := NewHasher(fastHashParams)
	first, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ")
	}

	for _, encoded := range []string{first, second} {
		ok, err := h.Verify("same password", encoded)
		if err != nil || !ok {
			t.Fatalf("both hashes must verify the password: ok=%v err=%v", ok, err)
		}
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	t.Parallel()

	h := NewHasher(fastHashParams)
	cases := []string{
		"",
		"not a hash",
		"$argon2id$v=19$m=8192,t=1,p=1$onlyfiveparts",
		"$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA",
	}
	for _, encoded := range cases {
		if _, err := h.Verify("pw", encoded); !errors.Is(err, ErrMalformedHash) {
			t.Fatalf("expected ErrMalformedHash for %q, got %v", encoded, err)
		}
	}
}
