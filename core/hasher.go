package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// HashParams defines the argon2id cost factors.
type HashParams struct {
	Memory      uint32 // RAM usage in KB
	Iterations  uint32 // passes over the memory
	Parallelism uint8  // threads used per hash
	SaltLength  uint32 // random salt length in bytes
	KeyLength   uint32 // derived key length in bytes
}

// DefaultHashParams balances login latency against brute-force cost for a
// small single-tenant deployment.
var DefaultHashParams = HashParams{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// Hasher produces and verifies salted argon2id password hashes in the
// self-describing PHC string format.
type Hasher struct {
	params HashParams
}

func NewHasher(params HashParams) *Hasher {
	if params.SaltLength == 0 || params.KeyLength == 0 {
		params = DefaultHashParams
	}
	return &Hasher{params: params}
}

// Hash derives an argon2id hash of password under a fresh random salt.
// Hashing the same password twice yields different strings.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt,
		h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.Memory, h.params.Iterations, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
	return encoded, nil
}

// Verify re-derives the hash of password under the salt and parameters stored
// in encoded and compares in constant time. A well-formed mismatch returns
// (false, nil); only an unparseable stored string is an error.
func (h *Hasher) Verify(password, encoded string) (bool, error) {
	params, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrMalformedHash, err)
	}

	other := argon2.IDKey([]byte(password), salt,
		params.Iterations, params.Memory, params.Parallelism, params.KeyLength)

	return subtle.ConstantTimeCompare(key, other) == 1, nil
}

// decodeHash parses a "$argon2id$v=19$m=..,t=..,p=..$salt$hash" string.
func decodeHash(encoded string) (HashParams, []byte, []byte, error) {
	var p HashParams
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("wrong structure")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, err
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("incompatible argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return p, nil, nil, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, err
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, err
	}
	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(key))
	return p, salt, key, nil
}
