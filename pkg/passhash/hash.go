package passhash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Tunables. Aim for ~150-300 ms per hash on production hardware.
const (
	DefaultIterations = 210_000
	SaltLen           = 16
	KeyLen            = 32
)

// HashPassword creates a salted PBKDF2-HMAC-SHA256 hash, returning an encoded string:
// pbkdf2_sha256$<iterations>$<saltB64>$<dkB64>
func HashPassword(password string) (string, error) {
	return HashPasswordWithIters(password, DefaultIterations)
}

func HashPasswordWithIters(password string, iterations int) (string, error) {
	if iterations <= 0 {
		return "", errors.New("iterations must be > 0")
	}
	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("rand.Read: %w", err)
	}
	dk := pbkdf2.Key([]byte(password), salt, iterations, KeyLen, sha256.New)

	enc := fmt.Sprintf(
		"pbkdf2_sha256$%d$%s$%s",
		iterations,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(dk),
	)
	for i := range dk {
		dk[i] = 0
	}
	return enc, nil
}

// VerifyPassword compares a plaintext password with an encoded PBKDF2 hash.
// Returns true on match (constant-time).
func VerifyPassword(password, encoded string) (bool, error) {
	const prefix = "pbkdf2_sha256$"
	if !strings.HasPrefix(encoded, prefix) {
		return false, errors.New("unsupported hash format/prefix")
	}
	parts := strings.Split(encoded[len(prefix):], "$")
	if len(parts) != 3 {
		return false, errors.New("malformed hash")
	}

	iters, err := strconv.Atoi(parts[0])
	if err != nil || iters <= 0 {
		return false, errors.New("invalid iterations")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return false, errors.New("invalid salt")
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil || len(want) == 0 {
		return false, errors.New("invalid derived key")
	}

	got := pbkdf2.Key([]byte(password), salt, iters, len(want), sha256.New)
	ok := subtle.ConstantTimeCompare(got, want) == 1

	for i := range got {
		got[i] = 0
	}
	return ok, nil
}
