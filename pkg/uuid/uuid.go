package uuid

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// UUID is a 16-byte RFC 4122 identifier.
type UUID [16]byte

var Nil UUID

// New returns a new random UUID v4.
func New() UUID {
	var u UUID
	if _, err := io.ReadFull(rand.Reader, u[:]); err != nil {
		// crypto/rand.Reader never fails on supported platforms
		panic(err)
	}
	// version (4)
	u[6] = (u[6] & 0x0f) | 0x40
	// variant (RFC 4122)
	u[8] = (u[8] & 0x3f) | 0x80
	return u
}

// String formats the UUID as XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX.
func (u UUID) String() string {
	var js [36]byte
	encodeHex(js[:], u)
	return string(js[:])
}

func (u UUID) IsNil() bool {
	return u == Nil
}

// Parse parses the canonical string form into a UUID.
func Parse(s string) (UUID, error) {
	var u UUID
	s = strings.ToLower(s)

	parts := strings.Split(s, "-")
	if len(parts) != 5 {
		return UUID{}, errors.New("invalid uuid format")
	}
	// canonical grouping is 8-4-4-4-12
	for i, want := range [5]int{8, 4, 4, 4, 12} {
		if len(parts[i]) != want {
			return UUID{}, errors.New("invalid uuid format")
		}
	}

	b, err := hex.DecodeString(strings.Join(parts, ""))
	if err != nil {
		return UUID{}, err
	}
	copy(u[:], b)
	return u, nil
}

// ParseBytes parses a UUID from []byte.
func ParseBytes(b []byte) (UUID, error) {
	return Parse(string(b))
}

// MarshalJSON serializes the UUID as a string.
func (u UUID) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON parses a UUID from a JSON string.
func (u *UUID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (u UUID) MarshalText() ([]byte, error) {
	var js [36]byte
	encodeHex(js[:], u)
	return js[:], nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UUID) UnmarshalText(data []byte) error {
	id, err := ParseBytes(data)
	if err != nil {
		return err
	}
	*u = id
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (u UUID) MarshalBinary() ([]byte, error) {
	return u[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (u *UUID) UnmarshalBinary(data []byte) error {
	if len(data) != 16 {
		return fmt.Errorf("invalid UUID (got %d bytes)", len(data))
	}
	copy(u[:], data)
	return nil
}

// encodeHex writes the canonical text form (xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx).
func encodeHex(dst []byte, u UUID) {
	hex.Encode(dst[0:8], u[0:4])
	dst[8] = '-'
	hex.Encode(dst[9:13], u[4:6])
	dst[13] = '-'
	hex.Encode(dst[14:18], u[6:8])
	dst[18] = '-'
	hex.Encode(dst[19:23], u[8:10])
	dst[23] = '-'
	hex.Encode(dst[24:], u[10:16])
}
