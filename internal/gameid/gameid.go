// Package gameid provides the time-ordered 128-bit identifiers used for
// stored image filenames and vote group ids. The identifiers are RFC 4122
// version 1 UUIDs, but callers never see the dashed form: they are rendered
// as uppercase hex, and the time fields are exposed through named accessors
// so the asset store's shard math can be tested in isolation from generation.
package gameid

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID is a time-ordered unique identifier.
type ID uuid.UUID

// New generates a fresh identifier. Identifiers generated close together in
// time share high-order time bits, which the asset store relies on to
// cluster temporally adjacent uploads into the same shard directory.
func New() (ID, error) {
	u, err := uuid.NewUUID()
	if err != nil {
		return ID{}, fmt.Errorf("failed to generate identifier: %w", err)
	}
	return ID(u), nil
}

// Parse decodes an identifier from its 32-character uppercase hex rendering.
func Parse(s string) (ID, error) {
	if len(s) != 32 {
		return ID{}, fmt.Errorf("invalid identifier length %d", len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return ID{}, fmt.Errorf("invalid identifier %q: %w", s, err)
	}
	var id ID
	copy(id[:], raw)
	return id, nil
}

// TimeLow returns the low 32 bits of the identifier's timestamp.
func (id ID) TimeLow() uint32 {
	return binary.BigEndian.Uint32(id[0:4])
}

// TimeMid returns the middle 16 bits of the identifier's timestamp.
func (id ID) TimeMid() uint16 {
	return binary.BigEndian.Uint16(id[4:6])
}

// Hex renders the identifier as uppercase hex with separators stripped,
// e.g. "970797DFD9F149269D394F9D43179D64". This is the form used for stored
// filenames and vote group ids.
func (id ID) Hex() string {
	return strings.ToUpper(hex.EncodeToString(id[:]))
}

// UUID returns the identifier in its underlying UUID form.
func (id ID) UUID() uuid.UUID {
	return uuid.UUID(id)
}

func (id ID) String() string {
	return id.Hex()
}
