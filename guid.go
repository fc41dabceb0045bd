//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"strings"

	"github.com/google/uuid"

	"github.com/obinnaokechukwu/reapgo/errors"
)

// Guid identifies a track or FX across sessions.
//
// The host stores GUIDs in the Windows layout, where the first three
// fields are little-endian. Guid keeps the canonical (RFC 4122) byte order
// and converts at the boundary.
type Guid struct {
	id uuid.UUID
}

// GuidFromRaw converts a host GUID.
func GuidFromRaw(b [16]byte) Guid {
	return Guid{id: uuid.UUID(swapGuid(b))}
}

// GuidFromUUID wraps a canonical UUID.
func GuidFromUUID(id uuid.UUID) Guid {
	return Guid{id: id}
}

// ParseGuid parses the host's "{XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX}"
// form. Braces are optional.
func ParseGuid(s string) (Guid, error) {
	t := strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	if len(t) != 36 {
		return Guid{}, errors.InvalidArgument("parse guid", "malformed guid", s)
	}
	id, err := uuid.Parse(t)
	if err != nil {
		return Guid{}, errors.InvalidArgument("parse guid", err.Error(), s)
	}
	return Guid{id: id}, nil
}

// Raw returns the bytes in the host's layout.
func (g Guid) Raw() [16]byte {
	return swapGuid(g.id)
}

// UUID returns the canonical UUID.
func (g Guid) UUID() uuid.UUID { return g.id }

// IsZero reports whether g is the nil GUID.
func (g Guid) IsZero() bool { return g.id == uuid.Nil }

// String formats g the way the host does.
func (g Guid) String() string {
	return "{" + strings.ToUpper(g.id.String()) + "}"
}

// swapGuid converts between the Windows and canonical layouts. It is its
// own inverse.
func swapGuid(b [16]byte) [16]byte {
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
	b[4], b[5] = b[5], b[4]
	b[6], b[7] = b[7], b[6]
	return b
}
