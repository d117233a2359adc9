package ws

import (
	"github.com/google/uuid"
)

// RoomKey derives the shared room name for a conversation pair. Both ids are
// rendered canonically, sorted, and concatenated, so both participants compute
// the same key with no coordination: RoomKey(a, b) == RoomKey(b, a).
//
// Canonical UUID strings are fixed-width, so the concatenation cannot alias
// two distinct pairs.
func RoomKey(a, b uuid.UUID) string {
	u1, u2 := a.String(), b.String()
	if u1 > u2 {
		u1, u2 = u2, u1
	}
	return u1 + u2
}
