// internal/planner/identity.go

package planner

import (
	"strconv"
	"time"
)

// Identity convention: ids minted inside a guest session are the creation
// time in Unix milliseconds rendered as a decimal string, which stays at or
// under 15 characters for centuries. Ids assigned by the remote store are
// opaque strings longer than that. Classification by length is therefore the
// compatibility rule for payloads whose origin is unknown; everywhere the
// creation site is in hand, the explicit signal (an empty id means a fresh
// record) is used instead and the heuristic never runs.
const localIDMaxLen = 15

// IDClass says what a save should do with a record carrying this id.
type IDClass int

const (
	// IDClassInsert: the id is not a locally-minted identity, so the record
	// is treated as new and inserted (the store assigns the identity).
	IDClassInsert IDClass = iota
	// IDClassUpsert: the id has the locally-minted shape; update in place,
	// falling back to append when no such record exists.
	IDClassUpsert
)

// ClassifyID applies the length rule: longer than 15 characters means
// insert, anything else means update-or-upsert.
func ClassifyID(id string) IDClass {
	if len(id) > localIDMaxLen {
		return IDClassInsert
	}
	return IDClassUpsert
}

// NewLocalID mints a guest-session identity: the current Unix millisecond
// timestamp in decimal form.
func NewLocalID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
