package testutil

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// SequentialGUIDs generates predictable list identifiers.
//
// The n-th call returns 00000000-0000-0000-0000-00000000000n (in hex), so
// golden output and assertions can name list IDs up front.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequentialGUIDs struct {
	mu  sync.Mutex
	seq uint64
}

// NewSequentialGUIDs creates a generator whose first GUID ends in 1.
func NewSequentialGUIDs() *SequentialGUIDs {
	return &SequentialGUIDs{}
}

// NewGUID returns the next identifier.
func (g *SequentialGUIDs) NewGUID() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012x", g.seq))
}
