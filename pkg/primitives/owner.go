package primitives

import (
	"fmt"
	"sync/atomic"
)

// OwnerToken identifies a single thread of control for lock ownership.
// Tokens compare by pointer identity, so two separately created tokens are
// never considered the same owner. Goroutines carry no usable ambient
// identity, which is why ownership is keyed on an explicit token passed at
// acquire time instead of on the calling goroutine.
type OwnerToken struct {
	id int64
}

var ownerCounter int64

// NewOwnerToken creates a new unique owner token
func NewOwnerToken() *OwnerToken {
	return &OwnerToken{
		id: atomic.AddInt64(&ownerCounter, 1),
	}
}

func (t *OwnerToken) ID() int64 {
	return t.id
}

func (t *OwnerToken) String() string {
	return fmt.Sprintf("OWNER-%d", t.id)
}

// Equals checks if two owner tokens identify the same caller
func (t *OwnerToken) Equals(other *OwnerToken) bool {
	if other == nil {
		return false
	}
	return t == other
}
