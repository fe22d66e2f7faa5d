package domain

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

const supportReferenceLength = 8

// NewOrderID returns a fresh partner order id.
func NewOrderID() string {
	return uuid.NewString()
}

// OrderRef is the single authoritative holder of a session's partner order id.
// Callers read Current at the moment of each outbound call.
type OrderRef struct {
	current atomic.Pointer[string]

	mu      sync.Mutex
	retired map[string]struct{}
}

func NewOrderRef(id string) *OrderRef {
	ref := &OrderRef{retired: map[string]struct{}{}}
	ref.current.Store(&id)
	return ref
}

func (r *OrderRef) Current() string {
	if r == nil {
		return ""
	}
	if id := r.current.Load(); id != nil {
		return *id
	}
	return ""
}

// Adopt replaces the current id. An id that was current before can never come back.
func (r *OrderRef) Adopt(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyOrderID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	previous := r.Current()
	if id == previous {
		return nil
	}
	if _, ok := r.retired[id]; ok {
		return fmt.Errorf("%w: %s", ErrStaleOrderID, SupportReference(id))
	}

	r.retired[previous] = struct{}{}
	r.current.Store(&id)
	return nil
}

// Retired lists ids that were replaced, in no particular order.
func (r *OrderRef) Retired() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.retired))
	for id := range r.retired {
		ids = append(ids, id)
	}
	return ids
}

// SupportReference is the short form of an order id shown to users for support correlation.
func SupportReference(id string) string {
	compact := strings.ReplaceAll(strings.TrimSpace(id), "-", "")
	if len(compact) > supportReferenceLength {
		compact = compact[:supportReferenceLength]
	}
	return strings.ToUpper(compact)
}
