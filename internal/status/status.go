// Package status implements the atomic life cycle of a single-assignment
// asynchronous value.
//
// A value starts Pending. The goroutine that wants to complete it claims
// the Resolving phase through a CAS, writes the result, then publishes one
// of the terminal phases. The CAS is what makes completion single-shot:
// exactly one claimer ever wins over the life of a value.
package status

import "sync/atomic"

// The phases of a value, in the only order they can be visited.
const (
	Pending uint32 = iota
	Resolving
	Fulfilled
	Rejected
)

// Status is the atomically updated phase of one value.
// The zero value is Pending.
type Status uint32

// Load returns the current phase.
func (s *Status) Load() uint32 {
	return atomic.LoadUint32((*uint32)(s))
}

// TrySetResolving claims the exclusive right to complete the value.
// It returns true for exactly one caller, ever.
func (s *Status) TrySetResolving() bool {
	return atomic.CompareAndSwapUint32((*uint32)(s), Pending, Resolving)
}

// SetFulfilled publishes the Fulfilled phase. Only the claimer that won
// TrySetResolving may call it, after the result is written.
func (s *Status) SetFulfilled() {
	atomic.StoreUint32((*uint32)(s), Fulfilled)
}

// SetRejected publishes the Rejected phase, under the same rules as
// SetFulfilled.
func (s *Status) SetRejected() {
	atomic.StoreUint32((*uint32)(s), Rejected)
}

// IsResolved reports whether the phase is terminal. A terminal phase also
// guarantees the result write that preceded it is visible, since both
// terminal stores are atomic publications.
func IsResolved(phase uint32) bool {
	return phase == Fulfilled || phase == Rejected
}
