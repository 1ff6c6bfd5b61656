// ABOUTME: Error values reported by the collector
// ABOUTME: Sentinels for handle misuse plus ContractError for mark-phase violations

package gc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidThreshold is returned by New when the threshold is below 1.
	ErrInvalidThreshold = errors.New("collection threshold must be at least 1")

	// ErrReclaimed is returned when resolving a Gc whose object was swept.
	ErrReclaimed = errors.New("object has been reclaimed")

	// ErrNilHandle is returned when resolving the zero Gc.
	ErrNilHandle = errors.New("nil gc handle")

	// ErrReleased is the panic value when a released Root is dereferenced.
	ErrReleased = errors.New("root has been released")

	// ErrDanglingEdge means a traced edge points at an object that is no
	// longer in the table. Some payload's Trace missed an edge earlier.
	ErrDanglingEdge = errors.New("traced edge points at a reclaimed object")

	// ErrForeignEdge means a payload reported an edge owned by another Heap.
	ErrForeignEdge = errors.New("traced edge belongs to another heap")

	// ErrRootSetCorrupted means a root-set member disappeared mid-mark,
	// usually because the heap was mutated during a collection.
	ErrRootSetCorrupted = errors.New("root set member vanished during mark")
)

// ContractError describes a violation found while marking. From is only
// meaningful when HasFrom is true; seeds of the root set have no parent.
type ContractError struct {
	Err     error
	From    ObjectID
	HasFrom bool
	To      ObjectID
}

func (e *ContractError) Error() string {
	if e.HasFrom {
		return fmt.Sprintf("gc: edge %d -> %d: %v", e.From, e.To, e.Err)
	}
	return fmt.Sprintf("gc: object %d: %v", e.To, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}
