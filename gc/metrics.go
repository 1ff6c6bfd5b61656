// ABOUTME: Metrics hook and collection statistics for the heap
// ABOUTME: Metrics is optional; nil means no metrics are recorded

package gc

import "time"

// Trigger says why a collection ran.
type Trigger string

const (
	// TriggerThreshold marks collections started by Allocate.
	TriggerThreshold Trigger = "threshold"
	// TriggerExplicit marks collections started by Collect or CollectChecked.
	TriggerExplicit Trigger = "explicit"
)

// Metrics receives collector events.
//
// Example implementations:
//   - Prometheus metrics (see metrics/prometheus)
//   - In-memory counters for testing
type Metrics interface {
	// ObserveAllocation records one call to Allocate
	ObserveAllocation()

	// ObserveCollection records a finished collection
	ObserveCollection(trigger Trigger, reclaimed, live int, duration time.Duration)

	// ObserveViolation records a collection aborted by a contract violation
	ObserveViolation(err error)
}

// Stats summarises the heap's activity since construction.
type Stats struct {
	Allocations      uint64
	Collections      uint64
	AutoCollections  uint64
	Reclaimed        uint64
	PrepassReclaimed uint64
	Violations       uint64
	LastReclaimed    int
	LastDuration     time.Duration
	Live             int
	Rooted           int
}
