// ABOUTME: Shared payload types and fakes for collector tests
// ABOUTME: node is a small graph cell that reports its edges through Trace

package gc

import (
	"sync"
	"time"
)

type node struct {
	name  string
	next  Gc[*node]
	edges []Gc[*node]
	// hide suppresses next from Trace to simulate a buggy payload.
	hide   bool
	weight uint64
}

func (n *node) Trace(t *Tracer[*node]) {
	if !n.hide {
		t.Trace(n.next)
	}
	for _, e := range n.edges {
		t.Trace(e)
	}
}

func (n *node) Label() string {
	return "node:" + n.name
}

func (n *node) Size() uint64 {
	if n.weight == 0 {
		return 1
	}
	return n.weight
}

func leaf(name string) *node {
	return &node{name: name}
}

func newTestHeap(threshold int, opts ...Option) *Heap[*node] {
	return MustNew[*node](threshold, opts...)
}

type collection struct {
	trigger   Trigger
	reclaimed int
	live      int
}

type recordingMetrics struct {
	mu          sync.Mutex
	allocations int
	collections []collection
	violations  []error
}

func (m *recordingMetrics) ObserveAllocation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocations++
}

func (m *recordingMetrics) ObserveCollection(trigger Trigger, reclaimed, live int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections = append(m.collections, collection{trigger: trigger, reclaimed: reclaimed, live: live})
}

func (m *recordingMetrics) ObserveViolation(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.violations = append(m.violations, err)
}
