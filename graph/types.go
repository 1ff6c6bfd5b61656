// ABOUTME: Core data types for heap snapshot graphs
// ABOUTME: Defines Object, ObjID, Roots and the SuperRoot sentinel

package graph

// ObjID identifies an object in a snapshot. It mirrors gc.ObjectID, so 0
// is a valid object.
type ObjID uint64

// SuperRoot is the synthetic node that points at every root. It is never
// a real object ID because heap IDs are assigned from 0 upward.
const SuperRoot ObjID = ^ObjID(0)

// Object is one node of a snapshot.
type Object struct {
	ID   ObjID   // Identity in the heap
	Type string  // Label (payload type name unless the payload supplies one)
	Size uint64  // Weight used by retained-size analysis
	Ptrs []ObjID // Outgoing edges as reported by the payload's Trace
}

// Roots is the set of rooted objects at snapshot time.
type Roots struct {
	IDs []ObjID
}
