// ABOUTME: A minimal interpreter runtime whose values live on a collected heap
// ABOUTME: Keeps values rooted across allocations the way a real host must

package workload

import (
	"errors"

	"github.com/prateek/tracegc/gc"
)

// ErrGlobalFrame is returned when popping the outermost frame.
var ErrGlobalFrame = errors.New("cannot pop the global frame")

// Interp owns the heap and the interpreter's permanent roots: the shared
// nil cell, interned symbols and the current environment frame.
type Interp struct {
	heap    *gc.Heap[*Cell]
	nilCell *gc.Root[*Cell]
	symbols map[string]*gc.Root[*Cell]
	frame   *gc.Root[*Cell]
	depth   int
}

// NewInterp allocates the nil cell and the global frame on heap.
func NewInterp(heap *gc.Heap[*Cell]) *Interp {
	in := &Interp{
		heap:    heap,
		symbols: make(map[string]*gc.Root[*Cell]),
	}
	in.nilCell = heap.Allocate(&Cell{Kind: KindNil})
	in.frame = heap.Allocate(&Cell{Kind: KindFrame, Vars: make(map[string]gc.Gc[*Cell])})
	return in
}

// Heap returns the underlying heap.
func (in *Interp) Heap() *gc.Heap[*Cell] {
	return in.heap
}

// Nil returns the shared empty list.
func (in *Interp) Nil() gc.Gc[*Cell] {
	return in.nilCell.AsGc()
}

// Int allocates an integer cell.
func (in *Interp) Int(v int64) *gc.Root[*Cell] {
	return in.heap.Allocate(&Cell{Kind: KindInt, Int: v})
}

// Intern returns the unique symbol cell for name. Symbols stay rooted for
// the interpreter's lifetime.
func (in *Interp) Intern(name string) gc.Gc[*Cell] {
	if r, ok := in.symbols[name]; ok {
		return r.AsGc()
	}
	r := in.heap.Allocate(&Cell{Kind: KindSymbol, Sym: name})
	in.symbols[name] = r
	return r.AsGc()
}

// Cons allocates a pair. car and cdr must stay reachable from a Root until
// Cons returns, since the allocation may collect.
func (in *Interp) Cons(car, cdr gc.Gc[*Cell]) *gc.Root[*Cell] {
	return in.heap.Allocate(&Cell{Kind: KindPair, Car: car, Cdr: cdr})
}

// List builds a proper list of integers and returns a Root for its head.
func (in *Interp) List(values ...int64) *gc.Root[*Cell] {
	acc, err := in.Nil().Root()
	if err != nil {
		panic(err)
	}
	for i := len(values) - 1; i >= 0; i-- {
		car := in.Int(values[i])
		pair := in.Cons(car.AsGc(), acc.AsGc())
		car.Release()
		acc.Release()
		acc = pair
	}
	return acc
}

// Define binds name in the current frame.
func (in *Interp) Define(name string, v gc.Gc[*Cell]) {
	in.frame.Value().Vars[name] = v
}

// Lookup resolves name through the frame chain.
func (in *Interp) Lookup(name string) (gc.Gc[*Cell], bool) {
	for f := in.frame.AsGc(); !f.IsNil(); {
		c, err := f.Get()
		if err != nil {
			return gc.Gc[*Cell]{}, false
		}
		if v, ok := c.Vars[name]; ok {
			return v, true
		}
		f = c.Parent
	}
	return gc.Gc[*Cell]{}, false
}

// PushFrame enters a new scope whose parent is the current frame.
func (in *Interp) PushFrame() {
	next := in.heap.Allocate(&Cell{
		Kind:   KindFrame,
		Vars:   make(map[string]gc.Gc[*Cell]),
		Parent: in.frame.AsGc(),
	})
	in.frame.Release()
	in.frame = next
	in.depth++
}

// PopFrame leaves the current scope. Values bound only in it become
// garbage.
func (in *Interp) PopFrame() error {
	parent := in.frame.Value().Parent
	if parent.IsNil() {
		return ErrGlobalFrame
	}
	r, err := parent.Root()
	if err != nil {
		return err
	}
	in.frame.Release()
	in.frame = r
	in.depth--
	return nil
}

// Depth returns the number of frames above the global one.
func (in *Interp) Depth() int {
	return in.depth
}

// Close releases every interpreter root so that a final collection
// empties the heap.
func (in *Interp) Close() {
	in.frame.Release()
	in.nilCell.Release()
	for name, r := range in.symbols {
		r.Release()
		delete(in.symbols, name)
	}
}
