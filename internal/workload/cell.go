// ABOUTME: Heap cell type for the interpreter-style workload
// ABOUTME: Cells are nil, integers, symbols, pairs and environment frames

package workload

import (
	"errors"
	"fmt"

	"github.com/prateek/tracegc/gc"
)

// Kind discriminates Cell variants.
type Kind uint8

const (
	KindNil Kind = iota
	KindInt
	KindSymbol
	KindPair
	KindFrame
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInt:
		return "int"
	case KindSymbol:
		return "symbol"
	case KindPair:
		return "pair"
	case KindFrame:
		return "frame"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Cell is the single payload type stored in the interpreter heap.
type Cell struct {
	Kind Kind
	Int  int64
	Sym  string

	// Pair
	Car, Cdr gc.Gc[*Cell]

	// Frame
	Vars   map[string]gc.Gc[*Cell]
	Parent gc.Gc[*Cell]
}

// Trace reports the edges of pairs and frames.
func (c *Cell) Trace(t *gc.Tracer[*Cell]) {
	switch c.Kind {
	case KindPair:
		t.Trace(c.Car)
		t.Trace(c.Cdr)
	case KindFrame:
		t.Trace(c.Parent)
		for _, v := range c.Vars {
			t.Trace(v)
		}
	}
}

// Label names the cell kind in heap snapshots.
func (c *Cell) Label() string {
	return c.Kind.String()
}

var (
	// ErrNotList is returned when a list walk meets a non-pair, non-nil cell.
	ErrNotList = errors.New("not a proper list")

	// ErrCyclic is returned when a list walk revisits a pair.
	ErrCyclic = errors.New("list is cyclic")
)

// Walk calls fn for every element of the list starting at head.
func Walk(head gc.Gc[*Cell], fn func(*Cell) error) error {
	seen := make(map[gc.ObjectID]bool)
	for cur := head; ; {
		c, err := cur.Get()
		if err != nil {
			return err
		}
		switch c.Kind {
		case KindNil:
			return nil
		case KindPair:
		default:
			return fmt.Errorf("%w: found %s", ErrNotList, c.Kind)
		}
		if seen[cur.ID()] {
			return ErrCyclic
		}
		seen[cur.ID()] = true

		car, err := c.Car.Get()
		if err != nil {
			return err
		}
		if err := fn(car); err != nil {
			return err
		}
		cur = c.Cdr
	}
}

// Len returns the number of elements of a proper list.
func Len(head gc.Gc[*Cell]) (int, error) {
	n := 0
	err := Walk(head, func(*Cell) error {
		n++
		return nil
	})
	return n, err
}

// Sum adds up the integer elements of a proper list.
func Sum(head gc.Gc[*Cell]) (int64, error) {
	var total int64
	err := Walk(head, func(c *Cell) error {
		if c.Kind != KindInt {
			return fmt.Errorf("%w: element is %s", ErrNotList, c.Kind)
		}
		total += c.Int
		return nil
	})
	return total, err
}
