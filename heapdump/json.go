// ABOUTME: JSON encoding of heap snapshot graphs
// ABOUTME: Lets gcbench save a snapshot and analyse it later without the live heap

package heapdump

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/prateek/tracegc/graph"
)

// FormatVersion is written into every dump. Read rejects other versions.
const FormatVersion = 1

var (
	// ErrVersion is returned for dumps written by an incompatible version.
	ErrVersion = errors.New("unsupported dump version")

	// ErrInvalidDump is returned when a dump is not a consistent graph.
	ErrInvalidDump = errors.New("invalid dump")
)

var api = jsoniter.Config{
	OnlyTaggedField: true,
	CaseSensitive:   true,
}.Froze()

type dump struct {
	Version int           `json:"version"`
	Objects []object      `json:"objects"`
	Roots   []graph.ObjID `json:"roots"`
}

type object struct {
	ID   graph.ObjID   `json:"id"`
	Type string        `json:"type"`
	Size uint64        `json:"size"`
	Ptrs []graph.ObjID `json:"ptrs,omitempty"`
}

// Write encodes g as indented JSON. Objects are written in ascending ID
// order so that two dumps of the same heap are byte-identical.
func Write(w io.Writer, g graph.Graph) error {
	d := dump{
		Version: FormatVersion,
		Objects: make([]object, 0, g.NumObjects()),
		Roots:   g.GetRoots().IDs,
	}
	if d.Roots == nil {
		d.Roots = []graph.ObjID{}
	}
	g.ForEachObject(func(obj *graph.Object) {
		d.Objects = append(d.Objects, object{
			ID:   obj.ID,
			Type: obj.Type,
			Size: obj.Size,
			Ptrs: obj.Ptrs,
		})
	})

	enc := api.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&d); err != nil {
		return fmt.Errorf("failed to encode dump: %w", err)
	}
	return nil
}

// Read decodes a dump produced by Write and checks that every root and
// pointer names an object in the dump.
func Read(r io.Reader) (*graph.MemGraph, error) {
	var d dump
	dec := api.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode dump: %w", err)
	}
	if d.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, d.Version)
	}

	g := graph.NewMemGraph()
	for i, o := range d.Objects {
		if o.ID == graph.SuperRoot {
			return nil, fmt.Errorf("%w: object at index %d uses the reserved ID", ErrInvalidDump, i)
		}
		if g.GetObject(o.ID) != nil {
			return nil, fmt.Errorf("%w: duplicate object %d", ErrInvalidDump, o.ID)
		}
		ptrs := o.Ptrs
		if ptrs == nil {
			ptrs = []graph.ObjID{}
		}
		g.AddObject(&graph.Object{ID: o.ID, Type: o.Type, Size: o.Size, Ptrs: ptrs})
	}

	var bad error
	g.ForEachObject(func(obj *graph.Object) {
		for _, p := range obj.Ptrs {
			if bad == nil && g.GetObject(p) == nil {
				bad = fmt.Errorf("%w: object %d points at missing object %d", ErrInvalidDump, obj.ID, p)
			}
		}
	})
	if bad != nil {
		return nil, bad
	}
	for _, id := range d.Roots {
		if g.GetObject(id) == nil {
			return nil, fmt.Errorf("%w: root %d is not an object", ErrInvalidDump, id)
		}
	}

	roots := d.Roots
	if roots == nil {
		roots = []graph.ObjID{}
	}
	g.SetRoots(graph.Roots{IDs: roots})
	return g, nil
}
