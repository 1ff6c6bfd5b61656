// ABOUTME: Root tracegc package providing version information and package documentation
// ABOUTME: The collector itself lives in the gc package

// Package tracegc is an embeddable mark-and-sweep garbage collector for
// graph-shaped data, including data with reference cycles.
//
// Host programs allocate payloads on a gc.Heap and receive owning
// gc.Root handles; payloads refer to each other through gc.Gc edges and
// report them from their Trace method. The graph package analyses heap
// snapshots (paths to roots, dominators, retained size) and heapdump
// writes those snapshots as JSON.
package tracegc

// Version is the semantic version of tracegc
const Version = "0.1.0-dev"
