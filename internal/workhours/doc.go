// Package workhours computes time spent inside a fixed daily working window.
//
// A Window is the same interval [open, close] on every calendar day. Two
// operations are built on it and are inverses of each other on well-formed
// input:
//
//   - Elapsed: working time between two timestamps.
//   - Completion: the timestamp at which a required amount of working time
//     has been consumed, starting from a given timestamp.
//
// All arithmetic is done in whole minutes. Hours are exposed as minutes/60 and
// consumed as hours*60 rounded half away from zero. Timestamps are read as
// wall-clock values in their own location; both arguments of an operation are
// expected to share one location and results are returned in it.
//
// The package is pure: no I/O, no logging, no shared mutable state.
package workhours
