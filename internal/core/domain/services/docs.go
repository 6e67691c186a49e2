// Package services holds the domain logic of stop sequencing that spans a
// round and its stops.
//
// The package includes:
//   - StopSequencer: plans single-step manual moves with the pinned-pickup boundary rules
//   - StopRef: the tagged identity of a stop in routes exchanged with the oracle
//   - RoutePermutation: validates that an external order is a permutation of the requested stops
//   - RouteReconciler: maps an external order onto persisted stops and their new indices
//
// None of these services perform I/O. The application layer loads stops,
// calls them and writes the result in one unit of work.
package services
