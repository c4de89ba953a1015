// Package gridastar finds shortest paths on 2D occupancy grids.
//
// Movement is 8-directional: cardinal steps cost 1 and diagonal steps cost
// √2. A diagonal step is rejected when either orthogonal cell beside it is
// blocked, so paths never squeeze through a corner.
//
// It exposes three entry points:
//
//   - FindPath: run a search to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//   - SearchAll: run many independent queries on a bounded pool of goroutines.
//
// A single search is sequential and keeps no state between calls. The
// default frontier scans the open set linearly and, among equal f, expands
// the node that has sat there longest; see HeapFrontier for the faster
// alternative and how it differs.
package gridastar
