// Package bitset implements a dense, growable set of non-negative integers
// backed by a slice of 64-bit words.
//
// BitSet is the set representation used throughout stochgraph: target sets,
// zero sets, player partitions and fixpoint frontiers are all bitsets over
// dense node IDs. All mutating operations work in place; callers that need a
// snapshot call Clone.
//
// Complexity:
//
//   - Set, Clear, Get: O(1) amortised (growth doubles the word slice).
//   - Or, And, AndNot, Equal, Cardinality: O(words).
//   - NextSetBit: O(words) worst case, O(1) per bit when iterating densely.
//
// A BitSet is not safe for concurrent mutation.
package bitset
