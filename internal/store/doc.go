// Package store provides SQLite-backed persistence for dumped
// expression units.
//
// A saved unit is flattened into per-node rows:
//   - units: one row per arena (uuid identity, name, creation time)
//   - nodes: one row per node (kind, family, width, flavor, purity,
//     subtree hash, local-state JSON)
//   - edges: parent/slot/child triples, so shared subtrees keep their
//     single row
//   - roots: the unit's named expressions
//
// Writes are idempotent: every insert is keyed on the arena uuid and
// conflicts are silently ignored, so saving the same unit twice leaves
// one copy.
//
// The store answers two read surfaces without rebuilding trees: the
// query IR (internal/query), compiled here to parameterized SQL, and
// duplicate-hash reporting. Stored duplicate groups come from subtree
// hashes alone; the in-memory pass additionally confirms buckets with
// a structural compare, which SQL cannot. Rows carry a precomputed
// mergeable flag (the subtree-wide purity gate), so the SQL report
// applies the same candidate rule as the in-memory pass.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
