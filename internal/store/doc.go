// Package store defines the repository ports the scheduling engine
// persists through: words, retention state, and the append-only session
// log. The interfaces here contain no scheduling logic; implementations
// live in internal/platform/postgres. The package also provides the DBTX
// abstraction and the RunInTransaction helper used to serialize
// read-modify-write cycles on retention state.
package store
