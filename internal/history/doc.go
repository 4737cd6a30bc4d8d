// Package history persists completed batch runs in SQLite.
//
// Each run gets one row plus one row per committed job, recording outcome
// counters so `clipbatch history` can show what past batches did. The
// database is bookkeeping, not state: deleting it loses nothing but the
// listing. Schema changes bump schemaVersion; old databases are rejected
// with a hint to remove them.
package history
