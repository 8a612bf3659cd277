// Package repositories implements SQLite persistence for generation history.
//
// Each command runs in its own process, so the "current course" lives here rather than in memory:
// every successful generation is stored and later commands load the most recent one.
//
// Key Implementations:
//   - [ResultRepository] : Generation results with the exact backend payload
//   - [ArtifactRepository] : Files written by the download and video commands
//
// Results support soft deletes via deleted_at timestamps and are excluded from queries once deleted.
// Sequence numbers provide stable, human-readable ordering (e.g., result #3) independent of UUIDs.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
