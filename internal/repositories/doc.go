// Package repositories implements SQLite persistence for pastes.
//
// [PasteRepository] implements [models.Repository]. Every insert draws a number from the
// pastes_sequence table inside the same transaction, and listings order by that number so the
// store can rebuild its collection in insertion order after a restart.
//
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
