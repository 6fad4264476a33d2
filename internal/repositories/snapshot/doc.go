// Package snapshot persists the full roster.
//
// Two backends implement the same contract (roster.Snapshotter):
//
//   - JSONFile: the students.json array, rewritten atomically on every save
//   - SQLite: a students table in the application database, replaced
//     inside one transaction on every save
//
// Both treat an absent snapshot as an empty roster and always recompute
// total and grade from the stored scores on load. Failures wrap
// common.ErrStorage.
package snapshot
