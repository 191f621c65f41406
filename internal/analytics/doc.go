// Package analytics computes descriptive statistics over rating sets:
// summaries, star distributions, sentiment breakdowns, and day-bucketed
// trends. All functions are pure transforms over already-fetched
// records; the reference instant for trend windows is passed in
// explicitly so results are deterministic under test.
package analytics
