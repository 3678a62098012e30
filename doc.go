// Package tripbook provides the document model and operations for planning
// a trip end to end. It is designed to be local-first: one JSON document per
// trip holds the itinerary, the expense ledger and everything attached to
// them, and every operation replaces the document wholesale.
//
// The core functionalities include:
//   - Itinerary Management: Scheduling activities day by day, with a stable
//     display order (completed items last, then by start time) and manual
//     reordering when the rule is not wanted.
//   - Expense Ledger: Recording spending in the destination currency or the
//     traveler's home currency, converting at a per-expense rate with a card
//     surcharge for non-cash payments, and undoing or redoing ledger changes
//     through persisted snapshots.
//   - Derived Expenses: An itinerary item with a positive cost maintains a
//     matching ledger record automatically, created, updated and deleted with
//     the item.
//   - Booking Projection: Flights and accommodations are itinerary items of
//     the matching category, projected into booking cards across days.
//   - Sharing and Export: A compressed URL token for lightweight sharing
//     (without attachments) and a full-fidelity file format for backup and
//     transfer, both forgiving on decode.
//
// This package serves as the foundational logic for the `tbk` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package tripbook
