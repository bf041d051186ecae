// Package succession derives, for every heir named in a set of inheritance
// disclosures, whether the heir is represented by a power of attorney and what
// wording a future power of attorney for the heir must carry.
//
// The package is pure: Infer takes a snapshot of documents and returns a fresh
// result on every call. It holds no state, performs no I/O and never mutates its
// input, so callers recompute from scratch after adding or removing a document.
//
// # Ordering
//
// Documents are stable-sorted by issue date. The deceased of the earliest
// inheritance disclosure is the primary estate; when several disclosures share
// the earliest date, the one given first wins. Records are emitted per disclosure
// in date order, then per heir in document order.
//
// # Name matching
//
// Heirs are matched against principals and agents with NamesMatch: after trimming,
// one name must contain the other. The rule is deliberately loose to absorb
// honorifics and partial names from extraction, and will produce false positives
// on short or shared name fragments.
//
// # Import Rules
//
//   - Can Import: domain package and the standard library
//   - Cannot Import: ports, services, adapters
package succession
