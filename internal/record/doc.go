// Package record holds the two shapes data takes on its way through a sync:
// Source, a raw report entry exactly as decoded from the HR report, and
// Record, an insertion-ordered destination object built by the transformer.
//
// Value helpers (Truthy, String, Strings) give the loosely typed report
// values the semantics the transformation rules rely on.
package record
