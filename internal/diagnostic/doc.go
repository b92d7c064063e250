// Package diagnostic collects the non-fatal findings of a sync run.
//
// Key capabilities:
//   - Records dropped or altered during transformation (e.g. invalid type)
//   - Mapping entries that reference report fields never seen in the batch
//   - Destination responses that were accepted with a warning
//
// Warnings never fail a run; they are reported after it succeeds.
package diagnostic
