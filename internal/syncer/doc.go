// Package syncer runs one synchronization: load the mapping, read the
// report, transform it for the configured data type, then export or upload
// the records. Schedule repeats a run on a cron expression.
package syncer
