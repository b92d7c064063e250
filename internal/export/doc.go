// Package export writes transformed records as flat CSV files, to a local
// directory or to an S3-compatible bucket.
//
// Nested objects are promoted to top-level columns, team members are
// rendered as a comma-separated list of emails, and every other list is
// written as JSON.
package export
