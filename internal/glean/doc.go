// Package glean uploads transformed records to the Glean Indexing API.
//
// A batch is sent as one bulk upload session: pages are posted in order to
// the bulkindexemployees or bulkindexteams endpoint, and the upload is then
// followed by a request to process everything immediately. The destination
// otherwise processes uploads on its own schedule.
package glean
