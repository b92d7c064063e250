// Package reportstub serves canned HR reports over HTTP so the source side
// of a run can be exercised without a real Workday tenant.
//
// GET /report?format=json returns a sample report. The optional report
// parameter selects "teams" or "additionalfields" samples. Requests must
// carry basic credentials (configured username, secret as password) or the
// secret as a bearer token. The secret is read from a file on first use and
// cached for the life of the server.
package reportstub
