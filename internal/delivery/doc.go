// Package delivery splits a transformed batch into the pages of one bulk
// upload session.
//
// Every page of a session carries the same upload id. Only the first page
// asks the destination to start over, and only the last page closes the
// session. Pages must be sent in order, each after the previous one has been
// acknowledged.
package delivery
