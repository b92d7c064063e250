// Package workday reads the HR report that feeds a run, either from the
// report URL or from a local file in push test mode.
//
// A report is a JSON object whose "Report_Entry" list holds one object per
// worker. Entries are returned as record.Source values with JSON numbers
// kept as json.Number, so they are passed on exactly as the report wrote them.
package workday
