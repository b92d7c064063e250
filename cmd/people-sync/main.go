// Command people-sync synchronizes people and teams from a Workday report to
// the Glean Indexing API, or writes them as CSV files.
//
// Settings come from the environment and a .env file; see internal/config
// for the variables. The field mapping file maps report fields to the
// destination schema.
package main

import (
	"context"
	"log/slog"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error(err.Error())
		os.Exit(1)
	}
}
