package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"people-sync/internal/config"
	"people-sync/internal/logging"
	"people-sync/internal/syncer"
)

type rootOptions struct {
	teamsOnly bool
	schedule  string
	envFile   string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "people-sync",
		Short:         "Sync people and teams from Workday to Glean",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.teamsOnly, "teamsonly", false, "Only process teams data and memberships")
	cmd.Flags().StringVar(&opts.schedule, "schedule", "",
		"Cron expression to run on repeatedly (overrides SYNC_SCHEDULE)")
	cmd.Flags().StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "Path of the .env file")

	cmd.AddCommand(newCheckCmd())

	return cmd
}

func runSync(cmd *cobra.Command, opts rootOptions) error {
	settings, err := config.FromEnv(opts.envFile)
	if err != nil {
		return err
	}

	if opts.teamsOnly {
		settings.DataType = config.DataTeams
	}

	if opts.schedule != "" {
		settings.SyncSchedule = opts.schedule
	}

	logger := logging.FromSettings(cmd.ErrOrStderr(), settings)

	runner, err := syncer.New(settings, logger)
	if err != nil {
		return err
	}

	run := func(ctx context.Context) error {
		_, err := runner.Run(ctx)
		return err
	}

	if settings.SyncSchedule == "" {
		return run(cmd.Context())
	}

	if err := syncer.ValidateSchedule(settings.SyncSchedule); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return syncer.Schedule(ctx, settings.SyncSchedule, logger, run)
}
