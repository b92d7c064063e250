package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"people-sync/internal/config"
	"people-sync/internal/diagnostic"
	"people-sync/internal/mapping"
	"people-sync/internal/workday"
)

type checkOptions struct {
	mappingFile string
	reportFile  string
	dataType    string
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a mapping file, optionally against a saved report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.mappingFile, "mapping", config.DefaultMappingFile, "Mapping file to check")
	cmd.Flags().StringVar(&opts.reportFile, "report", "", "Report JSON file to check field coverage against")
	cmd.Flags().StringVar(&opts.dataType, "data-type", string(config.DataPeople), "Data type the mapping is used for")

	return cmd
}

func runCheck(cmd *cobra.Command, opts checkOptions) error {
	spec, err := mapping.LoadFile(opts.mappingFile)
	if err != nil {
		return err
	}

	diags := &diagnostic.Diagnostics{}

	switch config.DataType(opts.dataType) {
	case config.DataPeople:
	case config.DataTeams:
		if _, err := spec.TeamsRule(); err != nil {
			diags.AddError("teams_rule", err.Error(), "", mapping.KeyTeams)
		}
	default:
		return fmt.Errorf("--data-type must be %q or %q", config.DataPeople, config.DataTeams)
	}

	if _, err := spec.EmailField(); err != nil {
		if config.DataType(opts.dataType) == config.DataTeams {
			diags.AddError("email_rule", err.Error(), "", mapping.KeyEmail)
		} else {
			diags.AddWarning("email_rule", err.Error(), "", mapping.KeyEmail)
		}
	}

	if opts.reportFile != "" {
		entries, err := workday.LoadReportFile(opts.reportFile)
		if err != nil {
			return err
		}

		diags.Merge(mapping.Validate(spec, entries))
	}

	out := cmd.OutOrStdout()

	for _, group := range [][]diagnostic.Diagnostic{diags.Errors, diags.Warnings, diags.Infos} {
		for _, d := range group {
			fmt.Fprintf(out, "%s: %s\n", d.Severity, d)
		}
	}

	if err := diags.Err(); err != nil {
		return fmt.Errorf("mapping %s: %w", opts.mappingFile, err)
	}

	fmt.Fprintf(out, "mapping %s: %d rules ok\n", opts.mappingFile, len(spec.Rules()))

	return nil
}
