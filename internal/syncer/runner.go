package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"people-sync/internal/config"
	"people-sync/internal/export"
	"people-sync/internal/glean"
	"people-sync/internal/mapping"
	"people-sync/internal/record"
	"people-sync/internal/transform"
	"people-sync/internal/workday"
)

// ReportSource supplies the raw report entries.
type ReportSource interface {
	FetchReport(ctx context.Context) ([]record.Source, error)
}

// Uploader delivers records to the destination index.
type Uploader interface {
	BulkIndex(ctx context.Context, dataType config.DataType, records []*record.Record) (*glean.UploadResult, error)
}

// Runner executes runs against fixed settings and collaborators.
type Runner struct {
	settings *config.Settings
	logger   *slog.Logger
	source   ReportSource
	uploader Uploader
	sink     export.Sink
	now      func() time.Time
}

// Option replaces a collaborator.
type Option func(*Runner)

func WithSource(s ReportSource) Option { return func(r *Runner) { r.source = s } }

func WithUploader(u Uploader) Option { return func(r *Runner) { r.uploader = u } }

func WithSink(s export.Sink) Option { return func(r *Runner) { r.sink = s } }

// WithClock sets the clock used to derive employee status.
func WithClock(now func() time.Time) Option { return func(r *Runner) { r.now = now } }

// New wires the Workday client, the Glean client and the export sink from
// settings. Options override any of them.
func New(s *config.Settings, logger *slog.Logger, opts ...Option) (*Runner, error) {
	r := &Runner{settings: s, logger: logger, now: time.Now}

	for _, opt := range opts {
		opt(r)
	}

	if r.source == nil && s.TestMode != config.TestPush {
		r.source = workday.NewClient(s, logger)
	}

	if r.uploader == nil && s.OutputType == config.OutputAPI && s.TestMode != config.TestPull {
		r.uploader = glean.NewClient(s, logger)
	}

	if r.sink == nil && s.OutputType == config.OutputCSV {
		sink, err := export.NewSink(s)
		if err != nil {
			return nil, err
		}

		r.sink = sink
	}

	return r, nil
}

// Result summarizes a finished run.
type Result struct {
	DataType config.DataType
	Entries  int
	Records  int
	// Upload is set when records were sent to the destination.
	Upload *glean.UploadResult
	// ExportLocation is set when records were written as CSV.
	ExportLocation string
	Warnings       []string
}

// Run performs one synchronization. Any error aborts the run; warnings are
// returned in the result.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	s := r.settings
	res := &Result{DataType: s.DataType}

	switch s.TestMode {
	case config.TestPull:
		r.logger.Warn("pull test mode enabled: data will be pulled from Workday but not pushed to Glean")
	case config.TestPush:
		r.logger.Warn("push test mode enabled: loading data from a local file and pushing to Glean")
	}

	if s.DataType == config.DataTeams {
		r.logger.Debug("data type set to teams: only processing teams and memberships")
	}

	r.logger.Info("loading mapping file", "path", s.FieldMappingFile)

	spec, err := mapping.LoadFile(s.FieldMappingFile)
	if err != nil {
		return nil, err
	}

	entries, err := r.entries(ctx)
	if err != nil {
		return nil, err
	}

	res.Entries = len(entries)

	coverage := mapping.Validate(spec, entries)
	if coverage.HasErrors() {
		return nil, coverage.Err()
	}

	res.Warnings = append(res.Warnings, coverage.WarningMessages()...)

	r.logger.Info("transforming report entries", "entries", len(entries), "data_type", s.DataType)

	records, warnings, err := r.transform(entries, spec)
	if err != nil {
		return nil, err
	}

	res.Records = len(records)
	res.Warnings = append(res.Warnings, warnings...)

	switch {
	case s.OutputType == config.OutputCSV:
		loc, err := r.export(ctx, records)
		if err != nil {
			return nil, err
		}

		res.ExportLocation = loc
	case s.TestMode != config.TestPull:
		if r.uploader == nil {
			return nil, errors.New("no uploader configured")
		}

		up, err := r.uploader.BulkIndex(ctx, s.DataType, records)
		if err != nil {
			return nil, err
		}

		res.Upload = up
		res.Warnings = append(res.Warnings, up.Warnings...)
	}

	if len(res.Warnings) > 0 {
		r.logger.Warn("the following warnings were encountered", "count", len(res.Warnings))

		for _, w := range res.Warnings {
			r.logger.Warn(" - " + w)
		}
	}

	return res, nil
}

func (r *Runner) entries(ctx context.Context) ([]record.Source, error) {
	if r.settings.TestMode == config.TestPush {
		r.logger.Info("loading test data", "path", r.settings.TestDataFile)
		return workday.LoadReportFile(r.settings.TestDataFile)
	}

	if r.source == nil {
		return nil, errors.New("no report source configured")
	}

	r.logger.Info("fetching data from Workday", "url", r.settings.WorkdayReportURL)

	return r.source.FetchReport(ctx)
}

func (r *Runner) transform(entries []record.Source, spec *mapping.Spec) ([]*record.Record, []string, error) {
	if r.settings.DataType == config.DataTeams {
		teams, err := transform.TransformTeams(entries, spec)
		return teams, nil, err
	}

	out, err := transform.TransformPeople(entries, spec, transform.Options{Now: r.now})
	if err != nil {
		return nil, nil, err
	}

	r.logger.Debug("additional fields discovered", "fields", out.AdditionalFields)

	return out.Records, out.Diagnostics.WarningMessages(), nil
}

func (r *Runner) export(ctx context.Context, records []*record.Record) (string, error) {
	if r.sink == nil {
		return "", errors.New("no export sink configured")
	}

	r.logger.Info("exporting data to CSV")

	data, err := export.Render(records, r.settings.DataType)
	if err != nil {
		return "", err
	}

	loc, err := r.sink.Put(ctx, export.FileName(r.settings.DataType), data)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", r.settings.DataType, err)
	}

	r.logger.Info("data written", "data_type", r.settings.DataType, "location", loc)

	return loc, nil
}
