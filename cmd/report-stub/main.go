// Command report-stub serves sample Workday reports for pull-mode testing.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"people-sync/internal/logging"
	"people-sync/internal/reportstub"
)

type options struct {
	addr       string
	username   string
	secretFile string
	dataDir    string
	debug      bool
}

func main() {
	if err := newCmd().ExecuteContext(context.Background()); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error(err.Error())
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "report-stub",
		Short:         "Serve sample Workday reports behind basic or bearer auth",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&opts.username, "username", reportstub.DefaultUsername, "Accepted basic-auth username")
	cmd.Flags().StringVar(&opts.secretFile, "secret-file", "/secrets/custom-connector-password",
		"File holding the password / bearer token")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", ".", "Directory with the sample_data*.json files")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Verbose logging")

	return cmd
}

func serve(ctx context.Context, opts options) error {
	logger := logging.New(os.Stderr, "", opts.debug)

	if !opts.debug {
		gin.SetMode(gin.ReleaseMode)
	}

	stub := reportstub.New(reportstub.Config{
		Username:   opts.username,
		SecretFile: opts.secretFile,
		DataDir:    opts.dataDir,
	}, logger)

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           stub.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		logger.Info("report stub listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
