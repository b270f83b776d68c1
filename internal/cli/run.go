package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"digital.vasic.expect/pkg/httpclient"
	"digital.vasic.expect/pkg/logging"
	"digital.vasic.expect/pkg/report"
	"digital.vasic.expect/pkg/runner"
	"digital.vasic.expect/pkg/suite"
)

func (rc *RootCommand) runCommand() *cobra.Command {
	var (
		jsonOut bool
		token   string
	)

	cmd := &cobra.Command{
		Use:   "run <suite.yaml>",
		Short: "Run every check of a suite file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := suite.LoadWithEnv(args[0], rc.vars)
			if err != nil {
				return err
			}
			return rc.runChecks(cmd.Context(), file, token, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the summary as JSON")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token sent with every request")
	return cmd
}

// runChecks polls the checks of file and prints their summary.
func (rc *RootCommand) runChecks(
	ctx context.Context,
	file *suite.File,
	token string,
	jsonOut bool,
) error {
	var secrets []string
	if token != "" {
		secrets = append(secrets, token)
	}
	for _, c := range file.Checks {
		secrets = append(secrets, logging.URLSecrets(c.HTTP.URL)...)
	}
	logger := logging.Logger(rc.logger)
	if len(secrets) > 0 {
		logger = logging.NewRedactingLogger(rc.logger, secrets...)
	}

	history, err := rc.openHistory()
	if err != nil {
		return err
	}
	if history != nil {
		defer history.Close()
	}

	stop := rc.startMonitor(ctx)

	opts := []runner.Option{
		runner.WithClient(httpclient.NewClient(httpclient.WithBearerToken(token))),
		runner.WithDefaults(rc.config.Poll),
		runner.WithConcurrency(rc.config.Concurrency),
		runner.WithPollOptions(rc.pollOptions(ctx, logger)...),
		runner.WithLogger(logger),
	}
	if history != nil {
		opts = append(opts, runner.WithPostHook(
			func(ctx context.Context, res runner.Result) {
				if err := history.AppendResult(ctx, res); err != nil {
					logger.Warn("record history failed",
						logging.StringField("check", res.Check),
						logging.ErrorField(err))
				}
			}))
	}

	results, runErr := runner.New(opts...).RunFile(ctx, file)
	if err := stop(); err != nil {
		logger.Warn("monitor stopped with error", logging.ErrorField(err))
	}

	summary := report.BuildSummary(results)
	if jsonOut {
		err = report.WriteJSON(rc.out, summary)
	} else {
		err = report.WriteText(rc.out, summary)
	}
	if err != nil {
		return err
	}

	if runErr != nil {
		return runErr
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d: %w", summary.Failed, summary.Total, ErrChecksFailed)
	}
	return nil
}
