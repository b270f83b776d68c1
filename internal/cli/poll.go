package cli

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"digital.vasic.expect/pkg/config"
	"digital.vasic.expect/pkg/env"
	"digital.vasic.expect/pkg/logging"
	"digital.vasic.expect/pkg/suite"
)

func (rc *RootCommand) pollCommand() *cobra.Command {
	var (
		check    suite.Check
		headers  []string
		timeout  time.Duration
		interval string
		token    string
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Poll one HTTP endpoint until it matches an expectation",
		Example: `  expect poll --url http://localhost:8080/health --field status --expect to_be:200
  expect poll --url http://localhost:8080/log --expect to_match:/error/i --not`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			check.Name = env.RedactURL(check.HTTP.URL)
			check.HTTP.Headers = make(map[string]string, len(headers))
			for _, h := range headers {
				k, v, ok := strings.Cut(h, ":")
				if !ok {
					return fmt.Errorf("invalid header %q, want \"Key: Value\"", h)
				}
				check.HTTP.Headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
			}
			rc.logger.Debug("poll request",
				logging.StringField("url", check.Name),
				logging.LogField("headers", env.RedactHeaders(check.HTTP.Headers)))
			if cmd.Flags().Changed("timeout") {
				check.Timeout = &timeout
			}
			if interval != "" {
				intervals, err := config.ParseIntervals(interval)
				if err != nil {
					return fmt.Errorf("invalid --interval: %w", err)
				}
				check.Intervals = intervals
			}

			file := &suite.File{Version: "1", Name: "poll", Checks: []suite.Check{check}}
			if errs := suite.Validate(file); len(errs) > 0 {
				return errs[0]
			}
			return rc.runChecks(cmd.Context(), file, token, jsonOut)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&check.HTTP.URL, "url", "", "URL to poll")
	flags.StringVar(&check.HTTP.Method, "method", http.MethodGet, "HTTP method")
	flags.StringArrayVarP(&headers, "header", "H", nil, "Request header \"Key: Value\" (repeatable)")
	flags.StringVar(&check.HTTP.Body, "body", "", "Request body")
	flags.StringVar(&check.Field, "field", "body", "Value to match: body|status|header.<Name>|json.<path>")
	flags.StringVarP(&check.Expect, "expect", "e", "", "Expectation, e.g. to_be:200 or to_match:/ok/")
	flags.BoolVar(&check.Not, "not", false, "Negate the expectation")
	flags.DurationVarP(&timeout, "timeout", "t", 0, "Poll timeout (default from config)")
	flags.StringVarP(&interval, "interval", "i", "", "Comma-separated retry intervals, e.g. 100ms,250ms,1s")
	flags.StringVarP(&check.Message, "message", "m", "", "Failure message replacing the matcher description")
	flags.StringVar(&token, "token", "", "Bearer token")
	flags.BoolVar(&jsonOut, "json", false, "Print the summary as JSON")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("expect")
	return cmd
}
