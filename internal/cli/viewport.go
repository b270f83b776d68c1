package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"digital.vasic.expect/pkg/page"
)

func (rc *RootCommand) viewportCommand() *cobra.Command {
	var (
		url      string
		selector string
		ratio    float64
		not      bool
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "viewport",
		Short: "Wait for an element of a page to enter or leave the viewport",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ratio < 0 || ratio > 1 {
				return fmt.Errorf("--ratio must be between 0 and 1, got %g", ratio)
			}
			ctx := cmd.Context()

			p, err := page.NewChromePage(ctx)
			if err != nil {
				return err
			}
			defer p.Close()
			if err := p.Navigate(ctx, url); err != nil {
				return fmt.Errorf("navigate to %s: %w", url, err)
			}

			stop := rc.startMonitor(ctx)
			defer func() { _ = stop() }()

			vopts := []page.ViewportOption{page.WithRatio(ratio)}
			if cmd.Flags().Changed("timeout") {
				vopts = append(vopts, page.WithTimeout(timeout))
			}
			a := page.Expect(ctx, page.Locate(p, selector), rc.pollOptions(ctx, rc.logger)...)
			if not {
				err = a.NotToBeInViewport(vopts...)
			} else {
				err = a.ToBeInViewport(vopts...)
			}
			if err != nil {
				fmt.Fprintf(rc.out, "%s %s\n%s\n", color.RedString("FAIL"), selector, err)
				return ErrChecksFailed
			}
			fmt.Fprintf(rc.out, "%s %s\n", color.GreenString("PASS"), selector)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&url, "url", "", "Page URL")
	flags.StringVarP(&selector, "selector", "s", "", "CSS selector of the element")
	flags.Float64Var(&ratio, "ratio", 0, "Minimal visible ratio; 0 accepts any intersection")
	flags.BoolVar(&not, "not", false, "Wait for the element to leave the viewport")
	flags.DurationVarP(&timeout, "timeout", "t", 0, "Poll timeout (default from config)")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("selector")
	return cmd
}
