package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (rc *RootCommand) historyCommand() *cobra.Command {
	var (
		check   string
		limit   int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded check outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			history, err := rc.openHistory()
			if err != nil {
				return err
			}
			if history == nil {
				return errors.New("no history database, set --history or history_path")
			}
			defer history.Close()

			entries, err := history.Recent(cmd.Context(), check, limit)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(rc.out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			w := tabwriter.NewWriter(rc.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RECORDED\tCHECK\tSTATE\tATTEMPTS\tELAPSED\tLAST")
			for _, e := range entries {
				last := e.LastValue
				if e.LastError != "" {
					last = "error: " + e.LastError
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
					e.RecordedAt.Local().Format("2006-01-02 15:04:05"),
					e.Check, e.State, e.Attempts, e.Elapsed, last)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&check, "check", "", "Only show this check")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print entries as JSON")
	return cmd
}
