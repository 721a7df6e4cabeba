package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-yesterday/cmd/config"
	"github.com/mattsolo1/grove-yesterday/pkg/models"
)

func NewHistoryCmd(rt **config.Runtime) *cobra.Command {
	var (
		historyLimit int
		historyJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent invocations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := (*rt).History()
			if err != nil {
				return err
			}

			entries, err := h.Recent(cmd.Context(), historyLimit)
			if err != nil {
				return err
			}

			if historyJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(entries)
			}

			printHistoryTable(cmd, entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
	cmd.Flags().BoolVar(&historyJSON, "json", false, "Output in JSON format")

	return cmd
}

func printHistoryTable(cmd *cobra.Command, entries []*models.HistoryEntry) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "WHEN\tDATE\tOUTCOME\tPATH")
	fmt.Fprintln(w, "----------------\t----------\t--------\t-----------------------------")

	for _, e := range entries {
		path := e.Path
		if e.Error != "" {
			path = fmt.Sprintf("%s (%s)", path, truncateString(e.Error, 40))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Date, e.Outcome, path)
	}

	w.Flush()
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
