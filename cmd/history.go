package cmd

import (
	"encoding/json"
	"fmt"

	historyadapter "github.com/bnema/euserv-renew/internal/adapters/render/history"
	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		limit   int
		asJSON  bool
		showLog bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded renewal runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", limit)
			}

			app, err := wireApp(cmd.Context(), opts, cmd.ErrOrStderr(), wireHistory)
			if err != nil {
				return err
			}
			defer app.Close()

			reports, err := app.history.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("load run history: %w", err)
			}
			if limit > 0 && len(reports) > limit {
				reports = reports[:limit]
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(reports)
			}

			rendered, err := app.historyRenderer(reports, historyadapter.RenderOptions{
				Now:     app.now(),
				ShowLog: showLog,
			})
			if err != nil {
				return fmt.Errorf("render history: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Show at most this many runs (0: all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&showLog, "log", false, "Include each run's log")

	return cmd
}
