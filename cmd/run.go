package cmd

import (
	"encoding/json"
	"fmt"

	historyadapter "github.com/bnema/euserv-renew/internal/adapters/render/history"
	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one renewal pass over all configured accounts",
		Long:  "run logs into every configured account, extends each server that is due, checks the result and sends a notification when something was renewed or the run failed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(cmd.Context(), opts, cmd.ErrOrStderr(), wireRenewal)
			if err != nil {
				return err
			}
			defer app.Close()

			report, err := app.orchestrator.Run(cmd.Context())
			if err != nil {
				return err
			}

			return writeRunReport(cmd, app, report, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeRunReport(cmd *cobra.Command, app *app, report domain.RunReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	rendered, err := app.historyRenderer([]domain.RunReport{report}, historyadapter.RenderOptions{
		Now:     app.now(),
		ShowLog: true,
	})
	if err != nil {
		return fmt.Errorf("render run report: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
