package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/euserv-renew/internal/application"
	"github.com/spf13/cobra"
)

type serverView struct {
	ID           string `json:"id"`
	NeedsRenewal bool   `json:"needs_renewal"`
}

type accountServersView struct {
	Account string       `json:"account"`
	Servers []serverView `json:"servers"`
	Error   string       `json:"error,omitempty"`
}

func newServersCmd(opts *rootOptions) *cobra.Command {
	var (
		asJSON    bool
		noSpinner bool
	)

	cmd := &cobra.Command{
		Use:   "servers",
		Short: "Log in and list each account's servers without renewing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(cmd.Context(), opts, cmd.ErrOrStderr(), wireSurvey)
			if err != nil {
				return err
			}
			defer app.Close()

			var results []application.AccountServers
			survey := func(ctx context.Context, observer application.SurveyObserver) error {
				var err error
				results, err = app.orchestrator.Survey(ctx, observer)
				return err
			}

			if asJSON || noSpinner {
				err = survey(cmd.Context(), application.SurveyObserver{})
			} else {
				err = runSurveySpinner(cmd.Context(), cmd.ErrOrStderr(), survey)
			}
			if err != nil {
				return err
			}

			return writeServersOutput(cmd, app, results, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&noSpinner, "no-spinner", false, "Do not animate while logging in")

	return cmd
}

func writeServersOutput(cmd *cobra.Command, app *app, results []application.AccountServers, asJSON bool) error {
	if asJSON {
		views := make([]accountServersView, 0, len(results))
		for _, result := range results {
			view := accountServersView{Account: result.Account, Servers: []serverView{}}
			for _, resource := range result.Resources {
				view.Servers = append(view.Servers, serverView{ID: string(resource.ID), NeedsRenewal: resource.NeedsRenewal})
			}
			if result.Err != nil {
				view.Error = result.Err.Error()
			}
			views = append(views, view)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	rendered, err := app.serversRenderer(results)
	if err != nil {
		return fmt.Errorf("render servers: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
