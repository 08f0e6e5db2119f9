package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/loader"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

func newScopesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scopes",
		Short: "List the divisions, departments and teams in the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.records()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, div := range loader.ScopeOptions(records, model.Scope{}).Divisions {
				fmt.Fprintln(out, div)
				for _, dept := range loader.ScopeOptions(records, model.Scope{Division: div}).Departments {
					fmt.Fprintln(out, "  "+dept)
					for _, team := range loader.ScopeOptions(records, model.Scope{Division: div, Department: dept}).Teams {
						fmt.Fprintln(out, "    "+team)
					}
				}
			}
			return nil
		},
	}
}
