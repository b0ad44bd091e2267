package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jacobcrotty/bankcat/internal/cli"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Inspect the chart of accounts",
	}
	cmd.AddCommand(listAccountsCmd())
	return cmd
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the chart of accounts",
		Long:  `Display every account category with its accounting type and detail type.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			registry, err := loadRegistry()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Detail Type"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 32),
				strings.Repeat("-", 18),
				strings.Repeat("-", 32))

			for _, account := range registry.Accounts() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", account.Name, account.Type, account.DetailType)
			}
			return nil
		},
	}
}
