package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacobcrotty/bankcat/internal/session"
	"github.com/jacobcrotty/bankcat/internal/tui"
)

func reviewCmd() *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "review [run-id]",
		Short: "Review a saved run interactively",
		Long: `Open the interactive review screen for a saved run. Search, filter by
category or confidence, and export the filtered view without leaving the
terminal. Defaults to the most recent run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			run, err := loadRun(ctx, store, optionalArg(args))
			if err != nil {
				return err
			}

			sess := session.New(nil)
			sess.SetResults(run.Records)

			return tui.Run(tui.Config{
				Session: sess,
				Title:   fmt.Sprintf("bankcat · %s · %s", run.SourceFile, run.CreatedAt.Format("2006-01-02")),
				CSVPath: csvPath,
			})
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "path used by the in-review CSV export")
	return cmd
}
