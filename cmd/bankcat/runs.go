package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jacobcrotty/bankcat/internal/cli"
	"github.com/jacobcrotty/bankcat/internal/export"
	"github.com/jacobcrotty/bankcat/internal/model"
	"github.com/jacobcrotty/bankcat/internal/session"
)

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage saved classification runs",
	}
	cmd.AddCommand(listRunsCmd())
	cmd.AddCommand(showRunCmd())
	cmd.AddCommand(exportRunCmd())
	cmd.AddCommand(deleteRunCmd())
	return cmd
}

func listRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.ListRuns(ctx)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No saved runs. Use 'bankcat analyze --save' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Created"),
				cli.HeaderStyle.Render("Source"),
				cli.HeaderStyle.Render("Transactions"))
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
					run.ID, run.CreatedAt.Format("2006-01-02 15:04"), run.SourceFile, run.TransactionCount)
			}
			return nil
		},
	}
}

// runFilterFlags are the shared filter flags of show and export.
type runFilterFlags struct {
	search     string
	category   string
	confidence string
}

func (f *runFilterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "case-insensitive search over description and category")
	cmd.Flags().StringVar(&f.category, "category", "", "only transactions with this exact category")
	cmd.Flags().StringVar(&f.confidence, "confidence", "", "only transactions with this confidence (high, medium, low)")
}

// sessionForRun loads a run into a fresh session with the flags applied.
func sessionForRun(ctx context.Context, id string, filters runFilterFlags) (*session.Session, *model.Run, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = store.Close() }()

	run, err := loadRun(ctx, store, id)
	if err != nil {
		return nil, nil, err
	}

	sess := session.New(nil)
	sess.SetResults(run.Records)
	if filters.search != "" {
		sess.SetFilter(session.FilterPatch{Search: &filters.search})
	}
	if filters.category != "" {
		sess.SetFilter(session.FilterPatch{Category: &filters.category})
	}
	if filters.confidence != "" {
		sess.SetFilter(session.FilterPatch{Confidence: &filters.confidence})
	}
	return sess, run, nil
}

func showRunCmd() *cobra.Command {
	var filters runFilterFlags

	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show a saved run",
		Long:  `Print the stats and transactions of a saved run. Defaults to the most recent run.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, run, err := sessionForRun(cmd.Context(), optionalArg(args), filters)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%s · %s", run.SourceFile, run.CreatedAt.Format("2006-01-02"))))
			cli.RenderSummary(os.Stdout, sess.Stats())
			fmt.Println()
			cli.RenderTransactions(os.Stdout, sess.FilteredView())

			if categories := sess.DistinctCategories(); len(categories) > 0 {
				fmt.Println()
				fmt.Println(cli.SubtleStyle.Render("Categories: " + strings.Join(categories, ", ")))
			}
			return nil
		},
	}
	filters.register(cmd)
	return cmd
}

func exportRunCmd() *cobra.Command {
	var (
		filters  runFilterFlags
		csvPath  string
		copyClip bool
		toSheets bool
	)

	cmd := &cobra.Command{
		Use:   "export [run-id]",
		Short: "Export a saved run",
		Long: `Export the filtered view of a saved run as CSV, clipboard text, or a
Google Sheets spreadsheet. Defaults to the most recent run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if csvPath == "" && !copyClip && !toSheets {
				return fmt.Errorf("nothing to do: pass --csv, --copy, or --sheets")
			}

			sess, _, err := sessionForRun(ctx, optionalArg(args), filters)
			if err != nil {
				return err
			}
			view := sess.FilteredView()

			if csvPath != "" {
				if err := export.WriteCSV(csvPath, view); err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Wrote %d transactions to %s", len(view), csvPath)))
			}
			if copyClip {
				if err := export.CopyPlainSummary(view); err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess("Copied summary to clipboard"))
			}
			if toSheets {
				if err := exportToSheets(ctx, sess); err != nil {
					return err
				}
			}
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().StringVar(&csvPath, "csv", "", "write a CSV export to this path")
	cmd.Flags().BoolVar(&copyClip, "copy", false, "copy a plain-text summary to the clipboard")
	cmd.Flags().BoolVar(&toSheets, "sheets", false, "export to Google Sheets")
	return cmd
}

func deleteRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteRun(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete run: %w", err)
			}
			fmt.Println(cli.FormatSuccess("Deleted run " + args[0]))
			return nil
		},
	}
}

func optionalArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
