package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/jacobcrotty/bankcat/internal/classify"
	"github.com/jacobcrotty/bankcat/internal/cli"
	"github.com/jacobcrotty/bankcat/internal/export"
	"github.com/jacobcrotty/bankcat/internal/model"
	"github.com/jacobcrotty/bankcat/internal/session"
	"github.com/jacobcrotty/bankcat/internal/sheets"
	"github.com/jacobcrotty/bankcat/internal/tui"
)

func analyzeCmd() *cobra.Command {
	var (
		apiKey     string
		csvPath    string
		copyToClip bool
		save       bool
		review     bool
		toSheets   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <statement.pdf>",
		Short: "Categorize a bank statement",
		Long: `Send a bank statement PDF to the classification service and print the
categorized transactions.

Examples:
  bankcat analyze january.pdf                 # print stats and transactions
  bankcat analyze january.pdf --save          # also save the run for later review
  bankcat analyze january.pdf --csv out.csv   # also write a CSV export
  bankcat analyze january.pdf --review        # open the interactive review screen`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0], analyzeOptions{
				apiKey:     apiKey,
				csvPath:    csvPath,
				copyToClip: copyToClip,
				save:       save,
				review:     review,
				toSheets:   toSheets,
			})
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Anthropic API key (overrides config and environment)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write a CSV export to this path")
	cmd.Flags().BoolVar(&copyToClip, "copy", false, "copy a plain-text summary to the clipboard")
	cmd.Flags().BoolVar(&save, "save", false, "save the run to the local database")
	cmd.Flags().BoolVar(&review, "review", false, "open the interactive review screen afterwards")
	cmd.Flags().BoolVar(&toSheets, "sheets", false, "export the results to Google Sheets")

	return cmd
}

type analyzeOptions struct {
	apiKey     string
	csvPath    string
	copyToClip bool
	save       bool
	review     bool
	toSheets   bool
}

func runAnalyze(ctx context.Context, statementPath string, opts analyzeOptions) error {
	document, err := readStatement(statementPath)
	if err != nil {
		return err
	}

	registry, err := loadRegistry()
	if err != nil {
		return err
	}

	client, err := createClassifyClient(opts.apiKey)
	if err != nil {
		return err
	}

	sess := session.New(client)

	slog.Debug("sending statement for classification",
		"file", statementPath, "bytes", len(document), "accounts", registry.Len())

	records, err := classifyWithSpinner(ctx, sess, classify.Request{
		Document:        document,
		MediaType:       pdfMediaType,
		ChartOfAccounts: registry.Render(),
	})
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Categorized %d transactions from %s", len(records), filepath.Base(statementPath))))
	fmt.Println()
	cli.RenderSummary(os.Stdout, sess.Stats())
	fmt.Println()
	cli.RenderTransactions(os.Stdout, sess.FilteredView())

	if opts.save {
		if err := saveRun(ctx, statementPath, records); err != nil {
			return err
		}
	}
	if opts.csvPath != "" {
		if err := export.WriteCSV(opts.csvPath, sess.FilteredView()); err != nil {
			fmt.Println(cli.FormatError(err.Error()))
		} else {
			fmt.Println(cli.FormatSuccess("Wrote " + opts.csvPath))
		}
	}
	if opts.copyToClip {
		if err := export.CopyPlainSummary(sess.FilteredView()); err != nil {
			fmt.Println(cli.FormatError(err.Error()))
		} else {
			fmt.Println(cli.FormatSuccess("Copied summary to clipboard"))
		}
	}
	if opts.toSheets {
		if err := exportToSheets(ctx, sess); err != nil {
			fmt.Println(cli.FormatError(err.Error()))
		}
	}

	if opts.review {
		return tui.Run(tui.Config{
			Session: sess,
			Title:   "bankcat · " + filepath.Base(statementPath),
		})
	}
	return nil
}

// classifyWithSpinner runs the classification call while animating a spinner
// on stderr. The session enforces the at-most-one-in-flight rule.
func classifyWithSpinner(ctx context.Context, sess *session.Session, req classify.Request) ([]model.TransactionRecord, error) {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Analyzing statement..."),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)

	type result struct {
		records []model.TransactionRecord
		err     error
	}
	done := make(chan result, 1)
	go func() {
		records, err := sess.Classify(ctx, req)
		done <- result{records: records, err: err}
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case r := <-done:
			_ = bar.Finish()
			return r.records, r.err
		case <-ticker.C:
			_ = bar.Add(1)
		}
	}
}

func saveRun(ctx context.Context, statementPath string, records []model.TransactionRecord) error {
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run := &model.Run{
		ID:         uuid.NewString(),
		SourceFile: filepath.Base(statementPath),
		CreatedAt:  time.Now().UTC(),
		Records:    records,
	}
	if err := store.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Saved run " + run.ID))
	return nil
}

func exportToSheets(ctx context.Context, sess *session.Session) error {
	writer, err := sheets.NewWriter(ctx, sheetsConfigFromViper(), slog.Default())
	if err != nil {
		return err
	}

	spreadsheetID, err := writer.Write(ctx, sess.FilteredView(), sess.Stats())
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess("Exported to spreadsheet " + spreadsheetID))
	return nil
}
