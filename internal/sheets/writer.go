package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jacobcrotty/bankcat/internal/model"
	"github.com/jacobcrotty/bankcat/internal/stats"
)

const transactionsSheet = "Transactions"

// Writer exports transaction records to a Google Sheets spreadsheet.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a Google Sheets writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{config: config, service: service, logger: logger}, nil
}

// Write replaces the Transactions sheet with the given records and a summary
// block. The records are expected to be the caller's filtered view so the
// export matches what is on screen.
func (w *Writer) Write(ctx context.Context, records []model.TransactionRecord, summary stats.Summary) (string, error) {
	w.logger.Info("starting sheet export", "transactions", len(records))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	clearReq := &sheets.ClearValuesRequest{}
	if _, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, transactionsSheet, clearReq).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to clear sheet: %w", err)
	}

	values := buildValues(records, summary)
	valueRange := &sheets.ValueRange{Values: values}
	_, err = w.service.Spreadsheets.Values.
		Update(spreadsheetID, transactionsSheet+"!A1", valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to write data: %w", err)
	}

	w.logger.Info("sheet export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))
	return spreadsheetID, nil
}

// buildValues renders the header, one row per record, and a trailing summary
// block.
func buildValues(records []model.TransactionRecord, summary stats.Summary) [][]any {
	values := [][]any{
		{"Date", "Description", "Amount", "Category", "Confidence", "Reasoning"},
	}
	for _, r := range records {
		values = append(values, []any{
			r.Date, r.Description, r.Amount.String(), r.SuggestedCategory, string(r.Confidence), r.Reasoning,
		})
	}
	values = append(values,
		[]any{},
		[]any{"Total transactions", summary.TotalCount},
		[]any{"Total expenses", summary.TotalExpenses.StringFixed(2)},
		[]any{"Total income", summary.TotalIncome.StringFixed(2)},
		[]any{"High confidence", summary.HighConfidenceCount},
	)
	return values
}

func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: w.config.Name()},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: transactionsSheet}},
		},
	}
	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	w.logger.Info("created spreadsheet", "spreadsheet_id", created.SpreadsheetId, "title", w.config.Name())
	return created.SpreadsheetId, nil
}

func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}
		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}
		token := &oauth2.Token{RefreshToken: config.RefreshToken, TokenType: "Bearer"}
		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	service, err := sheets.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return service, nil
}
