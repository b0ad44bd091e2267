package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jacobcrotty/bankcat/internal/classify"
	"github.com/jacobcrotty/bankcat/internal/coa"
	"github.com/jacobcrotty/bankcat/internal/config"
	"github.com/jacobcrotty/bankcat/internal/model"
	"github.com/jacobcrotty/bankcat/internal/sheets"
	"github.com/jacobcrotty/bankcat/internal/storage"
)

const pdfMediaType = "application/pdf"

// initStorage opens the run database and brings the schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	} else {
		dbPath = config.ExpandPath(dbPath)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// loadRegistry returns the configured chart of accounts, or the built-in
// default when accounts.file is not set.
func loadRegistry() (*coa.Registry, error) {
	path := viper.GetString("accounts.file")
	if path == "" {
		return coa.Default(), nil
	}

	f, err := os.Open(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open chart of accounts: %w", err)
	}
	defer func() { _ = f.Close() }()

	registry, err := coa.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart of accounts %s: %w", path, err)
	}
	return registry, nil
}

// createClassifyClient builds the classification client from configuration.
// The API key resolves from flag, environment, then config file; it is never
// written back by the tool.
func createClassifyClient(apiKeyFlag string) (classify.Client, error) {
	apiKey := apiKeyFlag
	if apiKey == "" {
		apiKey = viper.GetString("anthropic.api_key")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no API key configured: pass --api-key, set BANKCAT_ANTHROPIC_API_KEY, or add anthropic.api_key to the config file")
	}

	return classify.NewAnthropicClient(classify.Config{
		APIKey:    apiKey,
		Model:     viper.GetString("anthropic.model"),
		MaxTokens: viper.GetInt("anthropic.max_tokens"),
	})
}

// readStatement loads the statement file and verifies it is a PDF. The
// media-type check happens here, before the document reaches the
// classification core.
func readStatement(path string) ([]byte, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("%s is not a PDF file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("%s does not look like a PDF document", path)
	}
	return data, nil
}

// loadRun fetches the run with the given ID, or the most recent run when
// id is empty.
func loadRun(ctx context.Context, store *storage.SQLiteStorage, id string) (*model.Run, error) {
	if id == "" {
		run, err := store.LatestRun(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load latest run: %w", err)
		}
		return run, nil
	}

	run, err := store.GetRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	return run, nil
}

// sheetsConfigFromViper assembles the Google Sheets export configuration.
func sheetsConfigFromViper() sheets.Config {
	return sheets.Config{
		ClientID:           viper.GetString("sheets.client_id"),
		ClientSecret:       viper.GetString("sheets.client_secret"),
		RefreshToken:       viper.GetString("sheets.refresh_token"),
		ServiceAccountPath: config.ExpandPath(viper.GetString("sheets.service_account_path")),
		SpreadsheetID:      viper.GetString("sheets.spreadsheet_id"),
		SpreadsheetName:    viper.GetString("sheets.spreadsheet_name"),
	}
}
