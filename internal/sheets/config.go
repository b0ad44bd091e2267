// Package sheets exports classification results to a Google Sheets
// spreadsheet for sharing with an accountant.
package sheets

import "fmt"

// Config holds the configuration for the Google Sheets writer. Exactly one
// auth method must be configured: a service account key file or an OAuth2
// refresh token.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("no authentication method configured: provide a service account path or OAuth2 credentials")
	}
	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("multiple authentication methods configured; use either OAuth2 or a service account")
	}
	return nil
}

// Name returns the spreadsheet title to use when creating a new sheet.
func (c *Config) Name() string {
	if c.SpreadsheetName != "" {
		return c.SpreadsheetName
	}
	return "Bank Statement Transactions"
}
