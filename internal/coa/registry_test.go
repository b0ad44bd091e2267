package coa

import (
	"strings"
	"testing"

	"github.com/jacobcrotty/bankcat/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lookup(t *testing.T) {
	r := Default()

	tests := []struct {
		name         string
		category     string
		wantType     model.AccountType
		wantDetail   string
		wantFound    bool
	}{
		{
			name:       "expense account",
			category:   "Bank Fees",
			wantType:   model.AccountTypeExpenses,
			wantDetail: "Other Business Expenses",
			wantFound:  true,
		},
		{
			name:       "cogs account",
			category:   "Vehicles - Fuel & Gas",
			wantType:   model.AccountTypeCOGS,
			wantDetail: "Other Costs of Services - COS",
			wantFound:  true,
		},
		{
			name:       "equity account",
			category:   "Retained Earnings",
			wantType:   model.AccountTypeEquity,
			wantDetail: "Retained Earnings",
			wantFound:  true,
		},
		{
			name:      "unknown category is a miss, not an error",
			category:  "Cryptocurrency Losses",
			wantFound: false,
		},
		{
			name:      "lookup is case sensitive",
			category:  "bank fees",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, found := r.Lookup(tt.category)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.category, account.Name)
				assert.Equal(t, tt.wantType, account.Type)
				assert.Equal(t, tt.wantDetail, account.DetailType)
			}
		})
	}
}

func TestRegistry_RenderParseRoundTrip(t *testing.T) {
	original := Default()

	parsed, err := Parse(strings.NewReader(original.Render()))
	require.NoError(t, err)

	assert.Equal(t, original.Accounts(), parsed.Accounts())
}

func TestRegistry_RenderFormat(t *testing.T) {
	r := New([]model.Account{
		{Name: "Meals", Type: model.AccountTypeExpenses, DetailType: "Entertainment Meals"},
		{Name: "Services", Type: model.AccountTypeIncome, DetailType: "Service/Fee Income"},
	})

	want := "Meals: Expenses, Entertainment Meals\nServices: Income, Service/Fee Income"
	assert.Equal(t, want, r.Render())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
		wantLen int
	}{
		{
			name:    "single entry",
			input:   "Meals: Expenses, Entertainment Meals",
			wantLen: 1,
		},
		{
			name: "detail type may contain commas",
			input: "Shipping & Freight: Expenses, Shipping, Freight & Delivery",
			wantLen: 1,
		},
		{
			name: "skips blanks and comments",
			input: "# chart\n\nMeals: Expenses, Entertainment Meals\n\nRent: Expenses, Other Business Expenses\n",
			wantLen: 2,
		},
		{
			name:    "missing colon",
			input:   "Meals Expenses Entertainment",
			wantErr: "expected",
		},
		{
			name:    "missing detail type",
			input:   "Meals: Expenses",
			wantErr: "missing detail type",
		},
		{
			name:    "empty input",
			input:   "\n\n",
			wantErr: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, r.Len())
		})
	}
}

func TestParse_CommaInDetailType(t *testing.T) {
	r, err := Parse(strings.NewReader("Shipping & Freight: Expenses, Shipping, Freight & Delivery"))
	require.NoError(t, err)

	account, found := r.Lookup("Shipping & Freight")
	require.True(t, found)
	assert.Equal(t, model.AccountTypeExpenses, account.Type)
	assert.Equal(t, "Shipping, Freight & Delivery", account.DetailType)
}

func TestNew_DuplicateNamesLastWins(t *testing.T) {
	r := New([]model.Account{
		{Name: "Meals", Type: model.AccountTypeExpenses, DetailType: "First"},
		{Name: "Meals", Type: model.AccountTypeExpenses, DetailType: "Second"},
	})

	require.Equal(t, 1, r.Len())
	account, _ := r.Lookup("Meals")
	assert.Equal(t, "Second", account.DetailType)
}
