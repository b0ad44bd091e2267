package classify

import "fmt"

// buildPrompt assembles the categorization instructions sent alongside the
// statement document. The chart of accounts text constrains which categories
// the service should suggest.
func buildPrompt(chartOfAccounts string) string {
	return fmt.Sprintf(`You are a QuickBooks categorization assistant. Analyze this bank statement PDF and extract all transactions.

For each transaction, suggest the most appropriate category from this chart of accounts:

%s

Respond ONLY with a JSON array in this exact format (no markdown, no explanation):
[
  {
    "date": "YYYY-MM-DD",
    "description": "transaction description",
    "amount": -123.45,
    "suggestedCategory": "Account Name",
    "confidence": "high/medium/low",
    "reasoning": "brief explanation"
  }
]

Guidelines:
- For expenses (negative amounts), use Expense accounts
- For income (positive amounts), use Income accounts
- Match descriptions to the most specific category available
- If uncertain, use "Uncategorized Expense" or "Uncategorized Income"`, chartOfAccounts)
}
