// Package coa holds the chart of accounts registry: the fixed mapping from
// category name to accounting type and detail type that constrains valid
// categorizations. The registry is loaded once at startup and never mutated.
package coa

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jacobcrotty/bankcat/internal/model"
)

// Registry is an immutable chart of accounts. A lookup miss is non-fatal:
// categories returned by the classifier that are absent from the registry
// are still carried as free text everywhere.
type Registry struct {
	byName   map[string]model.Account
	accounts []model.Account
}

// New builds a registry from a list of accounts. Later duplicates of the
// same name win, matching the last-entry semantics of a hand-edited chart.
func New(accounts []model.Account) *Registry {
	r := &Registry{
		byName:   make(map[string]model.Account, len(accounts)),
		accounts: make([]model.Account, 0, len(accounts)),
	}
	index := make(map[string]int, len(accounts))
	for _, a := range accounts {
		if i, seen := index[a.Name]; seen {
			r.accounts[i] = a
		} else {
			index[a.Name] = len(r.accounts)
			r.accounts = append(r.accounts, a)
		}
		r.byName[a.Name] = a
	}
	return r
}

// Lookup returns the account for a category name.
func (r *Registry) Lookup(name string) (model.Account, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Accounts returns all accounts in their declaration order.
func (r *Registry) Accounts() []model.Account {
	out := make([]model.Account, len(r.accounts))
	copy(out, r.accounts)
	return out
}

// Len returns the number of accounts in the registry.
func (r *Registry) Len() int {
	return len(r.accounts)
}

// Render produces the "Name: Type, Detail" text block that is sent to the
// classification service as context.
func (r *Registry) Render() string {
	var b strings.Builder
	for i, a := range r.accounts {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s, %s", a.Name, a.Type, a.DetailType)
	}
	return b.String()
}

// Parse reads a chart of accounts in the same line format Render emits:
// one "Name: Type, Detail Type" entry per line. Blank lines and lines
// starting with # are skipped.
func Parse(r io.Reader) (*Registry, error) {
	var accounts []model.Account
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: expected \"Name: Type, Detail\", got %q", lineNo, line)
		}
		accountType, detail, ok := strings.Cut(rest, ",")
		if !ok {
			return nil, fmt.Errorf("line %d: missing detail type in %q", lineNo, line)
		}

		accounts = append(accounts, model.Account{
			Name:       strings.TrimSpace(name),
			Type:       model.AccountType(strings.TrimSpace(accountType)),
			DetailType: strings.TrimSpace(detail),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chart of accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("chart of accounts is empty")
	}
	return New(accounts), nil
}
