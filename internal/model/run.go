package model

import "time"

// Run is one saved classification run: the full result set produced by a
// single statement analysis, with enough metadata to list and re-export it
// later.
type Run struct {
	CreatedAt  time.Time
	ID         string
	SourceFile string
	Records    []TransactionRecord
}
