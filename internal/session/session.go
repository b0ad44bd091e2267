// Package session owns the mutable state of one categorization session: the
// current result set, the active filter criteria, and the in-flight state of
// a classification call. A Session is not safe for concurrent use; callers
// drive it from a single goroutine, matching the event-driven model of the
// surrounding commands and TUI.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/jacobcrotty/bankcat/internal/classify"
	"github.com/jacobcrotty/bankcat/internal/model"
	"github.com/jacobcrotty/bankcat/internal/stats"
)

// ErrClassificationInFlight is returned when a classification is requested
// while a previous one has not completed. At most one classification may be
// outstanding per session.
var ErrClassificationInFlight = errors.New("a classification is already in flight")

// FilterAll is the sentinel meaning "no constraint" for the category and
// confidence criteria, mirroring the all option of a filter dropdown.
const FilterAll = "all"

// Filter is the active filter criteria. Zero values mean no constraint.
type Filter struct {
	Search     string
	Category   string
	Confidence string
}

// FilterPatch is a partial filter update. Nil fields keep their previous
// values, so criteria can be adjusted one at a time.
type FilterPatch struct {
	Search     *string
	Category   *string
	Confidence *string
}

// Session holds the current result set and filter criteria.
type Session struct {
	client   classify.Client
	results  []model.TransactionRecord
	filter   Filter
	inFlight bool
}

// New creates a session backed by the given classification client.
func New(client classify.Client) *Session {
	return &Session{client: client}
}

// SetResults replaces the result set wholesale. Filter criteria deliberately
// persist across replacement and are simply reapplied against the new set.
func (s *Session) SetResults(records []model.TransactionRecord) {
	s.results = make([]model.TransactionRecord, len(records))
	copy(s.results, records)
}

// Results returns the full current result set.
func (s *Session) Results() []model.TransactionRecord {
	out := make([]model.TransactionRecord, len(s.results))
	copy(out, s.results)
	return out
}

// Filter returns the active filter criteria.
func (s *Session) Filter() Filter {
	return s.filter
}

// SetFilter merges the patch into the current criteria.
func (s *Session) SetFilter(patch FilterPatch) {
	if patch.Search != nil {
		s.filter.Search = *patch.Search
	}
	if patch.Category != nil {
		s.filter.Category = *patch.Category
	}
	if patch.Confidence != nil {
		s.filter.Confidence = *patch.Confidence
	}
}

// ResetFilter clears all criteria.
func (s *Session) ResetFilter() {
	s.filter = Filter{}
}

// FilteredView recomputes the filtered subsequence of the result set. The
// scan is always full and order preserving; result sets are bounded by one
// statement's transaction count, so there is nothing worth caching.
func (s *Session) FilteredView() []model.TransactionRecord {
	view := make([]model.TransactionRecord, 0, len(s.results))
	for _, r := range s.results {
		if s.filter.matches(r) {
			view = append(view, r)
		}
	}
	return view
}

func (f Filter) matches(r model.TransactionRecord) bool {
	if search := strings.ToLower(f.Search); search != "" {
		if !strings.Contains(strings.ToLower(r.Description), search) &&
			!strings.Contains(strings.ToLower(r.SuggestedCategory), search) {
			return false
		}
	}
	if f.Category != "" && f.Category != FilterAll && f.Category != r.SuggestedCategory {
		return false
	}
	if f.Confidence != "" && f.Confidence != FilterAll && f.Confidence != string(r.Confidence) {
		return false
	}
	return true
}

// DistinctCategories returns the sorted, deduplicated category names across
// the full result set, including categories absent from the chart of
// accounts. It feeds the category-filter choices and must be recomputed
// whenever the result set changes.
func (s *Session) DistinctCategories() []string {
	seen := make(map[string]struct{}, len(s.results))
	var categories []string
	for _, r := range s.results {
		if _, ok := seen[r.SuggestedCategory]; ok {
			continue
		}
		seen[r.SuggestedCategory] = struct{}{}
		categories = append(categories, r.SuggestedCategory)
	}
	sort.Strings(categories)
	return categories
}

// Stats computes summary statistics over the full result set.
func (s *Session) Stats() stats.Summary {
	return stats.Compute(s.results)
}

// InFlight reports whether a classification call is outstanding.
func (s *Session) InFlight() bool {
	return s.inFlight
}

// Classify sends the document for classification and replaces the result set
// with the outcome. On any error the previous result set is left untouched.
// A second call while one is outstanding fails with
// ErrClassificationInFlight.
func (s *Session) Classify(ctx context.Context, req classify.Request) ([]model.TransactionRecord, error) {
	if s.inFlight {
		return nil, ErrClassificationInFlight
	}
	s.inFlight = true
	defer func() { s.inFlight = false }()

	records, err := s.client.Classify(ctx, req)
	if err != nil {
		slog.Debug("classification failed, keeping previous results",
			"error", err, "previous_count", len(s.results))
		return nil, err
	}

	s.SetResults(records)
	return s.Results(), nil
}
