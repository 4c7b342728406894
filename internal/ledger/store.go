// Package ledger is the sole authority over the per-user financial
// document. Every mutation is a full read-modify-write of the document
// under the current user's storage key, serialized by a mutex so two
// handlers cannot interleave their cycles within this process.
//
// Failure semantics favor availability: a missing session, a malformed
// stored document or an unknown record id degrade to an empty document,
// a false result or a no-op, with a diagnostic logged. Validation
// errors are the exception; they surface to the caller before any write.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/events"
	"fintrack/internal/kv"
	"fintrack/internal/session"
)

// ErrNoSession is returned by mutations when no user is resolved. There
// is no shared anonymous document: reads degrade to an empty document
// and writes decline.
var ErrNoSession = errors.New("no user logged in")

// Store reads and writes financial documents through the key-value
// store, scoped by the session manager. feed may be nil.
type Store struct {
	mu      sync.Mutex
	kv      kv.Store
	session *session.Manager
	feed    *events.Client
}

func NewStore(store kv.Store, sess *session.Manager, feed *events.Client) *Store {
	return &Store{kv: store, session: sess, feed: feed}
}

// Document returns the current user's document. On first access the
// empty document is persisted so repeated reads are idempotent. With no
// session or a malformed stored value it degrades to an empty document.
func (s *Store) Document(ctx context.Context) core.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document(ctx)
}

func (s *Store) document(ctx context.Context) core.Document {
	profile, ok := s.session.Current(ctx)
	if !ok {
		slog.WarnContext(ctx, "no user logged in, returning empty document")
		return core.EmptyDocument()
	}

	key := session.DocumentKey(profile.ID)
	raw, exists, err := s.kv.Get(ctx, key)
	if err != nil {
		slog.ErrorContext(ctx, "read document", "user_id", profile.ID, "error", err)
		return core.EmptyDocument()
	}

	if !exists {
		doc := core.EmptyDocument()
		if !s.persist(ctx, profile.ID, doc) {
			slog.WarnContext(ctx, "could not persist first-access document", "user_id", profile.ID)
		}
		return doc
	}

	var doc core.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		// Corrupt data stays in place; overwriting it would destroy
		// whatever a user might still recover by hand.
		slog.ErrorContext(ctx, "malformed document, returning empty", "user_id", profile.ID, "error", err)
		return core.EmptyDocument()
	}
	return doc.Normalize()
}

// SaveDocument persists doc for the current user. It reports false when
// no user is resolved or the write fails.
func (s *Store) SaveDocument(ctx context.Context, doc core.Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.session.Current(ctx)
	if !ok {
		slog.ErrorContext(ctx, "no user logged in, document not saved")
		return false
	}
	return s.persist(ctx, profile.ID, doc.Normalize())
}

func (s *Store) persist(ctx context.Context, userID string, doc core.Document) bool {
	raw, err := json.Marshal(doc)
	if err != nil {
		slog.ErrorContext(ctx, "marshal document", "user_id", userID, "error", err)
		return false
	}
	if err := s.kv.Set(ctx, session.DocumentKey(userID), string(raw)); err != nil {
		slog.ErrorContext(ctx, "write document", "user_id", userID, "error", err)
		return false
	}
	return true
}

// mutate runs fn against the current document and persists the result.
// It returns ErrNoSession when no user is resolved and otherwise
// reports the change through the feed when changed is true.
func (s *Store) mutate(ctx context.Context, fn func(doc *core.Document) (op, list, recordID string, changed bool)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.session.Current(ctx)
	if !ok {
		return ErrNoSession
	}

	doc := s.document(ctx)
	op, list, recordID, changed := fn(&doc)
	if !changed {
		return nil
	}
	if !s.persist(ctx, profile.ID, doc) {
		slog.ErrorContext(ctx, "document not persisted after mutation",
			"user_id", profile.ID, "operation", op, "list", list, "record_id", recordID)
		return nil
	}

	if err := s.feed.PublishRecordChange(ctx, events.NewRecordChange(op, list, recordID, profile.ID)); err != nil {
		// The mutation already landed; a dead broker must not fail it.
		slog.ErrorContext(ctx, "publish record change", "error", err, "record_id", recordID)
	}
	return nil
}

// AddRevenue validates, assigns a fresh id, appends and persists. The
// stored record is returned.
func (s *Store) AddRevenue(ctx context.Context, r core.Revenue) (core.Revenue, error) {
	if err := r.Validate(); err != nil {
		return core.Revenue{}, err
	}
	r.ID = uuid.NewString()

	err := s.mutate(ctx, func(doc *core.Document) (string, string, string, bool) {
		doc.Revenues = append(doc.Revenues, r)
		return events.OpCreated, events.ListRevenues, r.ID, true
	})
	if err != nil {
		return core.Revenue{}, err
	}

	slog.InfoContext(ctx, "revenue added", "record_id", r.ID,
		"amount_cents", r.Amount.Cents, "category", r.Category)
	return r, nil
}

// UpdateRevenue merges the patch over the stored record. The bool
// reports whether the id was found; an unknown id is a no-op signal,
// not an error.
func (s *Store) UpdateRevenue(ctx context.Context, patch core.RevenuePatch) (bool, error) {
	var found bool
	var invalid error

	err := s.mutate(ctx, func(doc *core.Document) (string, string, string, bool) {
		for i, r := range doc.Revenues {
			if r.ID != patch.ID {
				continue
			}
			merged := patch.Apply(r)
			if err := merged.Validate(); err != nil {
				invalid = err
				return "", "", "", false
			}
			doc.Revenues[i] = merged
			found = true
			return events.OpUpdated, events.ListRevenues, patch.ID, true
		}
		return "", "", "", false
	})
	if err != nil {
		return false, err
	}
	if invalid != nil {
		return false, invalid
	}
	return found, nil
}

// DeleteRevenue removes the record with the given id. Unknown ids are
// benign no-ops.
func (s *Store) DeleteRevenue(ctx context.Context, id string) error {
	return s.mutate(ctx, func(doc *core.Document) (string, string, string, bool) {
		kept, removed := removeRevenue(doc.Revenues, id)
		if !removed {
			return "", "", "", false
		}
		doc.Revenues = kept
		return events.OpDeleted, events.ListRevenues, id, true
	})
}

// AddExpense validates, assigns a fresh id, forces IsFuture=false and
// defaults the payment method to cash.
func (s *Store) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	return s.addExpense(ctx, e, false)
}

// AddFutureExpense is AddExpense scoped to the future list, forcing
// IsFuture=true.
func (s *Store) AddFutureExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	return s.addExpense(ctx, e, true)
}

func (s *Store) addExpense(ctx context.Context, e core.Expense, future bool) (core.Expense, error) {
	if e.PaymentMethod == "" {
		e.PaymentMethod = core.Cash
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	e.ID = uuid.NewString()
	e.IsFuture = future

	list := events.ListExpenses
	err := s.mutate(ctx, func(doc *core.Document) (string, string, string, bool) {
		if future {
			doc.FutureExpenses = append(doc.FutureExpenses, e)
			list = events.ListFutureExpenses
		} else {
			doc.Expenses = append(doc.Expenses, e)
		}
		return events.OpCreated, list, e.ID, true
	})
	if err != nil {
		return core.Expense{}, err
	}

	slog.InfoContext(ctx, "expense added", "record_id", e.ID, "future", future,
		"amount_cents", e.Amount.Cents, "category", e.Category)
	return e, nil
}

// UpdateExpense merges the patch over a record in the normal list.
func (s *Store) UpdateExpense(ctx context.Context, patch core.ExpensePatch) (bool, error) {
	return s.updateExpense(ctx, patch, false)
}

// UpdateFutureExpense merges the patch over a record in the future list.
func (s *Store) UpdateFutureExpense(ctx context.Context, patch core.ExpensePatch) (bool, error) {
	return s.updateExpense(ctx, patch, true)
}

func (s *Store) updateExpense(ctx context.Context, patch core.ExpensePatch, future bool) (bool, error) {
	var found bool
	var invalid error

	err := s.mutate(ctx, func(doc *core.Document) (string, string, string, bool) {
		list := doc.Expenses
		name := events.ListExpenses
		if future {
			list = doc.FutureExpenses
			name = events.ListFutureExpenses
		}
		for i, e := range list {
			if e.ID != patch.ID {
				continue
			}
			merged := patch.Apply(e)
			if err := merged.Validate(); err != nil {
				invalid = err
				return "", "", "", false
			}
			list[i] = merged
			found = true
			return events.OpUpdated, name, patch.ID, true
		}
		return "", "", "", false
	})
	if err != nil {
		return false, err
	}
	if invalid != nil {
		return false, invalid
	}
	return found, nil
}

// DeleteExpense removes a record from the normal list by id.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	return s.mutate(ctx, func(doc *core.Document) (string, string, string, bool) {
		kept, removed := removeExpense(doc.Expenses, id)
		if !removed {
			return "", "", "", false
		}
		doc.Expenses = kept
		return events.OpDeleted, events.ListExpenses, id, true
	})
}

// DeleteFutureExpense removes a record from the future list by id.
// Records in the normal list are untouched even when ids collide
// across lists.
func (s *Store) DeleteFutureExpense(ctx context.Context, id string) error {
	return s.mutate(ctx, func(doc *core.Document) (string, string, string, bool) {
		kept, removed := removeExpense(doc.FutureExpenses, id)
		if !removed {
			return "", "", "", false
		}
		doc.FutureExpenses = kept
		return events.OpDeleted, events.ListFutureExpenses, id, true
	})
}

// RevenuesByPeriod returns revenues dated within [start, end] inclusive.
func (s *Store) RevenuesByPeriod(ctx context.Context, start, end core.Date) []core.Revenue {
	doc := s.Document(ctx)
	out := []core.Revenue{}
	for _, r := range doc.Revenues {
		if r.Date.InRange(start, end) {
			out = append(out, r)
		}
	}
	return out
}

// ExpensesByPeriod returns the union of normal and future expenses
// dated within [start, end] inclusive. Future expenses counting toward
// period totals is a product decision, not an accident.
func (s *Store) ExpensesByPeriod(ctx context.Context, start, end core.Date) []core.Expense {
	doc := s.Document(ctx)
	out := []core.Expense{}
	for _, e := range doc.Expenses {
		if e.Date.InRange(start, end) {
			out = append(out, e)
		}
	}
	for _, e := range doc.FutureExpenses {
		if e.Date.InRange(start, end) {
			out = append(out, e)
		}
	}
	return out
}

// NormalExpenses returns the normal list, re-asserting IsFuture=false
// defensively.
func (s *Store) NormalExpenses(ctx context.Context) []core.Expense {
	doc := s.Document(ctx)
	out := []core.Expense{}
	for _, e := range doc.Expenses {
		if !e.IsFuture {
			out = append(out, e)
		}
	}
	return out
}

// FutureExpenses returns the future list verbatim.
func (s *Store) FutureExpenses(ctx context.Context) []core.Expense {
	return s.Document(ctx).FutureExpenses
}

func removeRevenue(list []core.Revenue, id string) ([]core.Revenue, bool) {
	kept := list[:0:0]
	removed := false
	for _, r := range list {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if kept == nil {
		kept = []core.Revenue{}
	}
	return kept, removed
}

func removeExpense(list []core.Expense, id string) ([]core.Expense, bool) {
	kept := list[:0:0]
	removed := false
	for _, e := range list {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if kept == nil {
		kept = []core.Expense{}
	}
	return kept, removed
}
