package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
	"fintrack/internal/kv"
	"fintrack/internal/session"
)

func newTestStore(t *testing.T) (*Store, *kv.Memory, core.Profile) {
	t.Helper()
	ctx := context.Background()
	backing := kv.NewMemory()
	t.Cleanup(func() { _ = backing.Close() })

	sess := session.NewManager(backing)
	_, err := sess.Register(ctx, "ana@example.com", "secret", "Ana")
	require.NoError(t, err)
	profile, err := sess.Login(ctx, "ana@example.com", "secret")
	require.NoError(t, err)

	return NewStore(backing, sess, nil), backing, profile
}

func validRevenue() core.Revenue {
	return core.Revenue{
		Description: "Salary",
		Amount:      core.Money{Cents: 500000},
		Date:        core.NewDate(2025, 6, 5),
		Category:    "salario",
		Type:        core.Fixed,
	}
}

func validExpense() core.Expense {
	return core.Expense{
		Description: "Groceries",
		Amount:      core.Money{Cents: 15075},
		Date:        core.NewDate(2025, 6, 10),
		Category:    "alimentacao",
		Type:        core.Variable,
	}
}

func TestDocumentWithoutSession(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemory()
	store := NewStore(backing, session.NewManager(backing), nil)

	doc := store.Document(ctx)
	assert.Equal(t, core.EmptyDocument(), doc)
	assert.False(t, store.SaveDocument(ctx, doc))

	_, err := store.AddRevenue(ctx, validRevenue())
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = store.AddExpense(ctx, validExpense())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestDocumentFirstAccessPersists(t *testing.T) {
	ctx := context.Background()
	store, backing, profile := newTestStore(t)

	doc := store.Document(ctx)
	assert.Equal(t, core.EmptyDocument(), doc)

	raw, ok, err := backing.Get(ctx, session.DocumentKey(profile.ID))
	require.NoError(t, err)
	require.True(t, ok, "first read should persist the empty document")
	assert.JSONEq(t, `{"revenues":[],"expenses":[],"futureExpenses":[]}`, raw)
}

func TestDocumentMalformedDataNotOverwritten(t *testing.T) {
	ctx := context.Background()
	store, backing, profile := newTestStore(t)

	require.NoError(t, backing.Set(ctx, session.DocumentKey(profile.ID), "{not json"))

	doc := store.Document(ctx)
	assert.Equal(t, core.EmptyDocument(), doc)

	raw, _, _ := backing.Get(ctx, session.DocumentKey(profile.ID))
	assert.Equal(t, "{not json", raw, "corrupt data must stay recoverable")
}

func TestSaveDocumentRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	doc := core.EmptyDocument()
	doc.Revenues = append(doc.Revenues, core.Revenue{ID: "r1", Description: "Salary",
		Amount: core.Money{Cents: 500000}, Date: core.NewDate(2025, 6, 5),
		Category: "salario", Type: core.Fixed})

	require.True(t, store.SaveDocument(ctx, doc))
	assert.Equal(t, doc, store.Document(ctx))
}

func TestAddRevenue(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	before := len(store.Document(ctx).Revenues)
	stored, err := store.AddRevenue(ctx, validRevenue())
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)

	doc := store.Document(ctx)
	assert.Len(t, doc.Revenues, before+1)
	assert.Equal(t, stored, doc.Revenues[len(doc.Revenues)-1])

	second, err := store.AddRevenue(ctx, validRevenue())
	require.NoError(t, err)
	assert.NotEqual(t, stored.ID, second.ID)

	t.Run("validation rejects before write", func(t *testing.T) {
		bad := validRevenue()
		bad.Amount = core.Money{}
		_, err := store.AddRevenue(ctx, bad)
		assert.ErrorIs(t, err, core.ErrInvalidAmount)
		assert.Len(t, store.Document(ctx).Revenues, 2)
	})
}

func TestUpdateRevenue(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	stored, err := store.AddRevenue(ctx, validRevenue())
	require.NoError(t, err)

	amount := core.Money{Cents: 550000}
	found, err := store.UpdateRevenue(ctx, core.RevenuePatch{ID: stored.ID, Amount: &amount})
	require.NoError(t, err)
	assert.True(t, found)

	doc := store.Document(ctx)
	assert.Equal(t, int64(550000), doc.Revenues[0].Amount.Cents)
	assert.Equal(t, stored.Description, doc.Revenues[0].Description, "unset fields survive")

	t.Run("unknown id changes nothing", func(t *testing.T) {
		before := store.Document(ctx)
		found, err := store.UpdateRevenue(ctx, core.RevenuePatch{ID: "nope", Amount: &amount})
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, before, store.Document(ctx))
	})

	t.Run("invalid merge rejected", func(t *testing.T) {
		empty := ""
		_, err := store.UpdateRevenue(ctx, core.RevenuePatch{ID: stored.ID, Description: &empty})
		assert.ErrorIs(t, err, core.ErrEmptyDescription)
		assert.Equal(t, "Salary", store.Document(ctx).Revenues[0].Description)
	})
}

func TestDeleteRevenue(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	first, err := store.AddRevenue(ctx, validRevenue())
	require.NoError(t, err)
	second, err := store.AddRevenue(ctx, validRevenue())
	require.NoError(t, err)

	require.NoError(t, store.DeleteRevenue(ctx, first.ID))
	doc := store.Document(ctx)
	require.Len(t, doc.Revenues, 1)
	assert.Equal(t, second.ID, doc.Revenues[0].ID)

	// Deleting a missing id is a no-op.
	require.NoError(t, store.DeleteRevenue(ctx, first.ID))
	assert.Len(t, store.Document(ctx).Revenues, 1)
}

func TestAddExpenseDefaults(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	e := validExpense()
	e.IsFuture = true // callers cannot smuggle records into the wrong list
	stored, err := store.AddExpense(ctx, e)
	require.NoError(t, err)
	assert.False(t, stored.IsFuture)
	assert.Equal(t, core.Cash, stored.PaymentMethod, "payment method defaults to cash")

	doc := store.Document(ctx)
	assert.Len(t, doc.Expenses, 1)
	assert.Empty(t, doc.FutureExpenses)
}

func TestAddFutureExpense(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	stored, err := store.AddFutureExpense(ctx, validExpense())
	require.NoError(t, err)
	assert.True(t, stored.IsFuture)

	doc := store.Document(ctx)
	assert.Empty(t, doc.Expenses)
	require.Len(t, doc.FutureExpenses, 1)
	assert.Equal(t, stored.ID, doc.FutureExpenses[0].ID)
}

func TestUpdateExpenseScopedToList(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	normal, err := store.AddExpense(ctx, validExpense())
	require.NoError(t, err)
	future, err := store.AddFutureExpense(ctx, validExpense())
	require.NoError(t, err)

	desc := "Rent"
	found, err := store.UpdateFutureExpense(ctx, core.ExpensePatch{ID: future.ID, Description: &desc})
	require.NoError(t, err)
	assert.True(t, found)

	// Updating a normal-list id through the future variant misses.
	found, err = store.UpdateFutureExpense(ctx, core.ExpensePatch{ID: normal.ID, Description: &desc})
	require.NoError(t, err)
	assert.False(t, found)

	doc := store.Document(ctx)
	assert.Equal(t, "Groceries", doc.Expenses[0].Description)
	assert.Equal(t, "Rent", doc.FutureExpenses[0].Description)
	assert.True(t, doc.FutureExpenses[0].IsFuture, "IsFuture survives updates")
}

func TestDeleteFutureExpenseLeavesNormalList(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	// Hand-craft a document where both lists share an id.
	doc := core.EmptyDocument()
	shared := validExpense()
	shared.ID = "dup"
	doc.Expenses = append(doc.Expenses, shared)
	future := shared
	future.IsFuture = true
	doc.FutureExpenses = append(doc.FutureExpenses, future)
	require.True(t, store.SaveDocument(ctx, doc))

	require.NoError(t, store.DeleteFutureExpense(ctx, "dup"))

	got := store.Document(ctx)
	assert.Empty(t, got.FutureExpenses)
	require.Len(t, got.Expenses, 1, "normal list must be untouched")
	assert.Equal(t, "dup", got.Expenses[0].ID)
}

func TestRevenuesByPeriod(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	add := func(day int) core.Revenue {
		r := validRevenue()
		r.Date = core.NewDate(2025, 6, day)
		stored, err := store.AddRevenue(ctx, r)
		require.NoError(t, err)
		return stored
	}
	onStart := add(1)
	onEnd := add(30)
	outside := validRevenue()
	outside.Date = core.NewDate(2025, 7, 1)
	_, err := store.AddRevenue(ctx, outside)
	require.NoError(t, err)

	got := store.RevenuesByPeriod(ctx, core.NewDate(2025, 6, 1), core.NewDate(2025, 6, 30))
	require.Len(t, got, 2, "boundaries are inclusive")
	assert.Equal(t, onStart.ID, got[0].ID)
	assert.Equal(t, onEnd.ID, got[1].ID)
}

func TestExpensesByPeriodIncludesFuture(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	normal, err := store.AddExpense(ctx, validExpense())
	require.NoError(t, err)
	future, err := store.AddFutureExpense(ctx, validExpense())
	require.NoError(t, err)
	late := validExpense()
	late.Date = core.NewDate(2025, 8, 1)
	_, err = store.AddFutureExpense(ctx, late)
	require.NoError(t, err)

	got := store.ExpensesByPeriod(ctx, core.NewDate(2025, 6, 1), core.NewDate(2025, 6, 30))
	require.Len(t, got, 2)
	assert.Equal(t, normal.ID, got[0].ID)
	assert.Equal(t, future.ID, got[1].ID)
}

func TestListAccessors(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newTestStore(t)

	_, err := store.AddExpense(ctx, validExpense())
	require.NoError(t, err)
	_, err = store.AddFutureExpense(ctx, validExpense())
	require.NoError(t, err)

	assert.Len(t, store.NormalExpenses(ctx), 1)
	assert.Len(t, store.FutureExpenses(ctx), 1)
}

func TestTwoUsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	backing := kv.NewMemory()
	sess := session.NewManager(backing)
	store := NewStore(backing, sess, nil)

	_, err := sess.Register(ctx, "ana@example.com", "secret", "Ana")
	require.NoError(t, err)
	_, err = sess.Register(ctx, "bia@example.com", "secret", "Bia")
	require.NoError(t, err)

	_, err = sess.Login(ctx, "ana@example.com", "secret")
	require.NoError(t, err)
	_, err = store.AddRevenue(ctx, validRevenue())
	require.NoError(t, err)

	_, err = sess.Login(ctx, "bia@example.com", "secret")
	require.NoError(t, err)
	assert.Empty(t, store.Document(ctx).Revenues, "second user sees their own document")

	_, err = sess.Login(ctx, "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Len(t, store.Document(ctx).Revenues, 1, "first user's records survive the switch")
}
