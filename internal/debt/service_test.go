package debt

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/maple-budget/maple/internal/activity"
	"github.com/maple-budget/maple/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("not found")

type memStore struct {
	mu   sync.Mutex
	rows map[string]model.Liability
}

func newMemStore() *memStore {
	return &memStore{rows: map[string]model.Liability{}}
}

func (m *memStore) ListLiabilities(_ context.Context, userID string) ([]model.Liability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Liability
	for _, l := range m.rows {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) GetLiability(_ context.Context, userID, id string) (model.Liability, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.rows[id]
	if !ok || l.UserID != userID {
		return model.Liability{}, errMissing
	}
	return l, nil
}

func (m *memStore) CreateLiability(_ context.Context, l model.Liability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[l.ID] = l
	return nil
}

func (m *memStore) UpdateLiability(_ context.Context, l model.Liability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[l.ID]; !ok {
		return errMissing
	}
	m.rows[l.ID] = l
	return nil
}

func (m *memStore) DeleteLiability(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.rows[id]; !ok || l.UserID != userID {
		return errMissing
	}
	delete(m.rows, id)
	return nil
}

type recorder struct{ entries []activity.Entry }

func (r *recorder) Record(e activity.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func visa() model.Debt {
	return model.Debt{
		Kind:         model.DebtCreditCard,
		Name:         "Visa",
		Balance:      dec("2000"),
		Limit:        dec("5000"),
		InterestRate: dec("19.99"),
	}
}

func TestService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	rec := &recorder{}
	svc := NewService(store, rec)

	created, err := svc.Create(ctx, "sam@example.com", "u1", visa())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, dec("60").Equal(created.MinPayment))

	stored := store.rows[created.ID]
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, model.LiabilityCreditCard, stored.Type)
	assert.True(t, dec("60").Equal(stored.MinimumPayment))

	// a mortgage added through net worth is not a debt
	store.rows["m1"] = model.Liability{ID: "m1", UserID: "u1", Type: model.LiabilityMortgage, Balance: dec("300000")}

	debts, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, debts, 1)
	assert.Equal(t, "Visa", debts[0].Name)

	_, err = svc.Get(ctx, "u1", "m1")
	assert.ErrorIs(t, err, ErrNotADebt)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, "debt.create", rec.entries[0].Action)
	assert.Equal(t, created.ID, rec.entries[0].RecordID)
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(newMemStore(), nil)
	d := visa()
	d.Name = " "
	_, err := svc.Create(context.Background(), "cli", "u1", d)

	var verrs model.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "name", verrs[0].Field)
}

func TestService_UserPaymentBelowMinimum(t *testing.T) {
	svc := NewService(newMemStore(), nil)
	d := visa()
	d.UserPayment = dec("10")
	_, err := svc.Create(context.Background(), "cli", "u1", d)
	assert.ErrorIs(t, err, ErrPaymentBelowMinimum)

	d.UserPayment = dec("250")
	created, err := svc.Create(context.Background(), "cli", "u1", d)
	require.NoError(t, err)
	assert.True(t, dec("250").Equal(created.Payment()))
}

func TestService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewService(store, nil)

	created, err := svc.Create(ctx, "cli", "u1", visa())
	require.NoError(t, err)

	createdAt := store.rows[created.ID].CreatedAt

	upd := visa()
	upd.Balance = dec("1000")
	updated, err := svc.Update(ctx, "cli", "u1", created.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, dec("30").Equal(updated.MinPayment))
	assert.Equal(t, createdAt, store.rows[created.ID].CreatedAt)

	_, err = svc.Update(ctx, "cli", "u2", created.ID, upd)
	assert.ErrorIs(t, err, errMissing)

	require.NoError(t, svc.Delete(ctx, "cli", "u1", created.ID))
	assert.Empty(t, store.rows)

	err = svc.Delete(ctx, "cli", "u1", created.ID)
	assert.ErrorIs(t, err, errMissing)
}
