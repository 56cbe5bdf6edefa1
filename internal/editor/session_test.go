package editor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inventory/internal/editor"
	"inventory/internal/models"
	"inventory/internal/services"
)

// MockStore is a mock implementation of editor.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockStore) SaveProduct(ctx context.Context, id int64, form services.ProductForm) (int64, error) {
	args := m.Called(ctx, id, form)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func openWidget(t *testing.T, store *MockStore) *editor.Session {
	t.Helper()
	store.On("GetProduct", mock.Anything, int64(3)).Return(&models.Product{ID: 3, Name: "Widget", Quantity: 1}, nil).Once()
	s, err := editor.OpenSession(context.Background(), store, 3)
	require.NoError(t, err)
	return s
}

func TestSession_NewProductSaved(t *testing.T) {
	store := new(MockStore)
	s := editor.NewSession(store)
	assert.True(t, s.IsNew())
	assert.Equal(t, editor.Clean, s.State())

	require.NoError(t, s.Edit(func(f *services.ProductForm) { f.Name = "Widget" }))
	assert.Equal(t, editor.Dirty, s.State())

	store.On("SaveProduct", mock.Anything, int64(0), mock.MatchedBy(func(f services.ProductForm) bool {
		return f.Name == "Widget"
	})).Return(int64(8), nil).Once()

	require.NoError(t, s.Save(context.Background()))
	assert.Equal(t, editor.Saved, s.State())
	assert.True(t, s.State().Terminal())
	assert.Equal(t, int64(8), s.ID())
	store.AssertExpectations(t)
}

func TestSession_BlankNewProductIsDiscarded(t *testing.T) {
	store := new(MockStore)
	s := editor.NewSession(store)

	store.On("SaveProduct", mock.Anything, int64(0), mock.Anything).Return(int64(0), services.ErrNothingToSave).Once()

	require.NoError(t, s.Save(context.Background()))
	assert.Equal(t, editor.Discarded, s.State())
}

func TestSession_SaveFailureKeepsEditing(t *testing.T) {
	store := new(MockStore)
	s := openWidget(t, store)
	require.NoError(t, s.IncreaseQuantity())

	store.On("SaveProduct", mock.Anything, int64(3), mock.Anything).Return(int64(0), services.ErrInvalidProduct).Once()

	err := s.Save(context.Background())
	assert.ErrorIs(t, err, services.ErrInvalidProduct)
	assert.Equal(t, editor.Dirty, s.State())
}

func TestSession_LeaveClean(t *testing.T) {
	s := openWidget(t, new(MockStore))

	require.NoError(t, s.Leave())
	assert.Equal(t, editor.Discarded, s.State())

	// Finished sessions accept no more events.
	assert.ErrorIs(t, s.Edit(func(*services.ProductForm) {}), editor.ErrInvalidTransition)
}

func TestSession_LeaveDirty(t *testing.T) {
	s := openWidget(t, new(MockStore))
	require.NoError(t, s.IncreaseQuantity())

	require.NoError(t, s.Leave())
	assert.Equal(t, editor.ConfirmingDiscard, s.State())

	require.NoError(t, s.KeepEditing())
	assert.Equal(t, editor.Dirty, s.State())
	assert.Equal(t, 2, s.Form().Quantity)

	require.NoError(t, s.Leave())
	require.NoError(t, s.ConfirmDiscard())
	assert.Equal(t, editor.Discarded, s.State())
}

func TestSession_DecreaseQuantityStopsAtZero(t *testing.T) {
	s := openWidget(t, new(MockStore))

	require.NoError(t, s.DecreaseQuantity())
	assert.Equal(t, 0, s.Form().Quantity)

	assert.ErrorIs(t, s.DecreaseQuantity(), editor.ErrQuantityAlreadyZero)
	assert.Equal(t, 0, s.Form().Quantity)
}

func TestSession_Delete(t *testing.T) {
	store := new(MockStore)
	s := openWidget(t, store)
	require.NoError(t, s.IncreaseQuantity())

	require.NoError(t, s.RequestDelete())
	assert.Equal(t, editor.ConfirmingDelete, s.State())
	assert.ErrorIs(t, s.Save(context.Background()), editor.ErrInvalidTransition)

	require.NoError(t, s.CancelDelete())
	assert.Equal(t, editor.Dirty, s.State())

	store.On("DeleteProduct", mock.Anything, int64(3)).Return(errors.New("disk I/O error")).Once()
	require.NoError(t, s.RequestDelete())
	assert.Error(t, s.ConfirmDelete(context.Background()))
	assert.Equal(t, editor.Dirty, s.State())

	store.On("DeleteProduct", mock.Anything, int64(3)).Return(nil).Once()
	require.NoError(t, s.RequestDelete())
	require.NoError(t, s.ConfirmDelete(context.Background()))
	assert.Equal(t, editor.Deleted, s.State())
	store.AssertExpectations(t)
}

func TestSession_NewProductCannotBeDeleted(t *testing.T) {
	s := editor.NewSession(new(MockStore))
	assert.ErrorIs(t, s.RequestDelete(), editor.ErrNewProduct)
	assert.Equal(t, editor.Clean, s.State())
}

func TestSession_OpenMissingProduct(t *testing.T) {
	store := new(MockStore)
	store.On("GetProduct", mock.Anything, int64(9)).Return(nil, services.ErrProductNotFound).Once()

	_, err := editor.OpenSession(context.Background(), store, 9)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "confirming-discard", editor.ConfirmingDiscard.String())
	assert.Equal(t, "state(42)", editor.State(42).String())
}
