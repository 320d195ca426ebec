package wishlist

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/brewhub/internal/domain"
)

type fakeWishlistAPI struct {
	products []domain.Product
	creates  int
	deletes  int
	addErr   error
	delErr   error
}

func (f *fakeWishlistAPI) ListWishlist(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeWishlistAPI) AddWishlistItem(ctx context.Context, productID string) error {
	f.creates++
	return f.addErr
}

func (f *fakeWishlistAPI) RemoveWishlistItem(ctx context.Context, productID string) error {
	f.deletes++
	return f.delErr
}

func TestToggleMembershipEndToEnd(t *testing.T) {
	api := &fakeWishlistAPI{}
	m := New(api)
	ctx := context.Background()
	p := domain.Product{ID: "p", Name: "Mocha"}

	// Initially absent: toggle adds, one remote create.
	added, err := m.Toggle(ctx, p)
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, m.Contains("p"))
	assert.Equal(t, 1, api.creates)
	assert.Equal(t, 0, api.deletes)

	// Present: toggle removes, one remote delete.
	added, err = m.Toggle(ctx, p)
	require.NoError(t, err)
	assert.False(t, added)
	assert.False(t, m.Contains("p"))
	assert.Equal(t, 1, api.creates)
	assert.Equal(t, 1, api.deletes)
}

func TestToggleRollsBackOnRemoteFailure(t *testing.T) {
	api := &fakeWishlistAPI{addErr: errors.New("boom")}
	m := New(api)

	_, err := m.Toggle(context.Background(), domain.Product{ID: "p"})
	require.Error(t, err)
	assert.False(t, m.Contains("p"), "failed add must not leave membership behind")
}

func TestLoadReplacesSet(t *testing.T) {
	api := &fakeWishlistAPI{products: []domain.Product{{ID: "a"}, {ID: "b"}}}
	m := New(api)

	require.NoError(t, m.Load(context.Background()))
	assert.Len(t, m.Products(), 2)
	assert.True(t, m.Contains("a"))
	assert.True(t, m.Contains("b"))

	m.Clear()
	assert.Empty(t, m.Products())
}
