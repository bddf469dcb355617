package product

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "products.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		product Product
		ok      bool
	}{
		{"valid", Product{Name: "Widget", Price: 9.99}, true},
		{"blank name", Product{Name: "", Price: 9.99}, false},
		{"name with spaces", Product{Name: "My Widget", Price: 9.99}, false},
		{"name with digits", Product{Name: "Widget2", Price: 9.99}, false},
		{"zero price", Product{Name: "Widget", Price: 0}, false},
		{"negative price", Product{Name: "Widget", Price: -1}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.product.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestInsertAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p := Product{ID: uuid.New(), Name: "Widget", Price: 9.99}
	require.NoError(t, store.Insert(ctx, p))

	got, err := store.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestInsertDuplicateName(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, Product{ID: uuid.New(), Name: "Widget", Price: 9.99}))

	err := store.Insert(ctx, Product{ID: uuid.New(), Name: "Widget", Price: 19.99})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestInsertInvalid(t *testing.T) {
	store := openTestStore(t)

	err := store.Insert(context.Background(), Product{ID: uuid.New(), Name: "bad name", Price: 1})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestGetMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPagination(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	names := []string{"Anvil", "Bolt", "Cog", "Drill"}
	for _, name := range names {
		require.NoError(t, store.Insert(ctx, Product{ID: uuid.New(), Name: name, Price: 1}))
	}

	page, err := store.List(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Bolt", page[0].Name)
	assert.Equal(t, "Cog", page[1].Name)

	// Default limit kicks in for non-positive values.
	all, err := store.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, len(names))
}

func TestListEmpty(t *testing.T) {
	store := openTestStore(t)

	page, err := store.List(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestUpdate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p := Product{ID: uuid.New(), Name: "Widget", Price: 9.99}
	require.NoError(t, store.Insert(ctx, p))

	p.Name = "Gadget"
	p.Price = 14.99
	require.NoError(t, store.Update(ctx, p))

	got, err := store.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestUpdateToExistingName(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, Product{ID: uuid.New(), Name: "Anvil", Price: 1}))
	bolt := Product{ID: uuid.New(), Name: "Bolt", Price: 2}
	require.NoError(t, store.Insert(ctx, bolt))

	bolt.Name = "Anvil"
	err := store.Update(ctx, bolt)
	assert.ErrorIs(t, err, ErrDuplicate)

	// The rejected rename must not have touched the row.
	got, err := store.Get(ctx, bolt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bolt", got.Name)
}

func TestUpdateMissing(t *testing.T) {
	store := openTestStore(t)

	err := store.Update(context.Background(), Product{ID: uuid.New(), Name: "Widget", Price: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p := Product{ID: uuid.New(), Name: "Widget", Price: 9.99}
	require.NoError(t, store.Insert(ctx, p))
	require.NoError(t, store.Delete(ctx, p.ID))

	_, err := store.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMissing(t *testing.T) {
	store := openTestStore(t)

	err := store.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
