package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lavka_back_end/internal/models"
)

// --- Fakes en mémoire ---

type fakeCartStore struct {
	mu    sync.Mutex
	carts map[string]*models.Cart
	items map[gocql.UUID]map[gocql.UUID]int
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{
		carts: make(map[string]*models.Cart),
		items: make(map[gocql.UUID]map[gocql.UUID]int),
	}
}

func (f *fakeCartStore) GetOrCreateCart(_ context.Context, userID string) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cart, ok := f.carts[userID]; ok {
		return cart, nil
	}
	cart := &models.Cart{ID: gocql.TimeUUID(), UserID: userID, CreatedAt: time.Now()}
	f.carts[userID] = cart
	f.items[cart.ID] = make(map[gocql.UUID]int)
	return cart, nil
}

func (f *fakeCartStore) GetCart(_ context.Context, userID string) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[userID]
	if !ok {
		return nil, ErrCartNotFound
	}
	return cart, nil
}

func (f *fakeCartStore) UpsertItem(_ context.Context, cartID, productID gocql.UUID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.items[cartID] == nil {
		f.items[cartID] = make(map[gocql.UUID]int)
	}
	f.items[cartID][productID] = quantity
	return nil
}

func (f *fakeCartStore) DeleteItem(_ context.Context, cartID, productID gocql.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items[cartID], productID)
	return nil
}

func (f *fakeCartStore) ListItems(_ context.Context, cartID gocql.UUID) ([]models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := []models.CartItem{}
	for productID, quantity := range f.items[cartID] {
		items = append(items, models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity})
	}
	return items, nil
}

func (f *fakeCartStore) ClearItems(_ context.Context, cartID gocql.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[cartID] = make(map[gocql.UUID]int)
	return nil
}

type fakeProducts struct {
	products map[gocql.UUID]*models.Product
}

func (f fakeProducts) FindProductByID(_ context.Context, id gocql.UUID) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func newTestProduct(name, price string) *models.Product {
	return &models.Product{
		ID:    gocql.TimeUUID(),
		Name:  name,
		Slug:  name,
		Price: decimal.RequireFromString(price),
	}
}

func newCartService(products ...*models.Product) (*CartService, *fakeCartStore) {
	byID := make(map[gocql.UUID]*models.Product)
	for _, p := range products {
		byID[p.ID] = p
	}
	store := newFakeCartStore()
	return &CartService{Carts: store, Products: fakeProducts{products: byID}}, store
}

// --- Tests ---

func TestTotalsEmptyCart(t *testing.T) {
	svc, _ := newCartService()
	ctx := context.Background()

	cart, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	quantity, err := svc.TotalQuantity(ctx, cart)
	require.NoError(t, err)
	assert.Equal(t, 0, quantity)

	price, err := svc.TotalPrice(ctx, cart)
	require.NoError(t, err)
	assert.True(t, price.IsZero())
}

func TestGetOrCreateReturnsSameCart(t *testing.T) {
	svc, _ := newCartService()
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	second, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestUpsertOverwritesNotIncrements(t *testing.T) {
	product := newTestProduct("marteau", "10.00")
	svc, store := newCartService(product)
	ctx := context.Background()

	cart, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	// Poster deux fois quantity=3 laisse 3, pas 6.
	for i := 0; i < 2; i++ {
		result, err := svc.Upsert(ctx, cart, product.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, OutcomeUpserted, result.Outcome)
	}
	assert.Equal(t, 3, store.items[cart.ID][product.ID])

	result, err := svc.Upsert(ctx, cart, product.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpserted, result.Outcome)
	assert.Equal(t, 5, store.items[cart.ID][product.ID])
}

func TestUpsertUniquenessPerPair(t *testing.T) {
	product := newTestProduct("tournevis", "4.50")
	svc, store := newCartService(product)
	ctx := context.Background()

	cart, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	for _, quantity := range []int{1, 4, 2, 9} {
		_, err := svc.Upsert(ctx, cart, product.ID, quantity)
		require.NoError(t, err)
	}

	items, err := svc.Carts.ListItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 9, items[0].Quantity)
	assert.Equal(t, product.ID, items[0].ProductID)
	_ = store
}

func TestUpsertZeroRemovesAndIsIdempotent(t *testing.T) {
	product := newTestProduct("pince", "7.25")
	svc, _ := newCartService(product)
	ctx := context.Background()

	cart, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	// Quantité 0 sur une ligne absente : no-op, pas une erreur.
	result, err := svc.Upsert(ctx, cart, product.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRemoved, result.Outcome)
	assert.Equal(t, product.Name, result.Product.Name)

	// Deux fois donne le même état qu'une fois.
	_, err = svc.Upsert(ctx, cart, product.ID, 0)
	require.NoError(t, err)

	quantity, err := svc.TotalQuantity(ctx, cart)
	require.NoError(t, err)
	assert.Equal(t, 0, quantity)
}

func TestUpsertNegativeQuantity(t *testing.T) {
	product := newTestProduct("scie", "15.00")
	svc, _ := newCartService(product)
	ctx := context.Background()

	cart, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	_, err = svc.Upsert(ctx, cart, product.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// Rien n'a été écrit.
	quantity, err := svc.TotalQuantity(ctx, cart)
	require.NoError(t, err)
	assert.Equal(t, 0, quantity)
}

func TestUpsertUnknownProduct(t *testing.T) {
	svc, _ := newCartService()
	ctx := context.Background()

	cart, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	_, err = svc.Upsert(ctx, cart, gocql.TimeUUID(), 2)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestClearIdempotent(t *testing.T) {
	product := newTestProduct("clou", "0.10")
	svc, _ := newCartService(product)
	ctx := context.Background()

	cart, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	_, err = svc.Upsert(ctx, cart, product.ID, 12)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, cart))
	require.NoError(t, svc.Clear(ctx, cart))

	quantity, err := svc.TotalQuantity(ctx, cart)
	require.NoError(t, err)
	assert.Equal(t, 0, quantity)
}

func TestTotalsExactDecimal(t *testing.T) {
	productA := newTestProduct("perceuse", "19.99")
	svc, _ := newCartService(productA)
	ctx := context.Background()

	cart, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	// Deux upserts successifs quantity=2 : une seule ligne, quantité 2.
	_, err = svc.Upsert(ctx, cart, productA.ID, 2)
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, cart, productA.ID, 2)
	require.NoError(t, err)

	items, err := svc.Items(ctx, cart)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "39.98", items[0].LineTotal.StringFixed(2))

	total, err := svc.TotalPrice(ctx, cart)
	require.NoError(t, err)
	assert.Equal(t, "39.98", total.StringFixed(2))

	_, err = svc.Upsert(ctx, cart, productA.ID, 0)
	require.NoError(t, err)

	quantity, err := svc.TotalQuantity(ctx, cart)
	require.NoError(t, err)
	assert.Equal(t, 0, quantity)
}

func TestTotalsAcrossProducts(t *testing.T) {
	productA := newTestProduct("vis", "0.35")
	productB := newTestProduct("rondelle", "0.05")
	svc, _ := newCartService(productA, productB)
	ctx := context.Background()

	cart, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	_, err = svc.Upsert(ctx, cart, productA.ID, 3)
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, cart, productB.ID, 10)
	require.NoError(t, err)

	quantity, err := svc.TotalQuantity(ctx, cart)
	require.NoError(t, err)
	assert.Equal(t, 13, quantity)

	total, err := svc.TotalPrice(ctx, cart)
	require.NoError(t, err)
	assert.Equal(t, "1.55", total.StringFixed(2))
}
