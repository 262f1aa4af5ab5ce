package services_test

import (
	"context"
	"testing"
	"time"

	"manis/internal/cart"
	"manis/internal/models"
	"manis/internal/repositories"
	"manis/internal/services"

	"github.com/stretchr/testify/assert"
)

// fixedClock returns a time source pinned to the given instant.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// at builds a local timestamp on an arbitrary date with the given clock time.
func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 15, hour, minute, 0, 0, time.Local)
}

func newCartServiceWithProduct(p *models.Product) (*services.CartService, *repositories.MockCartStore) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("GetByID", p.ID).Return(p, nil)
	store := repositories.NewMockCartStore()
	return services.NewCartService(store, mockRepo), store
}

func TestCartService_AddItemInstantWithinWindow(t *testing.T) {
	product := &models.Product{
		ID: "prod-1", Name: "Chocolate Cake", Price: "350.00",
		AvailableFrom: "10:00", AvailableUntil: "18:00",
		IsFragile: true, IsAvailable: true,
	}
	svc, _ := newCartServiceWithProduct(product)
	svc.SetClock(fixedClock(at(14, 0)))

	c, err := svc.AddItem(context.Background(), "sess-1", "prod-1", 1, "")
	assert.NoError(t, err)
	assert.Len(t, c.Items, 1)
	assert.False(t, c.Items[0].IsPreorder)
	assert.True(t, c.Items[0].IsFragile)
}

func TestCartService_AddItemPreorderOutsideWindow(t *testing.T) {
	product := &models.Product{
		ID: "prod-1", Name: "Chocolate Cake", Price: "350.00",
		AvailableFrom: "10:00", AvailableUntil: "18:00",
		IsAvailable: true,
	}
	svc, _ := newCartServiceWithProduct(product)
	svc.SetClock(fixedClock(at(20, 30)))

	c, err := svc.AddItem(context.Background(), "sess-1", "prod-1", 2, "")
	assert.NoError(t, err)
	assert.True(t, c.Items[0].IsPreorder)
}

func TestCartService_AddItemMergePersistsAcrossLoads(t *testing.T) {
	product := &models.Product{ID: "prod-1", Name: "Brownie Box", Price: "45.00", IsAvailable: true}
	svc, _ := newCartServiceWithProduct(product)

	_, err := svc.AddItem(context.Background(), "sess-1", "prod-1", 1, "Happy Birthday")
	assert.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "sess-1", "prod-1", 2, " happy birthday ")
	assert.NoError(t, err)

	c, err := svc.Load(context.Background(), "sess-1")
	assert.NoError(t, err)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

func TestCartService_AddItemRejectsUnavailableProduct(t *testing.T) {
	product := &models.Product{ID: "prod-1", Name: "Brownie Box", Price: "45.00", IsAvailable: false}
	svc, _ := newCartServiceWithProduct(product)

	_, err := svc.AddItem(context.Background(), "sess-1", "prod-1", 1, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestCartService_AddItemRequiresCustomText(t *testing.T) {
	product := &models.Product{ID: "prod-1", Name: "Chocolate Cake", Price: "350.00", RequiresCustomText: true, IsAvailable: true}
	svc, _ := newCartServiceWithProduct(product)

	_, err := svc.AddItem(context.Background(), "sess-1", "prod-1", 1, "   ")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires a custom message")

	c, err := svc.AddItem(context.Background(), "sess-1", "prod-1", 1, "Happy Birthday")
	assert.NoError(t, err)
	assert.Len(t, c.Items, 1)
}

func TestCartService_LoadMissingSnapshotYieldsEmptyCart(t *testing.T) {
	svc := services.NewCartService(repositories.NewMockCartStore(), new(MockProductRepository))

	c, err := svc.Load(context.Background(), "sess-unknown")
	assert.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCartService_LoadCorruptSnapshotYieldsEmptyCart(t *testing.T) {
	store := repositories.NewMockCartStore()
	assert.NoError(t, store.Set(context.Background(), "sess-1", []byte("{broken")))
	svc := services.NewCartService(store, new(MockProductRepository))

	c, err := svc.Load(context.Background(), "sess-1")
	assert.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCartService_LoadMigratesLegacySnapshot(t *testing.T) {
	store := repositories.NewMockCartStore()
	legacy := []byte(`{"version":1,"items":[{"product":{"id":"prod-1","name":"Brownie Box","price":"45.00"},"quantity":2}]}`)
	assert.NoError(t, store.Set(context.Background(), "sess-1", legacy))
	svc := services.NewCartService(store, new(MockProductRepository))

	c, err := svc.Load(context.Background(), "sess-1")
	assert.NoError(t, err)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, cart.ItemIdentity("prod-1", ""), c.Items[0].Identity)
}

func TestCartService_SplitReportsMixed(t *testing.T) {
	instant := &models.Product{ID: "prod-1", Name: "Potato Chips", Price: "25.00", IsAvailable: true}
	scheduled := &models.Product{
		ID: "prod-2", Name: "Rose Bouquet", Price: "500.00",
		AvailableFrom: "09:00", AvailableUntil: "20:00", IsAvailable: true,
	}
	mockRepo := new(MockProductRepository)
	mockRepo.On("GetByID", "prod-1").Return(instant, nil)
	mockRepo.On("GetByID", "prod-2").Return(scheduled, nil)
	svc := services.NewCartService(repositories.NewMockCartStore(), mockRepo)
	svc.SetClock(fixedClock(at(22, 0))) // outside the bouquet window

	_, err := svc.AddItem(context.Background(), "sess-1", "prod-1", 1, "")
	assert.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "sess-1", "prod-2", 1, "")
	assert.NoError(t, err)

	split, mixed, err := svc.Split(context.Background(), "sess-1")
	assert.NoError(t, err)
	assert.True(t, mixed)
	assert.Len(t, split.Instant.Items, 1)
	assert.Len(t, split.Preorder.Items, 1)
}

func TestCartService_UpdateQuantityAndRemove(t *testing.T) {
	product := &models.Product{ID: "prod-1", Name: "Brownie Box", Price: "45.00", IsAvailable: true}
	svc, _ := newCartServiceWithProduct(product)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", "prod-1", 1, "")
	assert.NoError(t, err)
	identity := cart.ItemIdentity("prod-1", "")

	c, err := svc.UpdateQuantity(ctx, "sess-1", identity, 4)
	assert.NoError(t, err)
	assert.Equal(t, 4, c.Items[0].Quantity)

	c, err = svc.UpdateQuantity(ctx, "sess-1", identity, 0)
	assert.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCartService_RemoveAllByProductAndClear(t *testing.T) {
	product := &models.Product{ID: "prod-1", Name: "Chocolate Cake", Price: "350.00", IsAvailable: true}
	svc, store := newCartServiceWithProduct(product)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", "prod-1", 1, "Happy Birthday")
	assert.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess-1", "prod-1", 1, "Get Well Soon")
	assert.NoError(t, err)

	c, err := svc.RemoveAllByProduct(ctx, "sess-1", "prod-1")
	assert.NoError(t, err)
	assert.True(t, c.IsEmpty())

	assert.NoError(t, svc.Clear(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	assert.Error(t, err)
}
