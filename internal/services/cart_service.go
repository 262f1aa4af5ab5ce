package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"manis/internal/cart"
	"manis/internal/repositories"
)

// CartService owns the session cart lifecycle: loading the versioned
// snapshot from the store (running the schema migration when needed),
// applying mutations, and writing the snapshot back after each change.
type CartService struct {
	store       repositories.CartStore
	productRepo repositories.ProductRepository
	now         func() time.Time
}

// NewCartService creates a new CartService.
func NewCartService(store repositories.CartStore, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		store:       store,
		productRepo: productRepo,
		now:         time.Now,
	}
}

// Load returns the session's cart. A missing snapshot yields an empty cart.
// A corrupt snapshot is logged as a data-integrity warning and replaced
// with an empty cart rather than failing the request.
func (s *CartService) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	data, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if _, ok := err.(*repositories.ErrCartNotFound); ok {
			return cart.New(), nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c, err := cart.Decode(data)
	if err != nil {
		log.Printf("Warning: discarding unreadable cart snapshot for session %s: %v", sessionID, err)
		return cart.New(), nil
	}
	return c, nil
}

// save serializes the cart and writes it back to the store.
func (s *CartService) save(ctx context.Context, sessionID string, c *cart.Cart) error {
	data, err := cart.Encode(c)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, sessionID, data); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// AddItem snapshots the product and adds quantity units to the session
// cart, merging with an existing line of the same identity. Whether the
// line is a pre-order is fixed here, at add time, from the product's
// availability window.
func (s *CartService) AddItem(ctx context.Context, sessionID, productID string, quantity int, customMessage string) (*cart.Cart, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable {
		return nil, fmt.Errorf("product %s is not available for ordering", product.Name)
	}
	if product.RequiresCustomText && cart.NormalizeMessage(customMessage) == "" {
		return nil, fmt.Errorf("product %s requires a custom message", product.Name)
	}

	isPreorder := !product.InWindow(s.now())

	c, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.AddItem(*product, quantity, customMessage, isPreorder)

	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQuantity overwrites a line's quantity; zero or negative removes it.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, identity string, quantity int) (*cart.Cart, error) {
	c, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.UpdateQuantity(identity, quantity)

	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem deletes a single line by identity.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, identity string) (*cart.Cart, error) {
	c, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.RemoveItem(identity)

	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveAllByProduct deletes every message variant of a product.
func (s *CartService) RemoveAllByProduct(ctx context.Context, sessionID, productID string) (*cart.Cart, error) {
	c, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.RemoveAllByProduct(productID)

	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties the session cart.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Split returns the partitioned view of the session cart along with the
// mixed-availability predicate that gates the two-batch checkout flow.
func (s *CartService) Split(ctx context.Context, sessionID string) (cart.SplitCart, bool, error) {
	c, err := s.Load(ctx, sessionID)
	if err != nil {
		return cart.SplitCart{}, false, err
	}
	s.warnOnMalformedPrices(sessionID, c)
	return cart.Split(c.Items), cart.HasMixedAvailability(c.Items), nil
}

// warnOnMalformedPrices surfaces corrupt price snapshots to the logs; the
// split itself treats them as zero and never fails over them.
func (s *CartService) warnOnMalformedPrices(sessionID string, c *cart.Cart) {
	for _, item := range c.Items {
		if _, ok := cart.ParsePrice(item.Product.Price); !ok {
			log.Printf("Warning: cart line %s in session %s has malformed price %q, treating as 0", item.Identity, sessionID, item.Product.Price)
		}
	}
}

// SetClock overrides the service's time source. Used by tests.
func (s *CartService) SetClock(now func() time.Time) {
	s.now = now
}
