package services

import (
	"fmt"

	"manis/internal/models"
	"manis/internal/repositories"

	"github.com/shopspring/decimal"
)

// ProductService handles business logic related to the catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product after checking the price parses.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if _, err := decimal.NewFromString(product.Price); err != nil {
		return fmt.Errorf("invalid product price %q: %w", product.Price, err)
	}
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if _, err := decimal.NewFromString(product.Price); err != nil {
		return fmt.Errorf("invalid product price %q: %w", product.Price, err)
	}
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

// ToggleAvailability flips the admin availability switch as an explicit
// two-phase operation: apply to the loaded record, attempt the write, and
// restore the prior value if the write fails so the caller always sees the
// authoritative state.
func (s *ProductService) ToggleAvailability(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	prior := product.IsAvailable
	product.IsAvailable = !prior

	if err := s.repo.Update(product); err != nil {
		product.IsAvailable = prior
		return nil, fmt.Errorf("failed to toggle availability for product %s: %w", id, err)
	}
	return product, nil
}
