package catalog

import (
	"context"
	"errors"
	"fmt"

	"sizefit/domain"
	"sizefit/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByProductID(ctx context.Context, productID string) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint) error
}

type catalogService struct {
	productRepo ProductRepository
}

func NewCatalogService(productRepo ProductRepository) *catalogService {
	return &catalogService{
		productRepo: productRepo,
	}
}

func (s *catalogService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing products", "error", err)
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all products", "error", err)
		return nil, err
	}

	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if productID == "" {
		return nil, errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByProductID(ctx, productID)
	if err != nil {
		logger.Error("failed to find product", "product_id", productID, "error", err)
		return nil, err
	}

	return &product, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if product.ProductID == "" {
		return nil, errors.New("product id is required")
	}

	if product.Name == "" {
		return nil, errors.New("product name is required")
	}

	if chart, err := product.Chart(); err != nil {
		return nil, errors.New("size chart is malformed")
	} else if len(chart) == 0 {
		return nil, errors.New("size chart is required")
	}

	if _, err := product.Sizes(); err != nil {
		return nil, errors.New("available sizes list is malformed")
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", "error", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("product created successfully", "product_id", product.ProductID)

	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ProductID == "" {
		return nil, errors.New("product id is required")
	}

	if product.Name == "" {
		return nil, errors.New("product name is required")
	}

	existing, err := s.productRepo.FindByProductID(ctx, product.ProductID)
	if err != nil {
		logger.Error("product not found", "product_id", product.ProductID)
		return nil, err
	}
	product.ID = existing.ID

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", "error", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updated, err := s.productRepo.FindByProductID(ctx, product.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	logger.Info("product updated", "product_id", product.ProductID)

	return &updated, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByProductID(ctx, productID)
	if err != nil {
		logger.Error("product not found", "product_id", productID)
		return err
	}

	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		logger.Error("failed to delete product", "error", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logger.Info("product deleted", "product_id", productID)

	return nil
}
