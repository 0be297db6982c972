package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/gearshop/backend/internal/domain/catalog"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ProductService handles product use cases
type ProductService struct {
	products catalog.ProductRepository
	variants catalog.VariantRepository
}

// NewProductService creates a new product service
func NewProductService(products catalog.ProductRepository, variants catalog.VariantRepository) *ProductService {
	return &ProductService{
		products: products,
		variants: variants,
	}
}

// CreateProduct creates a new draft product
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	existing, err := s.products.FindBySlug(ctx, strings.ToLower(req.Slug))
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_SLUG", "A product with this slug already exists")
	}

	product, err := catalog.NewProduct(req.Name, req.Slug)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	if req.CategoryID != nil {
		product.SetCategory(*req.CategoryID)
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// AddVariant adds a purchasable variant to an existing product
func (s *ProductService) AddVariant(ctx context.Context, productID uuid.UUID, req AddVariantRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if _, err := product.AddVariant(req.SKU, valueobject.NewMoneyFromDecimal(req.Price), req.Stock); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// PublishProduct makes a product visible in the catalog
func (s *ProductService) PublishProduct(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Publish(); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// DisableProduct removes a product from sale without deleting it
func (s *ProductService) DisableProduct(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.Disable()

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetProductBySlug retrieves a product by its slug
func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.products.FindBySlug(ctx, strings.ToLower(slug))
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// ListProducts retrieves a paginated product list
func (s *ProductService) ListProducts(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}

	products, err := s.products.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, ToProductResponse(&products[i]))
	}

	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	return s.products.Delete(ctx, productID)
}
