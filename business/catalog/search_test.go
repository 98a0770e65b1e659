package catalog

import (
	"context"
	"testing"

	"sizefit/domain"
)

// in-memory repository stub, list only
type fakeProductRepo struct {
	products []domain.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error { return nil }
func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id uint) error                 { return nil }

func (f *fakeProductRepo) FindByProductID(ctx context.Context, productID string) (domain.Product, error) {
	for _, p := range f.products {
		if p.ProductID == productID {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	return f.products, nil
}

func testCatalog() *fakeProductRepo {
	return &fakeProductRepo{products: []domain.Product{
		{ProductID: "P001", Name: "Summer Dress", Fit: "regular", Fabric: "cotton"},
		{ProductID: "P002", Name: "Wool Coat", Fit: "loose", Fabric: "wool"},
		{ProductID: "P003", Name: "Slim Blazer", Fit: "slim", Fabric: "polyester"},
		{ProductID: "P004", Name: "Wool Sweater", Fit: "regular", Fabric: "wool"},
	}}
}

func TestSearchProductsByExactID(t *testing.T) {
	svc := NewCatalogService(testCatalog())

	results, err := svc.SearchProducts(context.Background(), "P002", 5)
	if err != nil {
		t.Fatalf("SearchProducts returned error: %v", err)
	}

	if len(results) == 0 || results[0].ProductID != "P002" {
		t.Errorf("expected P002 first, got %v", results)
	}
}

func TestSearchProductsByFabric(t *testing.T) {
	svc := NewCatalogService(testCatalog())

	results, err := svc.SearchProducts(context.Background(), "wool", 5)
	if err != nil {
		t.Fatalf("SearchProducts returned error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 wool products, got %d", len(results))
	}
	for _, p := range results {
		if p.Fabric != "wool" {
			t.Errorf("unexpected match %s", p.ProductID)
		}
	}
}

func TestSearchProductsMultiWordQuery(t *testing.T) {
	svc := NewCatalogService(testCatalog())

	results, err := svc.SearchProducts(context.Background(), "wool coat", 5)
	if err != nil {
		t.Fatalf("SearchProducts returned error: %v", err)
	}

	if len(results) == 0 || results[0].ProductID != "P002" {
		t.Errorf("expected the coat to rank first, got %v", results)
	}
}

func TestSearchProductsLimit(t *testing.T) {
	svc := NewCatalogService(testCatalog())

	results, err := svc.SearchProducts(context.Background(), "wool", 1)
	if err != nil {
		t.Fatalf("SearchProducts returned error: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected limit to cap results, got %d", len(results))
	}
}

func TestSearchProductsNoMatch(t *testing.T) {
	svc := NewCatalogService(testCatalog())

	results, err := svc.SearchProducts(context.Background(), "silk kimono", 5)
	if err != nil {
		t.Fatalf("SearchProducts returned error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no matches, got %v", results)
	}
}

func TestSearchProductsEmptyQuery(t *testing.T) {
	svc := NewCatalogService(testCatalog())

	results, err := svc.SearchProducts(context.Background(), "   ", 5)
	if err != nil {
		t.Fatalf("SearchProducts returned error: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil for empty query, got %v", results)
	}
}
