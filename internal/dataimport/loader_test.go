package dataimport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sizefit/domain"
)

// ---- in-memory repositories ----

type memClientRepo struct {
	nextID  uint
	clients map[string]domain.Client
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{nextID: 1, clients: make(map[string]domain.Client)}
}

func (m *memClientRepo) Create(ctx context.Context, client *domain.Client) error {
	client.ID = m.nextID
	m.nextID++
	m.clients[client.ClientID] = *client
	return nil
}

func (m *memClientRepo) FindByClientID(ctx context.Context, clientID string) (domain.Client, error) {
	c, ok := m.clients[clientID]
	if !ok {
		return domain.Client{}, domain.ErrClientNotFound
	}
	return c, nil
}

func (m *memClientRepo) Update(ctx context.Context, client *domain.Client) error {
	m.clients[client.ClientID] = *client
	return nil
}

type memProductRepo struct {
	nextID   uint
	products map[string]domain.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{nextID: 1, products: make(map[string]domain.Product)}
}

func (m *memProductRepo) Create(ctx context.Context, product *domain.Product) error {
	product.ID = m.nextID
	m.nextID++
	m.products[product.ProductID] = *product
	return nil
}

func (m *memProductRepo) FindByProductID(ctx context.Context, productID string) (domain.Product, error) {
	p, ok := m.products[productID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (m *memProductRepo) Update(ctx context.Context, product *domain.Product) error {
	m.products[product.ProductID] = *product
	return nil
}

type memPurchaseRepo struct {
	purchases []domain.Purchase
}

func (m *memPurchaseRepo) Create(ctx context.Context, purchase *domain.Purchase) error {
	m.purchases = append(m.purchases, *purchase)
	return nil
}

func (m *memPurchaseRepo) FindByClientID(ctx context.Context, clientID uint) ([]domain.Purchase, error) {
	var out []domain.Purchase
	for _, p := range m.purchases {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ---- fixtures ----

const clientProfilesSeed = `[
  {
    "client_id": "C0001",
    "name": "Ana Torres",
    "age": 29,
    "height_cm": 168,
    "weight_kg": 62.5,
    "body_measurements": {"bust_cm": 90, "waist_cm": 70, "hips_cm": 95},
    "preferred_fit": "regular",
    "purchase_history": [
      {"product_id": "P001", "size_purchased": "M", "fit_feedback": "perfect fit"},
      {"product_id": "P002", "size_purchased": "L", "fit_feedback": "too loose"}
    ]
  },
  {
    "client_id": "C0002",
    "name": "Lucía Gómez",
    "age": 41,
    "height_cm": 172,
    "weight_kg": 68,
    "body_measurements": {"waist_cm": 74},
    "preferred_fit": "loose",
    "purchase_history": []
  }
]`

const productCatalogSeed = `[
  {
    "product_id": "P001",
    "name": "Summer Dress",
    "fit": "regular",
    "fabric": "cotton",
    "available_sizes": ["S", "M", "L"],
    "size_chart": {
      "M": {
        "bust": {"min_cm": 86, "max_cm": 90},
        "waist": {"min_cm": 66, "max_cm": 70},
        "hips": {"min_cm": 92, "max_cm": 96}
      }
    },
    "model_reference": {"height_cm": 175, "wearing_size": "S"}
  },
  {
    "product_id": "P002",
    "name": "Wool Coat",
    "fit": "loose",
    "fabric": "wool",
    "available_sizes": ["M", "L", "XL"],
    "size_chart": {
      "L": {
        "bust": {"min_cm": 91, "max_cm": 95},
        "waist": {"min_cm": 71, "max_cm": 75},
        "hips": {"min_cm": 97, "max_cm": 101}
      }
    },
    "model_reference": {"height_cm": 180, "wearing_size": "M"}
  }
]`

func writeSeedFiles(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, clientProfilesFile), []byte(clientProfilesSeed), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, productCatalogFile), []byte(productCatalogSeed), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return dir
}

// ---- tests ----

func TestImporterRun(t *testing.T) {
	clients := newMemClientRepo()
	products := newMemProductRepo()
	purchases := &memPurchaseRepo{}

	importer := NewImporter(clients, products, purchases)
	if err := importer.Run(context.Background(), writeSeedFiles(t)); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(products.products) != 2 {
		t.Errorf("expected 2 products, got %d", len(products.products))
	}
	if len(clients.clients) != 2 {
		t.Errorf("expected 2 clients, got %d", len(clients.clients))
	}
	if len(purchases.purchases) != 2 {
		t.Errorf("expected 2 purchases, got %d", len(purchases.purchases))
	}

	ana, err := clients.FindByClientID(context.Background(), "C0001")
	if err != nil {
		t.Fatalf("find C0001: %v", err)
	}
	if ana.BustCM == nil || *ana.BustCM != 90 {
		t.Errorf("expected bust 90, got %v", ana.BustCM)
	}

	// partial measurements stay partial
	lucia, err := clients.FindByClientID(context.Background(), "C0002")
	if err != nil {
		t.Fatalf("find C0002: %v", err)
	}
	if lucia.BustCM != nil || lucia.HipsCM != nil {
		t.Error("expected missing dimensions to stay nil")
	}
	if lucia.WaistCM == nil || *lucia.WaistCM != 74 {
		t.Errorf("expected waist 74, got %v", lucia.WaistCM)
	}

	coat, err := products.FindByProductID(context.Background(), "P002")
	if err != nil {
		t.Fatalf("find P002: %v", err)
	}
	if coat.ModelHeightCM != 180 || coat.ModelWearingSize != "M" {
		t.Errorf("expected model reference to import, got %d/%s", coat.ModelHeightCM, coat.ModelWearingSize)
	}
	chart, err := coat.Chart()
	if err != nil {
		t.Fatalf("decode chart: %v", err)
	}
	if chart["L"].Waist.MaxCM != 75 {
		t.Errorf("expected chart ranges to round-trip, got %+v", chart["L"])
	}
}

func TestImporterRunIsIdempotent(t *testing.T) {
	clients := newMemClientRepo()
	products := newMemProductRepo()
	purchases := &memPurchaseRepo{}
	dir := writeSeedFiles(t)

	importer := NewImporter(clients, products, purchases)
	if err := importer.Run(context.Background(), dir); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := importer.Run(context.Background(), dir); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(clients.clients) != 2 {
		t.Errorf("expected clients unchanged, got %d", len(clients.clients))
	}
	if len(purchases.purchases) != 2 {
		t.Errorf("expected purchases deduplicated, got %d", len(purchases.purchases))
	}
}

func TestImporterMissingDir(t *testing.T) {
	importer := NewImporter(newMemClientRepo(), newMemProductRepo(), &memPurchaseRepo{})

	if err := importer.Run(context.Background(), "/nonexistent"); err == nil {
		t.Error("expected an error for a missing data directory")
	}
}
