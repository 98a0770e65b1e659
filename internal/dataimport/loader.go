package dataimport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sizefit/domain"
	"sizefit/pkg/logger"

	"gorm.io/datatypes"
)

const (
	clientProfilesFile = "client_profiles.json"
	productCatalogFile = "product_catalog.json"
)

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	FindByClientID(ctx context.Context, clientID string) (domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByProductID(ctx context.Context, productID string) (domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
}

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	FindByClientID(ctx context.Context, clientID uint) ([]domain.Purchase, error)
}

// Importer seeds clients, products, and purchase history from the JSON
// profile files into the database.
type Importer struct {
	clientRepo   ClientRepository
	productRepo  ProductRepository
	purchaseRepo PurchaseRepository
}

func NewImporter(clientRepo ClientRepository, productRepo ProductRepository, purchaseRepo PurchaseRepository) *Importer {
	return &Importer{
		clientRepo:   clientRepo,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
	}
}

// ---- Seed file shapes ----

type clientProfile struct {
	ClientID         string           `json:"client_id"`
	Name             string           `json:"name"`
	Age              int              `json:"age"`
	HeightCM         int              `json:"height_cm"`
	WeightKG         float64          `json:"weight_kg"`
	BodyMeasurements bodyMeasurements `json:"body_measurements"`
	PreferredFit     string           `json:"preferred_fit"`
	PurchaseHistory  []purchaseEntry  `json:"purchase_history"`
}

type bodyMeasurements struct {
	BustCM  *float64 `json:"bust_cm"`
	WaistCM *float64 `json:"waist_cm"`
	HipsCM  *float64 `json:"hips_cm"`
}

type purchaseEntry struct {
	ProductID     string `json:"product_id"`
	SizePurchased string `json:"size_purchased"`
	FitFeedback   string `json:"fit_feedback"`
}

type productEntry struct {
	ProductID      string                     `json:"product_id"`
	Name           string                     `json:"name"`
	Fit            string                     `json:"fit"`
	Fabric         string                     `json:"fabric"`
	AvailableSizes []string                   `json:"available_sizes"`
	SizeChart      map[string]domain.SizeSpec `json:"size_chart"`
	ModelReference modelReference             `json:"model_reference"`
}

type modelReference struct {
	HeightCM    int    `json:"height_cm"`
	WearingSize string `json:"wearing_size"`
}

// Run imports both seed files from dataDir. Products load first so that
// purchase history rows never point at an unknown product.
func (i *Importer) Run(ctx context.Context, dataDir string) error {
	if err := i.importProducts(ctx, filepath.Join(dataDir, productCatalogFile)); err != nil {
		return fmt.Errorf("import products: %w", err)
	}
	if err := i.importClients(ctx, filepath.Join(dataDir, clientProfilesFile)); err != nil {
		return fmt.Errorf("import clients: %w", err)
	}
	return nil
}

func (i *Importer) importProducts(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var entries []productEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	for _, entry := range entries {
		if entry.ProductID == "" {
			return errors.New("product entry missing product_id")
		}

		chartJSON, err := json.Marshal(entry.SizeChart)
		if err != nil {
			return err
		}
		sizesJSON, err := json.Marshal(entry.AvailableSizes)
		if err != nil {
			return err
		}

		product := domain.Product{
			ProductID:        entry.ProductID,
			Name:             entry.Name,
			Fit:              entry.Fit,
			Fabric:           entry.Fabric,
			AvailableSizes:   datatypes.JSON(sizesJSON),
			SizeChart:        datatypes.JSON(chartJSON),
			ModelHeightCM:    entry.ModelReference.HeightCM,
			ModelWearingSize: entry.ModelReference.WearingSize,
		}

		existing, err := i.productRepo.FindByProductID(ctx, entry.ProductID)
		switch {
		case err == nil:
			product.ID = existing.ID
			if err := i.productRepo.Update(ctx, &product); err != nil {
				return fmt.Errorf("update product %s: %w", entry.ProductID, err)
			}
		case errors.Is(err, domain.ErrProductNotFound):
			if err := i.productRepo.Create(ctx, &product); err != nil {
				return fmt.Errorf("create product %s: %w", entry.ProductID, err)
			}
		default:
			return err
		}
	}

	logger.Info("products imported", "count", len(entries))

	return nil
}

func (i *Importer) importClients(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var profiles []clientProfile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	purchases := 0
	for _, profile := range profiles {
		if profile.ClientID == "" {
			return errors.New("client profile missing client_id")
		}

		client := domain.Client{
			ClientID:     profile.ClientID,
			Name:         profile.Name,
			Age:          profile.Age,
			HeightCM:     profile.HeightCM,
			WeightKG:     profile.WeightKG,
			BustCM:       profile.BodyMeasurements.BustCM,
			WaistCM:      profile.BodyMeasurements.WaistCM,
			HipsCM:       profile.BodyMeasurements.HipsCM,
			PreferredFit: profile.PreferredFit,
		}

		existing, err := i.clientRepo.FindByClientID(ctx, profile.ClientID)
		switch {
		case err == nil:
			client.ID = existing.ID
			if err := i.clientRepo.Update(ctx, &client); err != nil {
				return fmt.Errorf("update client %s: %w", profile.ClientID, err)
			}
		case errors.Is(err, domain.ErrClientNotFound):
			if err := i.clientRepo.Create(ctx, &client); err != nil {
				return fmt.Errorf("create client %s: %w", profile.ClientID, err)
			}
			existing, err = i.clientRepo.FindByClientID(ctx, profile.ClientID)
			if err != nil {
				return err
			}
		default:
			return err
		}

		n, err := i.importPurchases(ctx, existing.ID, profile.PurchaseHistory)
		if err != nil {
			return fmt.Errorf("import purchases for %s: %w", profile.ClientID, err)
		}
		purchases += n
	}

	logger.Info("clients imported", "count", len(profiles), "purchases", purchases)

	return nil
}

// importPurchases appends history entries not already present. Seed history
// has no timestamps, so rows are matched on product, size, and feedback.
func (i *Importer) importPurchases(ctx context.Context, clientID uint, entries []purchaseEntry) (int, error) {
	existing, err := i.purchaseRepo.FindByClientID(ctx, clientID)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.ProductID+"|"+p.SizePurchased+"|"+p.FitFeedback] = true
	}

	created := 0
	for _, entry := range entries {
		key := entry.ProductID + "|" + entry.SizePurchased + "|" + entry.FitFeedback
		if seen[key] {
			continue
		}

		purchase := domain.Purchase{
			ClientID:      clientID,
			ProductID:     entry.ProductID,
			SizePurchased: entry.SizePurchased,
			FitFeedback:   entry.FitFeedback,
		}
		if err := i.purchaseRepo.Create(ctx, &purchase); err != nil {
			return created, err
		}
		seen[key] = true
		created++
	}

	return created, nil
}
