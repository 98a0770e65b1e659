package sizing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sizefit/domain"
	"sizefit/pkg/logger"

	"gorm.io/datatypes"
)

// ---- Repository interfaces ----

type ClientRepository interface {
	FindByClientID(ctx context.Context, clientID string) (domain.Client, error)
}

type ProductRepository interface {
	FindByProductID(ctx context.Context, productID string) (domain.Product, error)
}

type PurchaseRepository interface {
	FindByClientID(ctx context.Context, clientID uint) ([]domain.Purchase, error)
	Create(ctx context.Context, purchase *domain.Purchase) error
}

// ---- Usecase / Service ----

type SizingService struct {
	clientRepo   ClientRepository
	productRepo  ProductRepository
	purchaseRepo PurchaseRepository
	engine       *Engine
}

func NewSizingService(
	clientRepo ClientRepository,
	productRepo ProductRepository,
	purchaseRepo PurchaseRepository,
	engine *Engine,
) *SizingService {
	return &SizingService{
		clientRepo:   clientRepo,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		engine:       engine,
	}
}

// RecommendSize loads the client, product, and purchase history, then runs
// the scoring engine over them.
func (s *SizingService) RecommendSize(
	ctx context.Context,
	clientID string,
	productID string,
) (domain.SizeRecommendation, error) {

	if err := ctx.Err(); err != nil {
		return domain.SizeRecommendation{}, fmt.Errorf("context error: %w", err)
	}

	client, err := s.clientRepo.FindByClientID(ctx, clientID)
	if err != nil {
		return domain.SizeRecommendation{}, err
	}

	product, err := s.productRepo.FindByProductID(ctx, productID)
	if err != nil {
		return domain.SizeRecommendation{}, err
	}

	history, err := s.loadHistory(ctx, client)
	if err != nil {
		return domain.SizeRecommendation{}, err
	}

	rec, err := s.engine.Recommend(client, product, history)
	if err != nil {
		return domain.SizeRecommendation{}, err
	}

	logger.Debug("size_recommendation",
		"client_id", clientID,
		"product_id", productID,
		"recommended_size", rec.RecommendedSize,
		"confidence", rec.Confidence,
		"history_records", len(history),
	)

	RecommendationsTotal.
		WithLabelValues(rec.RecommendedSize, strconv.FormatBool(rec.InsufficientData)).
		Inc()

	return rec, nil
}

// loadHistory joins the client's purchases with the fit type of each
// purchased product. Products no longer in the catalog still count through
// their product id alone.
func (s *SizingService) loadHistory(ctx context.Context, client domain.Client) ([]domain.PurchaseRecord, error) {
	purchases, err := s.purchaseRepo.FindByClientID(ctx, client.ID)
	if err != nil {
		return nil, fmt.Errorf("load purchase history: %w", err)
	}
	if len(purchases) == 0 {
		return nil, nil
	}

	fitByProduct := make(map[string]string)
	records := make([]domain.PurchaseRecord, 0, len(purchases))

	for _, p := range purchases {
		fit, seen := fitByProduct[p.ProductID]
		if !seen {
			if prod, err := s.productRepo.FindByProductID(ctx, p.ProductID); err == nil {
				fit = prod.Fit
			}
			fitByProduct[p.ProductID] = fit
		}
		records = append(records, domain.PurchaseRecord{
			ProductID:  p.ProductID,
			ProductFit: fit,
			Size:       p.SizePurchased,
			Feedback:   p.FitFeedback,
		})
	}

	return records, nil
}

// RecordFeedback stores a purchase fit feedback event so future
// recommendations for this client can learn from it.
func (s *SizingService) RecordFeedback(
	ctx context.Context,
	clientID string,
	productID string,
	size string,
	feedback string,
	eventCtx map[string]any,
) error {

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if strings.TrimSpace(size) == "" {
		return errors.New("size is required")
	}

	client, err := s.clientRepo.FindByClientID(ctx, clientID)
	if err != nil {
		return err
	}

	if _, err := s.productRepo.FindByProductID(ctx, productID); err != nil {
		return err
	}

	purchase := domain.Purchase{
		ClientID:      client.ID,
		ProductID:     productID,
		SizePurchased: size,
		FitFeedback:   feedback,
		CreatedAt:     time.Now(),
	}
	if len(eventCtx) > 0 {
		purchase.Context = datatypes.JSONMap(eventCtx)
	}

	if err := s.purchaseRepo.Create(ctx, &purchase); err != nil {
		return fmt.Errorf("failed to save purchase feedback: %w", err)
	}

	FeedbackEventsTotal.
		WithLabelValues(size, ClassifyFeedback(feedback)).
		Inc()

	logger.Debug("fit_feedback",
		"client_id", clientID,
		"product_id", productID,
		"size", size,
		"feedback_class", ClassifyFeedback(feedback),
	)

	return nil
}
