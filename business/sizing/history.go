package sizing

import (
	"strings"

	"sizefit/domain"
)

// Feedback classes recognized in purchase history records.
const (
	FeedbackPositive = "positive"
	FeedbackTooTight = "too_tight"
	FeedbackTooLoose = "too_loose"
	FeedbackOther    = "other"
)

// ClassifyFeedback buckets a free-text fit feedback string.
func ClassifyFeedback(feedback string) string {
	fb := strings.ToLower(feedback)
	switch {
	case strings.Contains(fb, "too tight"):
		return FeedbackTooTight
	case strings.Contains(fb, "too loose"):
		return FeedbackTooLoose
	case strings.Contains(fb, "perfect"),
		strings.Contains(fb, "comfortable"),
		strings.Contains(fb, "great"),
		strings.Contains(fb, "good fit"):
		return FeedbackPositive
	default:
		return FeedbackOther
	}
}

// historyScore shifts a neutral midpoint of 0.5 based on the client's past
// purchases of this product or of garments with the same fit type. Without
// relevant history it stays exactly at the midpoint so the history term does
// not distort the combined ranking.
func (e *Engine) historyScore(size string, product domain.Product, history []domain.PurchaseRecord) float64 {
	sizeIdx, sizeKnown := e.sizeToIndex[size]
	if !sizeKnown {
		return 0.5
	}

	adjustment := 0.0
	step := e.cfg.HistoryStep

	for _, rec := range history {
		if !recordRelevant(rec, product) {
			continue
		}
		recIdx, ok := e.sizeToIndex[rec.Size]
		if !ok {
			continue
		}

		switch ClassifyFeedback(rec.Feedback) {
		case FeedbackTooTight:
			// the purchased size pinched: push the ranking upward
			switch {
			case sizeIdx > recIdx:
				adjustment += step
			default:
				adjustment -= step
			}
		case FeedbackTooLoose:
			switch {
			case sizeIdx < recIdx:
				adjustment += step
			default:
				adjustment -= step
			}
		case FeedbackPositive:
			// reinforce the purchased size and, mildly, its neighbours
			switch {
			case sizeIdx == recIdx:
				adjustment += 2 * step
			case sizeIdx == recIdx-1 || sizeIdx == recIdx+1:
				adjustment += 0.5 * step
			}
		}
	}

	return clamp01(0.5 + adjustment)
}

// recordRelevant accepts purchases of the same product or of any product
// that shares the garment's fit type.
func recordRelevant(rec domain.PurchaseRecord, product domain.Product) bool {
	if rec.ProductID != "" && rec.ProductID == product.ProductID {
		return true
	}
	return rec.ProductFit != "" && strings.EqualFold(rec.ProductFit, product.Fit)
}
