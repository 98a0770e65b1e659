package sizing

import (
	"fmt"
	"strings"

	"sizefit/domain"
)

// fabricNotes carries care/stretch remarks per fabric, surfaced alongside
// the recommendation.
var fabricNotes = map[string]string{
	"cotton":    "Cotton may shrink slightly after the first washes.",
	"wool":      "Wool has some natural stretch and tends to mold to the body.",
	"polyester": "Polyester keeps its shape and size consistently.",
	"linen":     "Linen has little stretch, so consider the fit carefully.",
	"blend":     "This fabric blend usually balances comfort and durability.",
}

// buildReasoning explains the recommendation in plain English: measurements
// first, then history and preference when they contributed.
func (e *Engine) buildReasoning(
	client domain.Client,
	product domain.Product,
	rec domain.SizeRecommendation,
	history []domain.PurchaseRecord,
) string {
	var parts []string

	if client.HasMeasurements() {
		parts = append(parts, fmt.Sprintf(
			"Based on the measurements on file (%s), size %s of %s is the closest match to the size chart.",
			describeMeasurements(client), rec.RecommendedSize, product.Name,
		))
	} else {
		parts = append(parts, fmt.Sprintf(
			"No body measurements are on file, so size %s of %s was chosen from purchase history and fit preference only.",
			rec.RecommendedSize, product.Name,
		))
	}

	positive := 0
	for _, r := range history {
		if recordRelevant(r, product) && ClassifyFeedback(r.Feedback) == FeedbackPositive {
			positive++
		}
	}
	if positive > 0 {
		parts = append(parts, "Past purchases with positive fit feedback back this size up.")
	}

	pref := strings.ToLower(client.PreferredFit)
	garment := strings.ToLower(product.Fit)
	switch {
	case pref != "" && pref == garment:
		parts = append(parts, fmt.Sprintf("The garment's %s cut matches the declared fit preference.", garment))
	case pref == "slim" && (garment == "loose" || garment == "oversized"):
		parts = append(parts, fmt.Sprintf(
			"The garment runs %s while the preference is slim; going one size down gives a more fitted look.", garment))
	}

	return strings.Join(parts, " ")
}

// buildFitNotes adds fabric behavior and a comparison against the reference
// model when the height difference is large enough to matter.
func (e *Engine) buildFitNotes(client domain.Client, product domain.Product) string {
	var notes []string

	if product.ModelHeightCM > 0 && client.HeightCM > 0 {
		diff := client.HeightCM - product.ModelHeightCM
		if diff > 10 {
			notes = append(notes, fmt.Sprintf(
				"You are %dcm taller than the reference model, so the garment may run a bit shorter on you.", diff))
		} else if diff < -10 {
			notes = append(notes, fmt.Sprintf(
				"You are %dcm shorter than the reference model, so the garment may run a bit longer on you.", -diff))
		}
	}

	if note, ok := fabricNotes[strings.ToLower(product.Fabric)]; ok {
		notes = append(notes, note)
	}

	if len(notes) == 0 {
		return "No additional fit notes."
	}
	return strings.Join(notes, " ")
}

func describeMeasurements(c domain.Client) string {
	var dims []string
	if c.BustCM != nil {
		dims = append(dims, fmt.Sprintf("bust %.0fcm", *c.BustCM))
	}
	if c.WaistCM != nil {
		dims = append(dims, fmt.Sprintf("waist %.0fcm", *c.WaistCM))
	}
	if c.HipsCM != nil {
		dims = append(dims, fmt.Sprintf("hips %.0fcm", *c.HipsCM))
	}
	return strings.Join(dims, ", ")
}
