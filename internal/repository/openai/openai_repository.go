package openai

import (
	"context"
	"fmt"
	"strings"

	"sizefit/domain"
	"sizefit/pkg/metrics"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const systemPrompt = `You are an assistant specialized in clothing size recommendations.
Your job is to help clients find the perfect size based on:

1. Their body measurements
2. Their previous purchase history
3. Their fit preferences
4. The specific characteristics of the product

Be friendly and professional, give clear and useful explanations, and always
justify your recommendations with concrete data.`

type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	RateLimit float64
	Burst     int
}

// OpenAIRepository phrases engine output as natural-language replies.
type OpenAIRepository struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
}

func NewOpenAIRepository(cfg Config) *OpenAIRepository {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 3
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}

	return &OpenAIRepository{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
	}
}

func (r *OpenAIRepository) complete(ctx context.Context, userContent string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userContent},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		metrics.LLMCompletionsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		metrics.LLMCompletionsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("openai returned no choices")
	}

	metrics.LLMCompletionsTotal.WithLabelValues("ok").Inc()
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateRecommendationReply turns the engine's technical recommendation
// into a conversational answer.
func (r *OpenAIRepository) GenerateRecommendationReply(
	ctx context.Context,
	userQuery string,
	client domain.Client,
	product domain.Product,
	rec domain.SizeRecommendation,
) (string, error) {

	var b strings.Builder
	fmt.Fprintf(&b, "Client question: %q\n\n", userQuery)
	fmt.Fprintf(&b, "Client: %s (preferred fit: %s)\n", client.Name, client.PreferredFit)
	fmt.Fprintf(&b, "Product: %s (%s), fit %s, fabric %s\n", product.Name, product.ProductID, product.Fit, product.Fabric)
	fmt.Fprintf(&b, "Recommended size: %s (confidence %.2f)\n", rec.RecommendedSize, rec.Confidence)
	if len(rec.AlternativeSizes) > 0 {
		fmt.Fprintf(&b, "Alternatives: %s\n", strings.Join(rec.AlternativeSizes, ", "))
	}
	fmt.Fprintf(&b, "Technical reasoning: %s\n", rec.Reasoning)
	if rec.FitNotes != "" {
		fmt.Fprintf(&b, "Fit notes: %s\n", rec.FitNotes)
	}
	b.WriteString("\nWrite a natural, helpful reply that states the recommended size, explains why, adds relevant fit information, and mentions the alternatives when useful.")

	return r.complete(ctx, b.String())
}

// GenerateSearchReply summarizes product search results for the user.
func (r *OpenAIRepository) GenerateSearchReply(
	ctx context.Context,
	userQuery string,
	products []domain.Product,
) (string, error) {

	var b strings.Builder
	fmt.Fprintf(&b, "The client searched for: %q\n\nMatching products:\n", userQuery)
	for i, p := range products {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, "- %s (%s): fit %s, fabric %s\n", p.Name, p.ProductID, p.Fit, p.Fabric)
	}
	b.WriteString("\nWrite a short reply presenting these products and inviting the client to ask for a size recommendation.")

	return r.complete(ctx, b.String())
}

// GenerateGeneralReply answers a free-form question with whatever entity
// context the parser extracted.
func (r *OpenAIRepository) GenerateGeneralReply(
	ctx context.Context,
	userQuery string,
	contextInfo string,
) (string, error) {

	var b strings.Builder
	fmt.Fprintf(&b, "Client question: %q\n", userQuery)
	if contextInfo != "" {
		fmt.Fprintf(&b, "\nContext:\n%s\n", contextInfo)
	}
	b.WriteString("\nAnswer helpfully and briefly. If the question is unrelated to clothing sizes or the catalog, gently steer the client back to size recommendations.")

	return r.complete(ctx, b.String())
}
