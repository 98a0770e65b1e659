package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sizefit/domain"
	"sizefit/pkg/logger"
	"sizefit/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const maxTurnsMemory = 10

// ---- Collaborator interfaces ----

type SizingService interface {
	RecommendSize(ctx context.Context, clientID, productID string) (domain.SizeRecommendation, error)
}

type CatalogService interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error)
}

type ClientService interface {
	GetClient(ctx context.Context, clientID string) (*domain.Client, error)
}

type SessionRepository interface {
	Get(ctx context.Context, sessionID string) (*domain.ConversationSession, error)
	Save(ctx context.Context, session *domain.ConversationSession) error
	Delete(ctx context.Context, sessionID string) error
}

// ResponseGenerator phrases replies through an LLM. A nil generator is
// valid: the service then answers with deterministic templates.
type ResponseGenerator interface {
	GenerateRecommendationReply(ctx context.Context, userQuery string, client domain.Client, product domain.Product, rec domain.SizeRecommendation) (string, error)
	GenerateSearchReply(ctx context.Context, userQuery string, products []domain.Product) (string, error)
	GenerateGeneralReply(ctx context.Context, userQuery string, contextInfo string) (string, error)
}

// ---- Usecase / Service ----

type ChatService struct {
	sizingService SizingService
	catalog       CatalogService
	clients       ClientService
	sessions      SessionRepository
	llm           ResponseGenerator
}

func NewChatService(
	sizingService SizingService,
	catalog CatalogService,
	clients ClientService,
	sessions SessionRepository,
	llm ResponseGenerator,
) *ChatService {
	return &ChatService{
		sizingService: sizingService,
		catalog:       catalog,
		clients:       clients,
		sessions:      sessions,
		llm:           llm,
	}
}

// ChatReply is what the handler returns to the caller for one message.
type ChatReply struct {
	SessionID      string                     `json:"session_id"`
	Response       string                     `json:"response"`
	Intent         string                     `json:"intent"`
	Recommendation *domain.SizeRecommendation `json:"recommendation,omitempty"`
	Products       []domain.Product           `json:"products,omitempty"`
}

// HandleMessage runs one conversation turn: resolve the session, parse the
// message, dispatch on intent, and persist the updated session.
func (s *ChatService) HandleMessage(ctx context.Context, sessionID, message string) (ChatReply, error) {
	if err := ctx.Err(); err != nil {
		return ChatReply{}, fmt.Errorf("context error: %w", err)
	}
	if strings.TrimSpace(message) == "" {
		return ChatReply{}, errors.New("message is required")
	}

	session, err := s.resolveSession(ctx, sessionID)
	if err != nil {
		return ChatReply{}, err
	}

	parsed := ParseQuery(message)
	metrics.ChatMessagesTotal.WithLabelValues(parsed.Intent).Inc()

	logger.Debug("chat_message",
		"session_id", session.SessionID,
		"intent", parsed.Intent,
		"client_ids", parsed.ClientIDs,
		"product_ids", parsed.ProductIDs,
	)

	var reply ChatReply
	switch parsed.Intent {
	case IntentSizeRecommendation:
		reply = s.handleSizeRecommendation(ctx, session, message, parsed)
	case IntentProductSearch:
		reply = s.handleProductSearch(ctx, message, parsed)
	case IntentHelp:
		reply = ChatReply{Response: helpText, Intent: IntentHelp}
	default:
		reply = s.handleGeneral(ctx, session, message)
	}
	reply.SessionID = session.SessionID

	s.appendTurn(session, message, reply)
	if err := s.sessions.Save(ctx, session); err != nil {
		return ChatReply{}, fmt.Errorf("save session: %w", err)
	}

	return reply, nil
}

func (s *ChatService) GetSession(ctx context.Context, sessionID string) (*domain.ConversationSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	return s.sessions.Get(ctx, sessionID)
}

func (s *ChatService) ClearSession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *ChatService) resolveSession(ctx context.Context, sessionID string) (*domain.ConversationSession, error) {
	if sessionID == "" {
		return &domain.ConversationSession{
			SessionID: uuid.NewString(),
			CreatedAt: time.Now(),
		}, nil
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			// expired or unknown: start fresh under the same id
			return &domain.ConversationSession{
				SessionID: sessionID,
				CreatedAt: time.Now(),
			}, nil
		}
		return nil, err
	}

	return session, nil
}

func (s *ChatService) appendTurn(session *domain.ConversationSession, message string, reply ChatReply) {
	turn := domain.ConversationTurn{
		Timestamp:         time.Now(),
		UserMessage:       message,
		AssistantResponse: reply.Response,
		Intent:            reply.Intent,
	}
	if reply.Recommendation != nil {
		turn.Context = datatypes.JSONMap{
			"recommended_size": reply.Recommendation.RecommendedSize,
			"confidence":       reply.Recommendation.Confidence,
		}
	}

	session.Turns = append(session.Turns, turn)
	if len(session.Turns) > maxTurnsMemory {
		session.Turns = session.Turns[len(session.Turns)-maxTurnsMemory:]
	}
}

// ---- Intent handlers ----

func (s *ChatService) handleSizeRecommendation(
	ctx context.Context,
	session *domain.ConversationSession,
	message string,
	parsed ParsedQuery,
) ChatReply {

	clientID := firstOr(parsed.ClientIDs, session.ActiveClientID)
	productID := firstOr(parsed.ProductIDs, session.ActiveProductID)

	if clientID == "" || productID == "" {
		return ChatReply{
			Intent: IntentSizeRecommendation,
			Response: "To recommend a size I need both a client and a product. " +
				"Tell me something like \"What size fits C0001 for product P001?\".",
		}
	}

	rec, err := s.sizingService.RecommendSize(ctx, clientID, productID)
	if err != nil {
		return ChatReply{
			Intent:   IntentSizeRecommendation,
			Response: recommendationErrorText(err, clientID, productID),
		}
	}

	session.ActiveClientID = clientID
	session.ActiveProductID = productID

	response := s.phraseRecommendation(ctx, message, clientID, productID, rec)

	return ChatReply{
		Intent:         IntentSizeRecommendation,
		Response:       response,
		Recommendation: &rec,
	}
}

func (s *ChatService) phraseRecommendation(
	ctx context.Context,
	message, clientID, productID string,
	rec domain.SizeRecommendation,
) string {

	fallback := fallbackRecommendationText(rec)
	if s.llm == nil {
		return fallback
	}

	client, err := s.clients.GetClient(ctx, clientID)
	if err != nil {
		return fallback
	}
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return fallback
	}

	response, err := s.llm.GenerateRecommendationReply(ctx, message, *client, *product, rec)
	if err != nil {
		logger.Warn("llm recommendation reply failed, using fallback", "error", err)
		metrics.LLMCompletionsTotal.WithLabelValues("fallback").Inc()
		return fallback
	}

	return response
}

func (s *ChatService) handleProductSearch(ctx context.Context, message string, parsed ParsedQuery) ChatReply {
	terms := parsed.SearchTerms
	if terms == "" {
		terms = message
	}

	products, err := s.catalog.SearchProducts(ctx, terms, 5)
	if err != nil {
		logger.Error("product search failed", "error", err)
		return ChatReply{
			Intent:   IntentProductSearch,
			Response: "Something went wrong searching the catalog. Please try again.",
		}
	}

	if len(products) == 0 {
		return ChatReply{
			Intent: IntentProductSearch,
			Response: "I couldn't find products matching your search. " +
				"You can search by name, id (e.g. P001), fabric (cotton, wool) or fit (slim, regular).",
		}
	}

	response := fallbackSearchText(products)
	if s.llm != nil {
		if llmResponse, err := s.llm.GenerateSearchReply(ctx, message, products); err == nil {
			response = llmResponse
		} else {
			logger.Warn("llm search reply failed, using fallback", "error", err)
			metrics.LLMCompletionsTotal.WithLabelValues("fallback").Inc()
		}
	}

	return ChatReply{
		Intent:   IntentProductSearch,
		Response: response,
		Products: products,
	}
}

func (s *ChatService) handleGeneral(ctx context.Context, session *domain.ConversationSession, message string) ChatReply {
	var contextInfo strings.Builder
	if session.ActiveClientID != "" {
		fmt.Fprintf(&contextInfo, "Client in conversation: %s\n", session.ActiveClientID)
	}
	if session.ActiveProductID != "" {
		fmt.Fprintf(&contextInfo, "Product in conversation: %s\n", session.ActiveProductID)
	}

	if s.llm != nil {
		if response, err := s.llm.GenerateGeneralReply(ctx, message, contextInfo.String()); err == nil {
			return ChatReply{Intent: IntentGeneral, Response: response}
		} else {
			logger.Warn("llm general reply failed, using fallback", "error", err)
			metrics.LLMCompletionsTotal.WithLabelValues("fallback").Inc()
		}
	}

	return ChatReply{
		Intent: IntentGeneral,
		Response: "I can help you with clothing size recommendations. " +
			"Ask me something like \"What size fits C0001 for product P001?\" or search the catalog.",
	}
}

// ---- Text fallbacks ----

const helpText = `I can help you with:

- Size recommendations: "What size fits C0001 for product P001?"
- Product search: "Find wool coats" or "Show slim fit products"
- Clients are identified as C0001, C0002, ... (or user1, user2, ...)
- Products are identified as P001, P002, ...`

func recommendationErrorText(err error, clientID, productID string) string {
	switch {
	case errors.Is(err, domain.ErrNoSizesAvailable):
		return fmt.Sprintf("Product %s has no sizes available to recommend from. Could you pick a different product?", productID)
	case errors.Is(err, domain.ErrClientNotFound):
		return fmt.Sprintf("I couldn't find client %s. Client ids look like C0001.", clientID)
	case errors.Is(err, domain.ErrProductNotFound):
		return fmt.Sprintf("I couldn't find product %s. Product ids look like P001.", productID)
	default:
		return "Sorry, something went wrong generating the recommendation. Please try again."
	}
}

func fallbackRecommendationText(rec domain.SizeRecommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I recommend size %s (confidence %.0f%%).", rec.RecommendedSize, rec.Confidence*100)
	if rec.Reasoning != "" {
		b.WriteString(" " + rec.Reasoning)
	}
	if len(rec.AlternativeSizes) > 0 {
		fmt.Fprintf(&b, " Alternatives worth considering: %s.", strings.Join(rec.AlternativeSizes, ", "))
	}
	if rec.FitNotes != "" && rec.FitNotes != "No additional fit notes." {
		b.WriteString(" " + rec.FitNotes)
	}
	return b.String()
}

func fallbackSearchText(products []domain.Product) string {
	var b strings.Builder
	b.WriteString("Here is what I found:\n")
	for _, p := range products {
		fmt.Fprintf(&b, "- %s (%s): %s fit, %s\n", p.Name, p.ProductID, p.Fit, p.Fabric)
	}
	b.WriteString("Ask me for a size recommendation on any of them.")
	return b.String()
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}
