package chat

import (
	"context"
	"strings"
	"testing"

	"sizefit/domain"
)

// ---- stubs ----

type fakeSizing struct {
	rec        domain.SizeRecommendation
	err        error
	lastClient string
	lastProd   string
}

func (f *fakeSizing) RecommendSize(ctx context.Context, clientID, productID string) (domain.SizeRecommendation, error) {
	f.lastClient, f.lastProd = clientID, productID
	return f.rec, f.err
}

type fakeCatalog struct {
	products []domain.Product
}

func (f *fakeCatalog) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	for i := range f.products {
		if f.products[i].ProductID == productID {
			return &f.products[i], nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeCatalog) SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	if strings.Contains(query, "nothing") {
		return nil, nil
	}
	return f.products, nil
}

type fakeClients struct{}

func (f *fakeClients) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	return &domain.Client{ClientID: clientID, Name: "Ana"}, nil
}

type memorySessions struct {
	store map[string]*domain.ConversationSession
}

func newMemorySessions() *memorySessions {
	return &memorySessions{store: make(map[string]*domain.ConversationSession)}
}

func (m *memorySessions) Get(ctx context.Context, sessionID string) (*domain.ConversationSession, error) {
	s, ok := m.store[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *memorySessions) Save(ctx context.Context, session *domain.ConversationSession) error {
	m.store[session.SessionID] = session
	return nil
}

func (m *memorySessions) Delete(ctx context.Context, sessionID string) error {
	if _, ok := m.store[sessionID]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(m.store, sessionID)
	return nil
}

func newTestChatService(sizing *fakeSizing, sessions *memorySessions) *ChatService {
	catalog := &fakeCatalog{products: []domain.Product{
		{ProductID: "P001", Name: "Summer Dress", Fit: "regular", Fabric: "cotton"},
	}}
	return NewChatService(sizing, catalog, &fakeClients{}, sessions, nil)
}

// ---- tests ----

func TestHandleMessageRecommendation(t *testing.T) {
	sizing := &fakeSizing{rec: domain.SizeRecommendation{
		RecommendedSize:  "M",
		Confidence:       0.86,
		AlternativeSizes: []string{"L", "S"},
	}}
	sessions := newMemorySessions()
	svc := newTestChatService(sizing, sessions)

	reply, err := svc.HandleMessage(context.Background(), "", "What size fits C0001 for product P001?")
	if err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}

	if reply.Intent != IntentSizeRecommendation {
		t.Errorf("expected size_recommendation intent, got %s", reply.Intent)
	}
	if reply.SessionID == "" {
		t.Error("expected a generated session id")
	}
	if reply.Recommendation == nil || reply.Recommendation.RecommendedSize != "M" {
		t.Errorf("expected recommendation for M, got %+v", reply.Recommendation)
	}
	if sizing.lastClient != "C0001" || sizing.lastProd != "P001" {
		t.Errorf("service called with %s/%s", sizing.lastClient, sizing.lastProd)
	}
	if !strings.Contains(reply.Response, "M") {
		t.Errorf("expected the reply to mention the size, got %q", reply.Response)
	}

	session, err := svc.GetSession(context.Background(), reply.SessionID)
	if err != nil {
		t.Fatalf("GetSession returned error: %v", err)
	}
	if len(session.Turns) != 1 {
		t.Errorf("expected one recorded turn, got %d", len(session.Turns))
	}
	if session.ActiveClientID != "C0001" || session.ActiveProductID != "P001" {
		t.Errorf("expected session context to track entities, got %s/%s",
			session.ActiveClientID, session.ActiveProductID)
	}
}

func TestHandleMessageUsesSessionContext(t *testing.T) {
	sizing := &fakeSizing{rec: domain.SizeRecommendation{RecommendedSize: "M"}}
	sessions := newMemorySessions()
	svc := newTestChatService(sizing, sessions)

	first, err := svc.HandleMessage(context.Background(), "", "What size fits C0001 for product P001?")
	if err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}

	// follow-up without ids reuses the entities from the session
	_, err = svc.HandleMessage(context.Background(), first.SessionID, "and what size would you recommend now?")
	if err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}
	if sizing.lastClient != "C0001" || sizing.lastProd != "P001" {
		t.Errorf("expected session context reuse, got %s/%s", sizing.lastClient, sizing.lastProd)
	}
}

func TestHandleMessageMissingEntities(t *testing.T) {
	sizing := &fakeSizing{}
	svc := newTestChatService(sizing, newMemorySessions())

	reply, err := svc.HandleMessage(context.Background(), "", "what size should I buy?")
	if err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}

	if reply.Recommendation != nil {
		t.Error("expected no recommendation without entities")
	}
	if !strings.Contains(reply.Response, "client") {
		t.Errorf("expected a prompt for the missing ids, got %q", reply.Response)
	}
}

func TestHandleMessageRecommendationErrors(t *testing.T) {
	sizing := &fakeSizing{err: domain.ErrClientNotFound}
	svc := newTestChatService(sizing, newMemorySessions())

	reply, err := svc.HandleMessage(context.Background(), "", "What size fits C0099 for product P001?")
	if err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}

	// sentinel errors become a friendly reply, not a transport error
	if reply.Recommendation != nil {
		t.Error("expected no recommendation on lookup failure")
	}
	if !strings.Contains(reply.Response, "C0099") {
		t.Errorf("expected the reply to name the unknown client, got %q", reply.Response)
	}
}

func TestHandleMessageProductSearch(t *testing.T) {
	svc := newTestChatService(&fakeSizing{}, newMemorySessions())

	reply, err := svc.HandleMessage(context.Background(), "", "find cotton dresses")
	if err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}

	if reply.Intent != IntentProductSearch {
		t.Errorf("expected product_search, got %s", reply.Intent)
	}
	if len(reply.Products) != 1 {
		t.Errorf("expected one product in the reply, got %d", len(reply.Products))
	}
	if !strings.Contains(reply.Response, "Summer Dress") {
		t.Errorf("expected the reply to list the match, got %q", reply.Response)
	}
}

func TestHandleMessageHelp(t *testing.T) {
	svc := newTestChatService(&fakeSizing{}, newMemorySessions())

	reply, err := svc.HandleMessage(context.Background(), "", "help")
	if err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}
	if reply.Intent != IntentHelp {
		t.Errorf("expected help intent, got %s", reply.Intent)
	}
	if reply.Response == "" {
		t.Error("expected help text")
	}
}

func TestHandleMessageEmpty(t *testing.T) {
	svc := newTestChatService(&fakeSizing{}, newMemorySessions())

	if _, err := svc.HandleMessage(context.Background(), "", "   "); err == nil {
		t.Error("expected an error for an empty message")
	}
}

func TestSessionTurnCap(t *testing.T) {
	svc := newTestChatService(&fakeSizing{}, newMemorySessions())

	sessionID := ""
	for i := 0; i < maxTurnsMemory+5; i++ {
		reply, err := svc.HandleMessage(context.Background(), sessionID, "hello")
		if err != nil {
			t.Fatalf("HandleMessage returned error: %v", err)
		}
		sessionID = reply.SessionID
	}

	session, err := svc.GetSession(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("GetSession returned error: %v", err)
	}
	if len(session.Turns) != maxTurnsMemory {
		t.Errorf("expected turn history capped at %d, got %d", maxTurnsMemory, len(session.Turns))
	}
}

func TestClearSession(t *testing.T) {
	svc := newTestChatService(&fakeSizing{}, newMemorySessions())

	reply, err := svc.HandleMessage(context.Background(), "", "hello")
	if err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}

	if err := svc.ClearSession(context.Background(), reply.SessionID); err != nil {
		t.Fatalf("ClearSession returned error: %v", err)
	}
	if _, err := svc.GetSession(context.Background(), reply.SessionID); err == nil {
		t.Error("expected the cleared session to be gone")
	}
}
