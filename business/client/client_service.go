package client

import (
	"context"
	"errors"
	"fmt"

	"sizefit/domain"
	"sizefit/pkg/logger"
)

// ClientRepository contract interface
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	FindByClientID(ctx context.Context, clientID string) (domain.Client, error)
	FindAll(ctx context.Context) ([]domain.Client, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
}

type clientService struct {
	clientRepo ClientRepository
}

func NewClientService(clientRepo ClientRepository) *clientService {
	return &clientService{
		clientRepo: clientRepo,
	}
}

func (s *clientService) GetAllClients(ctx context.Context) ([]domain.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	clients, err := s.clientRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all clients", "error", err)
		return nil, err
	}

	return clients, nil
}

func (s *clientService) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	if clientID == "" {
		return nil, errors.New("invalid client id")
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	client, err := s.clientRepo.FindByClientID(ctx, clientID)
	if err != nil {
		logger.Error("failed to find client", "client_id", clientID, "error", err)
		return nil, err
	}

	return &client, nil
}

func (s *clientService) SearchClients(ctx context.Context, query string, limit int) ([]domain.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	clients, err := s.clientRepo.Search(ctx, query, limit)
	if err != nil {
		logger.Error("failed to search clients", "query", query, "error", err)
		return nil, err
	}

	return clients, nil
}

func (s *clientService) CreateClient(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if c.ClientID == "" {
		return nil, errors.New("client id is required")
	}

	if c.Name == "" {
		return nil, errors.New("client name is required")
	}

	if err := s.clientRepo.Create(ctx, c); err != nil {
		logger.Error("failed to create client", "error", err)
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	logger.Info("client created successfully", "client_id", c.ClientID)

	return c, nil
}

func (s *clientService) UpdateClient(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if c.ClientID == "" {
		return nil, errors.New("client id is required")
	}

	existing, err := s.clientRepo.FindByClientID(ctx, c.ClientID)
	if err != nil {
		logger.Error("client not found", "client_id", c.ClientID)
		return nil, err
	}
	c.ID = existing.ID

	if err := s.clientRepo.Update(ctx, c); err != nil {
		logger.Error("failed to update client", "error", err)
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	updated, err := s.clientRepo.FindByClientID(ctx, c.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated client: %w", err)
	}

	logger.Info("client updated", "client_id", c.ClientID)

	return &updated, nil
}
