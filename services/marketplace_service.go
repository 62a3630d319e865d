package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kisansetu/kisan-voice-backend/config"
	"github.com/kisansetu/kisan-voice-backend/logger"
	"github.com/kisansetu/kisan-voice-backend/types"
	"go.uber.org/zap"
)

// MarketplaceClient is the outbound boundary to the listings/orders API.
type MarketplaceClient interface {
	CreateOrder(ctx context.Context, order types.OrderCreate) (*types.MarketplaceResponse, error)
	CreateListing(ctx context.Context, listing types.ListingCreate) (*types.MarketplaceResponse, error)
}

// MarketplaceService posts confirmed voice commands to the external
// marketplace API.
type MarketplaceService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	log     *zap.SugaredLogger
}

var _ MarketplaceClient = (*MarketplaceService)(nil)

func NewMarketplaceService(cfg *config.MarketplaceConfig) *MarketplaceService {
	return &MarketplaceService{
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		log:     logger.GetLogger(),
	}
}

// CreateOrder posts a new order to the marketplace.
func (s *MarketplaceService) CreateOrder(ctx context.Context, order types.OrderCreate) (*types.MarketplaceResponse, error) {
	return s.post(ctx, "/v1/orders", order)
}

// CreateListing posts a new crop listing to the marketplace.
func (s *MarketplaceService) CreateListing(ctx context.Context, listing types.ListingCreate) (*types.MarketplaceResponse, error) {
	return s.post(ctx, "/v1/listings", listing)
}

func (s *MarketplaceService) post(ctx context.Context, path string, body interface{}) (*types.MarketplaceResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal marketplace request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build marketplace request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	s.log.Debugw("Dispatching marketplace request",
		"path", path,
		"payloadSize", len(payload),
	)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("marketplace request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("marketplace API error: %s", resp.Status)
	}

	var out types.MarketplaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		// A create that succeeded but returned no parseable body is still
		// a success; the id is optional.
		s.log.Warnw("Marketplace response not decodable", "path", path, "error", err)
		return &types.MarketplaceResponse{}, nil
	}

	return &out, nil
}
