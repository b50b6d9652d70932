package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/shared"
)

// SteamService implements [Steam] against the live Steam API, community
// site, and storefront.
type SteamService struct {
	client     *Client
	apiKey     string
	currencyID int
	language   string
	logger     *log.Logger
}

// NewSteamService creates a SteamService. The currency code is resolved to
// its market currency id up front so a typo fails at startup, not mid-run.
func NewSteamService(client *Client, apiKey, currency, language string, logger *log.Logger) (*SteamService, error) {
	currencyID, err := CurrencyID(currency)
	if err != nil {
		return nil, err
	}
	if language == "" {
		language = "english"
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &SteamService{
		client:     client,
		apiKey:     apiKey,
		currencyID: currencyID,
		language:   language,
		logger:     logger,
	}, nil
}

// ValidateKey checks the API key against GetSupportedAPIList.
func (s *SteamService) ValidateKey(ctx context.Context) error {
	if s.apiKey == "" {
		return shared.ErrMissingAPIKey
	}

	u := fmt.Sprintf("%s/ISteamWebAPIUtil/GetSupportedAPIList/v1/?key=%s", apiBase, s.apiKey)
	resp, err := s.client.Get(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidAPIKey, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", shared.ErrInvalidAPIKey, resp.StatusCode)
	}
	return nil
}

func decodeJSON(resp *Response, v any) error {
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
