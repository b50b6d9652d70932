package services

import (
	"context"
	"fmt"
	"strconv"
)

type appDetailsEntry struct {
	Success bool `json:"success"`
	Data    struct {
		Name string `json:"name"`
	} `json:"data"`
}

// GetAppName resolves a game's display name from the storefront appdetails
// endpoint. Callers fall back to [FallbackAppName] on error.
func (s *SteamService) GetAppName(ctx context.Context, appID int) (string, error) {
	u := fmt.Sprintf("%s/appdetails?appids=%d&l=%s", storeAPIBase, appID, s.language)
	resp, err := s.client.Get(ctx, u, nil)
	if err != nil {
		return "", err
	}

	var payload map[string]appDetailsEntry
	if err := decodeJSON(resp, &payload); err != nil {
		return "", err
	}

	entry, ok := payload[strconv.Itoa(appID)]
	if !ok || !entry.Success || entry.Data.Name == "" {
		return "", fmt.Errorf("no app details for %d", appID)
	}

	return entry.Data.Name, nil
}

// FallbackAppName is the permanent synthetic name used when the storefront
// cannot resolve a game's title.
func FallbackAppName(appID int) string {
	return fmt.Sprintf("Game (AppID: %d)", appID)
}
