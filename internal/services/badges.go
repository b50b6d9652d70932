package services

import (
	"context"
	"fmt"

	"github.com/deeCaTofficial/SteamBadgeHelper/internal/models"
)

type badgesResponse struct {
	Response struct {
		Badges []struct {
			AppID int `json:"appid"`
			Level int `json:"level"`
		} `json:"badges"`
	} `json:"response"`
}

// GetBadges fetches badge progress for the account.
//
// Any failure degrades to an empty slice: collections are still
// discoverable from the inventory, badge levels only let us skip maxed
// ones.
func (s *SteamService) GetBadges(ctx context.Context, steamID string) ([]models.Badge, error) {
	u := fmt.Sprintf("%s/IPlayerService/GetBadges/v1/?key=%s&steamid=%s", apiBase, s.apiKey, steamID)
	resp, err := s.client.Get(ctx, u, nil)
	if err != nil {
		s.logger.Warn("failed to fetch badges", "error", err)
		return []models.Badge{}, nil
	}

	var payload badgesResponse
	if err := decodeJSON(resp, &payload); err != nil {
		s.logger.Warn("failed to decode badges", "error", err)
		return []models.Badge{}, nil
	}

	badges := make([]models.Badge, 0, len(payload.Response.Badges))
	for _, b := range payload.Response.Badges {
		// Community and event badges carry no appid
		if b.AppID == 0 {
			continue
		}
		badges = append(badges, models.Badge{AppID: b.AppID, Level: b.Level})
	}

	return badges, nil
}
