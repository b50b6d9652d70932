package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/deeCaTofficial/SteamBadgeHelper/internal/models"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/shared"
)

const (
	// Steam community app holding trading cards
	gameCardAppID = 753

	// tradingCardClass marks standard (non-foil) trading cards
	tradingCardClass = "item_class_2"

	inventoryPageSize  = 2000
	inventoryPageDelay = 500 * time.Millisecond
)

type inventoryPage struct {
	Descriptions []inventoryItem `json:"descriptions"`
	MoreItems    int             `json:"more_items"`
	LastAssetID  string          `json:"last_assetid"`
}

type inventoryItem struct {
	MarketHashName string    `json:"market_hash_name"`
	Type           string    `json:"type"`
	Tags           []itemTag `json:"tags"`
}

type itemTag struct {
	Category     string `json:"category"`
	InternalName string `json:"internal_name"`
}

// CollectInventory pages through the community inventory, counting
// standard trading cards by market hash name and collecting the appIDs
// they belong to.
//
// Cancellation before a page fetch returns [shared.ErrInventoryUnavailable],
// distinct from an empty inventory (a valid terminal state). A failed page
// fetch stops pagination and returns what was collected so far.
func (s *SteamService) CollectInventory(ctx context.Context, steamID string) (*models.Inventory, error) {
	cards := make(map[string]int)
	appIDs := make(map[int]struct{})
	lastAssetID := ""

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrInventoryUnavailable, err)
		}

		u := fmt.Sprintf("%s/inventory/%s/%d/2?l=english&count=%d", communityBase, steamID, gameCardAppID, inventoryPageSize)
		if lastAssetID != "" {
			u += "&start_assetid=" + lastAssetID
		}

		resp, err := s.client.Get(ctx, u, nil)
		if err != nil {
			s.logger.Warn("inventory page fetch failed, stopping pagination", "page", page, "error", err)
			break
		}

		var data inventoryPage
		if err := decodeJSON(resp, &data); err != nil {
			s.logger.Warn("failed to decode inventory page", "page", page, "error", err)
			break
		}
		if len(data.Descriptions) == 0 {
			break
		}

		for _, item := range data.Descriptions {
			if !isStandardCard(item) {
				continue
			}
			cards[item.MarketHashName]++
			if appID, ok := cardAppID(item); ok {
				appIDs[appID] = struct{}{}
			}
		}

		if data.MoreItems == 0 || data.LastAssetID == "" {
			break
		}
		lastAssetID = data.LastAssetID

		s.logger.Debug("fetched inventory page", "page", page, "cards", len(cards))
		if err := s.client.Pause(ctx, inventoryPageDelay); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrInventoryUnavailable, err)
		}
	}

	ids := make([]int, 0, len(appIDs))
	for id := range appIDs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return &models.Inventory{Cards: cards, AppIDs: ids}, nil
}

// isStandardCard reports whether the item is a standard (non-foil) trading card.
func isStandardCard(item inventoryItem) bool {
	if strings.Contains(item.Type, "Foil") {
		return false
	}
	for _, tag := range item.Tags {
		if tag.InternalName == tradingCardClass {
			return true
		}
	}
	return false
}

// cardAppID extracts the owning appID from the first Game tag named app_<id>.
func cardAppID(item inventoryItem) (int, bool) {
	for _, tag := range item.Tags {
		if tag.Category != "Game" {
			continue
		}
		if rest, ok := strings.CutPrefix(tag.InternalName, "app_"); ok {
			if id, err := strconv.Atoi(rest); err == nil {
				return id, true
			}
		}
		// First Game tag wins, matching inventory item conventions
		return 0, false
	}
	return 0, false
}
