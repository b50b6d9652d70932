package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// cardSelectors are the extraction strategies for the gamecards page,
// tried in order. The community site has shipped both markups; which one
// matched is logged so a silent layout change shows up in the logs.
var cardSelectors = []struct {
	name     string
	selector string
}{
	{"badge_card_set", "div.badge_card_set_card div.badge_card_set_text"},
	{"gamecard_name", ".gamecard_card_name"},
}

// GetCardSet scrapes the full card list for a badge collection from the
// profile's gamecards page.
//
// Returns (nil, nil) when the collection has no reachable card page: the
// community site redirects away from /gamecards/ URLs for apps without
// cards, and an empty parse means the same thing. Callers skip the
// collection without caching a negative result.
func (s *SteamService) GetCardSet(ctx context.Context, steamID string, appID int) ([]string, error) {
	u := fmt.Sprintf("%s/profiles/%s/gamecards/%d/", communityBase, steamID, appID)
	resp, err := s.client.Get(ctx, u, nil)
	if err != nil {
		s.logger.Warn("failed to fetch gamecards page", "appid", appID, "error", err)
		return nil, nil
	}
	if !strings.Contains(resp.FinalURL, "gamecards") {
		s.logger.Debug("gamecards page redirected away", "appid", appID, "final_url", resp.FinalURL)
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		s.logger.Warn("failed to parse gamecards page", "appid", appID, "error", err)
		return nil, nil
	}

	for _, strategy := range cardSelectors {
		names := extractCardNames(doc, strategy.selector)
		if len(names) > 0 {
			s.logger.Debug("parsed card set", "appid", appID, "strategy", strategy.name, "cards", len(names))
			return names, nil
		}
	}

	s.logger.Warn("no card names found on gamecards page", "appid", appID)
	return nil, nil
}

// extractCardNames collects trimmed, deduplicated text for the selector,
// preserving document order.
func extractCardNames(doc *goquery.Document, selector string) []string {
	seen := make(map[string]struct{})
	var names []string

	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Text())
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	})

	return names
}
