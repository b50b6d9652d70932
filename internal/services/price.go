package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type priceOverview struct {
	Success     bool   `json:"success"`
	LowestPrice string `json:"lowest_price"`
	MedianPrice string `json:"median_price"`
}

// FetchPrice looks up the market price estimate for one card via the
// priceoverview endpoint. The Referer header is required by the market.
//
// Every degradation path (request failure, unsuccessful response, parse
// failure) returns a nil price, not an error; only cancellation errors.
func (s *SteamService) FetchPrice(ctx context.Context, name string) (*float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/market/priceoverview/?appid=%d&currency=%d&market_hash_name=%s",
		communityBase, gameCardAppID, s.currencyID, url.QueryEscape(name))
	header := http.Header{}
	header.Set("Referer", fmt.Sprintf("%s/market/search?appid=%d", communityBase, gameCardAppID))

	resp, err := s.client.Get(ctx, u, header)
	if err != nil {
		s.logger.Warn("price lookup failed", "card", name, "error", err)
		return nil, nil
	}

	var overview priceOverview
	if err := decodeJSON(resp, &overview); err != nil {
		s.logger.Warn("failed to decode price overview", "card", name, "error", err)
		return nil, nil
	}
	if !overview.Success {
		return nil, nil
	}

	priceStr := overview.LowestPrice
	if priceStr == "" {
		priceStr = overview.MedianPrice
	}
	if priceStr == "" {
		return nil, nil
	}

	price, err := normalizePrice(priceStr)
	if err != nil {
		s.logger.Warn("failed to parse price", "card", name, "raw", priceStr, "error", err)
		return nil, nil
	}

	return &price, nil
}

// normalizePrice converts a locale-formatted market price string
// ("3,20 €", "1,50 ₫", "$4.99") to a float: everything but digits,
// commas, and periods is stripped, then comma becomes the decimal point.
// Formats carrying both a thousands separator and a decimal comma
// ("1.234,56") produce two periods and fail to parse, yielding an
// unknown price.
func normalizePrice(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			return r
		}
		return -1
	}, s)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	if cleaned == "" {
		return 0, fmt.Errorf("no digits in price string %q", s)
	}

	return strconv.ParseFloat(cleaned, 64)
}
