// package services implements the Steam network surface: the rate-limited
// HTTP client and the resolvers built on top of it.
//
// All endpoints share a single [rate.Limiter] so the 4 second minimum
// inter-request interval is a process-wide budget, not a per-endpoint one.
package services

import (
	"context"

	"github.com/deeCaTofficial/SteamBadgeHelper/internal/models"
)

// Steam defines the remote operations the analysis engine depends on.
// Implemented by [SteamService]; mocked in engine tests.
type Steam interface {
	// ValidateKey checks the configured Web API key with a cheap authenticated call.
	ValidateKey(ctx context.Context) error

	// ResolveSteamID resolves user input (SteamID64, vanity name, or profile URL)
	// to a canonical 17-digit SteamID64.
	ResolveSteamID(ctx context.Context, input string) (string, error)

	// GetBadges fetches badge progress for the account.
	// Failures degrade to an empty slice; badges are an optimization input, not a requirement.
	GetBadges(ctx context.Context, steamID string) ([]models.Badge, error)

	// CollectInventory pages through the community inventory and counts
	// standard (non-foil) trading cards.
	CollectInventory(ctx context.Context, steamID string) (*models.Inventory, error)

	// GetAppName resolves a game's display name from the storefront.
	GetAppName(ctx context.Context, appID int) (string, error)

	// GetCardSet scrapes the full card list for a badge collection.
	// Returns (nil, nil) when the collection has no reachable card page.
	GetCardSet(ctx context.Context, steamID string, appID int) ([]string, error)

	// FetchPrice looks up a market price estimate for one card.
	// A nil price means unknown; only cancellation yields an error.
	FetchPrice(ctx context.Context, name string) (*float64, error)
}
