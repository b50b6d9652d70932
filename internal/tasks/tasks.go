// package tasks implements the badge completion analysis pipeline.
//
// The core abstraction is AnalysisEngine, which orchestrates profile
// resolution, inventory collection, card set discovery, and pricing.
// Runs emit events via channels for non-blocking status reporting to
// CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/cache"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/local"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/models"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/services"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/shared"
)

// Report contains everything a completed (or interrupted) run produced.
type Report struct {
	SteamID   string                  // Resolved steamID64
	Results   []models.AnalysisResult // Per-collection results in analysis order
	TotalCost float64                 // Summed completion cost across results
	Analyzed  int                     // Collections analyzed
	Skipped   int                     // Collections skipped (maxed badge or no card set)
	Cancelled bool                    // Whether the run stopped early
}

// AnalysisEngine runs the analysis pipeline against a Steam backend,
// preferring local snapshots and the persistent cache over the network.
type AnalysisEngine struct {
	steam     services.Steam
	local     local.SnapshotProvider
	cache     *cache.Document
	cachePath string
	resultLog *cache.ResultLog
	logger    *log.Logger
}

func NewAnalysisEngine(steam services.Steam, snapshots local.SnapshotProvider, doc *cache.Document, cachePath string, resultLog *cache.ResultLog, logger *log.Logger) *AnalysisEngine {
	if snapshots == nil {
		snapshots = local.Empty{}
	}
	if doc == nil {
		doc = cache.NewDocument()
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &AnalysisEngine{
		steam:     steam,
		local:     snapshots,
		cache:     doc,
		cachePath: cachePath,
		resultLog: resultLog,
		logger:    logger,
	}
}

// sendProgress sends a progress event through the channel without blocking.
func (e *AnalysisEngine) sendProgress(events chan<- Event, ev ProgressEvent) {
	if events == nil {
		return
	}
	select {
	case events <- ev:
		// Sent successfully
	default:
		// Channel full, skip this update
	}
}

// send delivers results and terminal events. These block: consumers must
// drain the channel until DoneEvent.
func (e *AnalysisEngine) send(events chan<- Event, ev Event) {
	if events == nil {
		return
	}
	events <- ev
}

// Run analyzes every badge collection reachable from the account's
// badges and inventory, emitting a ResultEvent per collection and
// finally a DoneEvent. The persistent cache is saved even when the run
// fails or is cancelled, so partial discovery work survives. The
// returned report is always non-nil so callers can record failed runs;
// check the error to tell a failure from a completed run.
func (e *AnalysisEngine) Run(ctx context.Context, input string, events chan<- Event) (report *Report, err error) {
	report = &Report{}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analysis panicked: %v", r)
		}
		if e.cachePath != "" {
			if saveErr := e.cache.Save(e.cachePath); saveErr != nil {
				e.logger.Error("failed to save cache", "error", saveErr)
			}
		}
		if err != nil {
			e.send(events, ErrorEvent{Err: err})
		}
		e.send(events, DoneEvent{Cancelled: report.Cancelled})
	}()

	e.sendProgress(events, validatingKeyUpdate())
	if err := e.steam.ValidateKey(ctx); err != nil {
		return report, err
	}

	e.sendProgress(events, resolvingProfileUpdate(input))
	steamID, err := e.steam.ResolveSteamID(ctx, input)
	if err != nil {
		return report, err
	}
	report.SteamID = steamID
	e.logger.Info("resolved profile", "steamid", steamID)

	cards, appIDs, fromSnapshot := e.local.Inventory(steamID)
	if fromSnapshot && len(cards) == 0 {
		fromSnapshot = false
	}
	e.sendProgress(events, fetchingInventoryUpdate(fromSnapshot))
	if !fromSnapshot {
		inv, err := e.steam.CollectInventory(ctx, steamID)
		if err != nil {
			return report, err
		}
		cards, appIDs = inv.Cards, inv.AppIDs
	}
	e.logger.Info("inventory ready", "cards", len(cards), "collections", len(appIDs), "snapshot", fromSnapshot)

	e.sendProgress(events, fetchingBadgesUpdate())
	badges, err := e.steam.GetBadges(ctx, steamID)
	if err != nil {
		return report, err
	}

	universe, levels := collectionUniverse(badges, appIDs)
	if len(universe) == 0 {
		return report, shared.ErrNoBadges
	}

	snapshotPrices := e.local.Prices()
	snapshotSets := e.local.CardSets()

	total := len(universe)

	for i, appID := range universe {
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}

		if level, ok := levels[appID]; ok && level >= models.MaxBadgeLevel {
			e.logger.Debug("skipping maxed badge", "appid", appID, "level", level)
			report.Skipped++
			continue
		}

		game := e.resolveGameName(ctx, appID)
		e.sendProgress(events, analyzingUpdate(i+1, total, game))

		set := e.resolveCardSet(ctx, steamID, appID, snapshotSets)
		if len(set) == 0 {
			e.logger.Debug("no card set, skipping", "appid", appID)
			report.Skipped++
			continue
		}

		result, cancelled := e.analyzeCollection(ctx, appID, game, set, cards, snapshotPrices)
		if cancelled {
			report.Cancelled = true
			break
		}

		report.Results = append(report.Results, result)
		report.TotalCost += result.Cost
		report.Analyzed++

		e.send(events, ResultEvent{Result: result})
		if e.resultLog != nil {
			if err := e.resultLog.Append(result); err != nil {
				e.logger.Warn("failed to persist result", "appid", appID, "error", err)
			}
		}
	}

	return report, nil
}

// analyzeCollection splits a card set into owned and missing, prices the
// missing cards, and assembles the result. Reports cancelled=true when
// pricing was interrupted.
func (e *AnalysisEngine) analyzeCollection(ctx context.Context, appID int, game string, set []string, owned map[string]int, snapshotPrices map[string]float64) (models.AnalysisResult, bool) {
	result := models.AnalysisResult{AppID: appID, Game: game}

	var missing []string
	for _, card := range set {
		if owned[card] > 0 {
			result.Owned = append(result.Owned, card)
		} else {
			missing = append(missing, card)
		}
	}
	result.ToBuyCount = len(missing)

	for _, card := range missing {
		var price *float64
		if p, ok := snapshotPrices[card]; ok {
			price = &p
		} else {
			fetched, err := e.steam.FetchPrice(ctx, card)
			if err != nil {
				return result, true
			}
			price = fetched
		}

		result.ToBuy = append(result.ToBuy, models.PricedCard{Name: card, Price: price})
		if price != nil {
			result.Cost += *price
		}
	}

	return result, false
}

// resolveGameName checks the persistent cache, then the storefront, then
// falls back to a synthetic name. Only real names are cached.
func (e *AnalysisEngine) resolveGameName(ctx context.Context, appID int) string {
	if name, ok := e.cache.GameName(appID); ok {
		return name
	}

	name, err := e.steam.GetAppName(ctx, appID)
	if err != nil {
		e.logger.Debug("app name lookup failed", "appid", appID, "error", err)
		return services.FallbackAppName(appID)
	}

	e.cache.SetGameName(appID, name)
	return name
}

// resolveCardSet checks snapshots, then the persistent cache, then
// scrapes the community site. Scraped sets are cached; a missing set is
// never cached so a later run retries it.
func (e *AnalysisEngine) resolveCardSet(ctx context.Context, steamID string, appID int, snapshots map[string][]string) []string {
	if set, ok := snapshots[fmt.Sprint(appID)]; ok && len(set) > 0 {
		return set
	}
	if set, ok := e.cache.CardSet(appID); ok {
		return set
	}

	set, err := e.steam.GetCardSet(ctx, steamID, appID)
	if err != nil || len(set) == 0 {
		return nil
	}

	e.cache.SetCardSet(appID, set)
	return set
}

// collectionUniverse merges badge appIDs with inventory appIDs into a
// sorted, deduplicated list, plus a badge level lookup.
func collectionUniverse(badges []models.Badge, inventoryAppIDs []int) ([]int, map[int]int) {
	levels := make(map[int]int, len(badges))
	seen := make(map[int]struct{})
	var universe []int

	for _, b := range badges {
		levels[b.AppID] = b.Level
		if _, ok := seen[b.AppID]; !ok {
			seen[b.AppID] = struct{}{}
			universe = append(universe, b.AppID)
		}
	}
	for _, id := range inventoryAppIDs {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			universe = append(universe, id)
		}
	}

	sort.Ints(universe)
	return universe, levels
}
