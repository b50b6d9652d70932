// package models defines the data model for the badge completion analyzer
package models

import (
	"fmt"
	"time"
)

// MaxBadgeLevel is the level at which a badge collection is complete and
// crafting another badge is no longer possible without foil cards.
const MaxBadgeLevel = 5

// Badge represents one game's badge progress for an account.
type Badge struct {
	AppID int
	Level int
}

// Complete reports whether the badge has reached the maximum level.
func (b Badge) Complete() bool {
	return b.Level >= MaxBadgeLevel
}

// Inventory holds the full set of standard trading cards owned by an
// account: per-card counts keyed by market hash name, plus the appIDs the
// cards belong to.
type Inventory struct {
	Cards  map[string]int
	AppIDs []int
}

// Empty reports whether the inventory contains no cards.
func (i *Inventory) Empty() bool {
	return i == nil || len(i.Cards) == 0
}

// PricedCard is a card name with its market price estimate.
// A nil price means the price could not be determined, not that the card is free.
type PricedCard struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
}

// AnalysisResult is the completion report for one badge collection.
//
// ToBuy and Owned partition the full card set: every card in the set
// appears in exactly one of the two lists.
type AnalysisResult struct {
	AppID      int          `json:"appid"`
	Game       string       `json:"game"`
	Cost       float64      `json:"cost"`
	ToBuyCount int          `json:"to_buy_count"`
	ToBuy      []PricedCard `json:"to_buy_list"`
	Owned      []string     `json:"owned_list"`
}

// FormatCost renders the total cost with two-decimal precision.
func (r AnalysisResult) FormatCost() string {
	return fmt.Sprintf("%.2f", r.Cost)
}

// Run statuses recorded in the history database.
const (
	RunStatusCompleted = "completed"
	RunStatusCancelled = "cancelled"
	RunStatusFailed    = "failed"
)

// Run records the outcome of one analysis run.
type Run struct {
	ID         string
	Sequence   int
	SteamID    string
	Currency   string
	Status     string
	Results    int
	TotalCost  float64
	StartedAt  time.Time
	FinishedAt time.Time
}
