package tasks

import (
	"fmt"

	"github.com/deeCaTofficial/SteamBadgeHelper/internal/models"
)

// Operation phase enumeration
type Phase int

const (
	ValidateKey Phase = iota
	ResolveProfile
	FetchInventory
	FetchBadges
	Analyze
)

func (p Phase) String() string {
	switch p {
	case ValidateKey:
		return "validate_key"
	case ResolveProfile:
		return "resolve_profile"
	case FetchInventory:
		return "fetch_inventory"
	case FetchBadges:
		return "fetch_badges"
	case Analyze:
		return "analyze"
	default:
		return ""
	}
}

// Event is anything the engine reports while a run is in flight. The CLI
// and TUI layers switch on the concrete type.
type Event interface {
	event()
}

// ProgressEvent reports phase progress for display.
type ProgressEvent struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// ResultEvent carries one completed per-collection analysis.
type ResultEvent struct {
	Result models.AnalysisResult
}

// ErrorEvent reports a fatal run error. A DoneEvent always follows.
type ErrorEvent struct {
	Err error
}

// DoneEvent terminates the stream.
type DoneEvent struct {
	Cancelled bool
}

func (ProgressEvent) event() {}
func (ResultEvent) event()   {}
func (ErrorEvent) event()    {}
func (DoneEvent) event()     {}

func validatingKeyUpdate() ProgressEvent {
	return ProgressEvent{
		Phase:   ValidateKey,
		Step:    1,
		Total:   1,
		Message: "Validating Steam API key...",
	}
}

func resolvingProfileUpdate(input string) ProgressEvent {
	return ProgressEvent{
		Phase:   ResolveProfile,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Resolving profile %q...", input),
	}
}

func fetchingInventoryUpdate(fromSnapshot bool) ProgressEvent {
	msg := "Collecting inventory from Steam..."
	if fromSnapshot {
		msg = "Loading inventory snapshot..."
	}
	return ProgressEvent{
		Phase:   FetchInventory,
		Step:    1,
		Total:   1,
		Message: msg,
	}
}

func fetchingBadgesUpdate() ProgressEvent {
	return ProgressEvent{
		Phase:   FetchBadges,
		Step:    1,
		Total:   1,
		Message: "Fetching badge progress...",
	}
}

func analyzingUpdate(step, total int, game string) ProgressEvent {
	return ProgressEvent{
		Phase:   Analyze,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Analyzing %s (%d/%d)...", game, step, total),
	}
}
