// package local loads pre-collected analysis inputs from disk so a run
// can reuse inventory dumps, price lists, and card sets captured earlier
// instead of hitting the network for them.
package local

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/shared"
)

// SnapshotProvider supplies locally captured inputs. Every method is
// best-effort: a missing or unreadable snapshot returns the zero value
// and the caller falls through to the network.
type SnapshotProvider interface {
	// Inventory returns captured card counts and appIDs for the account,
	// or ok=false when no snapshot exists.
	Inventory(steamID string) (cards map[string]int, appIDs []int, ok bool)

	// Prices returns captured card prices keyed by market hash name.
	Prices() map[string]float64

	// CardSets returns captured card sets keyed by appID string.
	CardSets() map[string][]string
}

// Empty is a SnapshotProvider with no data.
type Empty struct{}

func (Empty) Inventory(string) (map[string]int, []int, bool) { return nil, nil, false }
func (Empty) Prices() map[string]float64                     { return nil }
func (Empty) CardSets() map[string][]string                  { return nil }

type inventorySnapshot struct {
	Cards  map[string]int `json:"cards"`
	AppIDs []int          `json:"appids"`
}

// DirProvider reads snapshots from a directory:
//
//	inventory_<steamid64>.json  {"cards": {...}, "appids": [...]}
//	pricecache.json             {"<market hash name>": <price>, ...}
//	cardsets.json               {"<appid>": ["card", ...], ...}
type DirProvider struct {
	dir    string
	logger *log.Logger
}

func NewDirProvider(dir string, logger *log.Logger) (*DirProvider, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: snapshot directory %q: %v", shared.ErrInvalidArgument, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", shared.ErrInvalidArgument, dir)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &DirProvider{dir: dir, logger: logger}, nil
}

func (p *DirProvider) Inventory(steamID string) (map[string]int, []int, bool) {
	path := filepath.Join(p.dir, "inventory_"+steamID+".json")
	var snap inventorySnapshot
	if !p.read(path, &snap) {
		return nil, nil, false
	}
	// A snapshot with no cards carries no information; fall through to
	// the network instead of reporting an empty inventory.
	if len(snap.Cards) == 0 {
		p.logger.Warn("ignoring empty inventory snapshot", "path", path)
		return nil, nil, false
	}
	p.logger.Info("using inventory snapshot", "path", path, "cards", len(snap.Cards))
	return snap.Cards, snap.AppIDs, true
}

func (p *DirProvider) Prices() map[string]float64 {
	var prices map[string]float64
	if !p.read(filepath.Join(p.dir, "pricecache.json"), &prices) {
		return nil
	}
	return prices
}

func (p *DirProvider) CardSets() map[string][]string {
	var sets map[string][]string
	if !p.read(filepath.Join(p.dir, "cardsets.json"), &sets) {
		return nil
	}
	return sets
}

// read unmarshals a snapshot file into v; absence is silent, anything
// else is logged.
func (p *DirProvider) read(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			p.logger.Warn("failed to read snapshot", "path", path, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		p.logger.Warn("failed to parse snapshot", "path", path, "error", err)
		return false
	}
	return true
}
