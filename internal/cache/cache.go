// package cache persists resolved game names and card sets between runs
// so repeated analyses skip the slowest lookups.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Document is the on-disk cache. Keys are appIDs rendered as strings so
// the JSON stays stable and hand-editable.
type Document struct {
	mu sync.RWMutex

	GameNames map[string]string   `json:"game_names"`
	CardSets  map[string][]string `json:"card_sets"`
}

func NewDocument() *Document {
	return &Document{
		GameNames: make(map[string]string),
		CardSets:  make(map[string][]string),
	}
}

// Load reads the cache at path. A missing or unreadable file yields an
// empty cache, never an error: the cache is an accelerator, not a
// dependency.
func Load(path string) *Document {
	doc := NewDocument()
	data, err := os.ReadFile(path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return NewDocument()
	}
	if doc.GameNames == nil {
		doc.GameNames = make(map[string]string)
	}
	if doc.CardSets == nil {
		doc.CardSets = make(map[string][]string)
	}
	return doc
}

// Save writes the cache atomically via a temp file rename.
func (d *Document) Save(path string) error {
	d.mu.RLock()
	data, err := json.MarshalIndent(d, "", "  ")
	d.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace cache: %w", err)
	}
	return nil
}

func (d *Document) GameName(appID int) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.GameNames[strconv.Itoa(appID)]
	return name, ok
}

func (d *Document) SetGameName(appID int, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.GameNames[strconv.Itoa(appID)] = name
}

func (d *Document) CardSet(appID int) ([]string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	set, ok := d.CardSets[strconv.Itoa(appID)]
	if !ok || len(set) == 0 {
		return nil, false
	}
	return set, true
}

func (d *Document) SetCardSet(appID int, cards []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.CardSets[strconv.Itoa(appID)] = cards
}

// Len reports how many entries the cache holds across both sections.
func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.GameNames) + len(d.CardSets)
}
