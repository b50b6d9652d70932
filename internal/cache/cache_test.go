package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deeCaTofficial/SteamBadgeHelper/internal/models"
	helpers "github.com/deeCaTofficial/SteamBadgeHelper/internal/testing"
)

func TestDocumentRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	doc := NewDocument()
	doc.SetGameName(620, "Portal 2")
	doc.SetCardSet(620, []string{"The Cake", "Turret"})
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	helpers.AssertFileExists(t, path)

	loaded := Load(path)
	if name, ok := loaded.GameName(620); !ok || name != "Portal 2" {
		t.Errorf("GameName(620) = (%q, %v), want (Portal 2, true)", name, ok)
	}
	if set, ok := loaded.CardSet(620); !ok || len(set) != 2 {
		t.Errorf("CardSet(620) = (%v, %v), want 2 cards", set, ok)
	}
	if loaded.Len() != 2 {
		t.Errorf("Len() = %d, want 2", loaded.Len())
	}
}

func TestLoadMissingOrMalformed(t *testing.T) {
	dir := t.TempDir()

	doc := Load(filepath.Join(dir, "missing.json"))
	if doc.Len() != 0 {
		t.Errorf("missing file should load empty, got %d entries", doc.Len())
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	doc = Load(bad)
	if doc.Len() != 0 {
		t.Errorf("malformed file should load empty, got %d entries", doc.Len())
	}
	if _, ok := doc.GameName(620); ok {
		t.Error("empty cache should have no entries")
	}
}

func TestCardSetEmptyIsMiss(t *testing.T) {
	doc := NewDocument()
	doc.SetCardSet(620, []string{})

	if _, ok := doc.CardSet(620); ok {
		t.Error("empty card set should read as a miss")
	}
}

func TestSaveCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cache.json")

	doc := NewDocument()
	doc.SetGameName(620, "Portal 2")
	if err := doc.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	helpers.AssertFileExists(t, path)
}

func TestResultLogAppendAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results_autosave.json")
	cost := 0.05

	log := NewResultLog(path)
	if log.Len() != 0 {
		t.Fatalf("fresh log should be empty, got %d", log.Len())
	}

	result := models.AnalysisResult{
		AppID:      620,
		Game:       "Portal 2",
		Cost:       cost,
		ToBuyCount: 1,
		ToBuy:      []models.PricedCard{{Name: "Turret", Price: &cost}},
		Owned:      []string{"The Cake"},
	}
	if err := log.Append(result); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	helpers.AssertFileExists(t, path)

	saved := LoadResults(path)
	if len(saved) != 1 {
		t.Fatalf("expected 1 saved result, got %d", len(saved))
	}
	if saved[0].Game != "Portal 2" || saved[0].Cost != cost {
		t.Errorf("unexpected saved result %+v", saved[0])
	}
}

func TestResultLogEachRunStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results_autosave.json")

	first := NewResultLog(path)
	if err := first.Append(models.AnalysisResult{AppID: 620, Game: "Portal 2"}); err != nil {
		t.Fatal(err)
	}

	// A new log at the same path represents a new run: its first append
	// replaces the previous run's file instead of extending it.
	second := NewResultLog(path)
	if second.Len() != 0 {
		t.Fatalf("new run's log should start empty, got %d", second.Len())
	}
	if err := second.Append(models.AnalysisResult{AppID: 620, Game: "Portal 2"}); err != nil {
		t.Fatal(err)
	}

	saved := LoadResults(path)
	if len(saved) != 1 {
		t.Fatalf("file should hold only the current run's result, got %d", len(saved))
	}
	count := 0
	for _, result := range saved {
		if result.AppID == 620 {
			count++
		}
	}
	if count != 1 {
		t.Errorf("appid 620 should appear once, got %d", count)
	}
}

func TestResultLogReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results_autosave.json")

	log := NewResultLog(path)
	if err := log.Append(models.AnalysisResult{AppID: 620, Game: "Portal 2"}); err != nil {
		t.Fatal(err)
	}
	if err := log.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if log.Len() != 0 {
		t.Errorf("expected empty log after reset, got %d", log.Len())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("results file should be removed")
	}

	// Resetting an already-reset log is a no-op
	if err := log.Reset(); err != nil {
		t.Errorf("second Reset failed: %v", err)
	}
}

func TestLoadResultsMissingOrMalformed(t *testing.T) {
	dir := t.TempDir()

	if saved := LoadResults(filepath.Join(dir, "missing.json")); len(saved) != 0 {
		t.Errorf("missing file should load empty, got %d", len(saved))
	}

	path := filepath.Join(dir, "results_autosave.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if saved := LoadResults(path); len(saved) != 0 {
		t.Errorf("malformed file should load empty, got %d", len(saved))
	}
}
