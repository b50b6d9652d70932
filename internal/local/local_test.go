package local

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSnapshot(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write snapshot %s: %v", name, err)
	}
}

func TestNewDirProvider(t *testing.T) {
	dir := t.TempDir()

	if _, err := NewDirProvider(dir, nil); err != nil {
		t.Errorf("NewDirProvider failed for valid directory: %v", err)
	}

	if _, err := NewDirProvider(filepath.Join(dir, "missing"), nil); err == nil {
		t.Error("expected error for missing directory")
	}

	file := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewDirProvider(file, nil); err == nil {
		t.Error("expected error for non-directory path")
	}
}

func TestDirProviderInventory(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "inventory_76561197960287930.json",
		`{"cards": {"620-Cake": 2}, "appids": [620]}`)

	p, err := NewDirProvider(dir, nil)
	if err != nil {
		t.Fatal(err)
	}

	cards, appIDs, ok := p.Inventory("76561197960287930")
	if !ok {
		t.Fatal("expected snapshot to load")
	}
	if cards["620-Cake"] != 2 {
		t.Errorf("unexpected cards %v", cards)
	}
	if len(appIDs) != 1 || appIDs[0] != 620 {
		t.Errorf("unexpected appIDs %v", appIDs)
	}

	if _, _, ok := p.Inventory("76561197960287931"); ok {
		t.Error("expected no snapshot for unknown account")
	}
}

func TestDirProviderInventoryEmpty(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "inventory_76561197960287930.json",
		`{"cards": {}, "appids": []}`)

	p, err := NewDirProvider(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, ok := p.Inventory("76561197960287930"); ok {
		t.Error("snapshot with no cards should be ignored")
	}
}

func TestDirProviderInventoryMalformed(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "inventory_76561197960287930.json", "not json")

	p, err := NewDirProvider(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, ok := p.Inventory("76561197960287930"); ok {
		t.Error("malformed snapshot should be ignored")
	}
}

func TestDirProviderPricesAndCardSets(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "pricecache.json", `{"620-Cake": 0.05}`)
	writeSnapshot(t, dir, "cardsets.json", `{"620": ["The Cake", "Turret"]}`)

	p, err := NewDirProvider(dir, nil)
	if err != nil {
		t.Fatal(err)
	}

	prices := p.Prices()
	if prices["620-Cake"] != 0.05 {
		t.Errorf("unexpected prices %v", prices)
	}

	sets := p.CardSets()
	if len(sets["620"]) != 2 {
		t.Errorf("unexpected card sets %v", sets)
	}
}

func TestEmptyProvider(t *testing.T) {
	var p Empty

	if _, _, ok := p.Inventory("76561197960287930"); ok {
		t.Error("Empty should never have an inventory")
	}
	if p.Prices() != nil {
		t.Error("Empty should have no prices")
	}
	if p.CardSets() != nil {
		t.Error("Empty should have no card sets")
	}
}
