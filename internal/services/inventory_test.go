package services

import (
	"context"
	"errors"
	"testing"

	"github.com/deeCaTofficial/SteamBadgeHelper/internal/shared"
	helpers "github.com/deeCaTofficial/SteamBadgeHelper/internal/testing"
)

const inventoryPageOne = `{
  "descriptions": [
    {
      "market_hash_name": "620-Cake",
      "type": "Portal 2 Trading Card",
      "tags": [
        {"category": "Game", "internal_name": "app_620"},
        {"category": "item_class", "internal_name": "item_class_2"}
      ]
    },
    {
      "market_hash_name": "620-Cake",
      "type": "Portal 2 Trading Card",
      "tags": [
        {"category": "Game", "internal_name": "app_620"},
        {"category": "item_class", "internal_name": "item_class_2"}
      ]
    },
    {
      "market_hash_name": "620-Turret (Foil)",
      "type": "Portal 2 Foil Trading Card",
      "tags": [
        {"category": "Game", "internal_name": "app_620"},
        {"category": "item_class", "internal_name": "item_class_2"}
      ]
    },
    {
      "market_hash_name": "Summer Sale Emoticon",
      "type": "Emoticon",
      "tags": [
        {"category": "Game", "internal_name": "app_620"},
        {"category": "item_class", "internal_name": "item_class_4"}
      ]
    }
  ],
  "more_items": 1,
  "last_assetid": "111"
}`

const inventoryPageTwo = `{
  "descriptions": [
    {
      "market_hash_name": "220-Crowbar",
      "type": "Half-Life 2 Trading Card",
      "tags": [
        {"category": "Game", "internal_name": "app_220"},
        {"category": "item_class", "internal_name": "item_class_2"}
      ]
    }
  ],
  "more_items": 0,
  "last_assetid": ""
}`

func TestCollectInventoryPaginates(t *testing.T) {
	transport := &helpers.QueueRoundTripper{Queue: []helpers.QueuedResponse{
		{Response: helpers.NewResponse(200, inventoryPageOne)},
		{Response: helpers.NewResponse(200, inventoryPageTwo)},
	}}
	svc := testService(t, transport)

	inv, err := svc.CollectInventory(context.Background(), "76561197960287930")
	if err != nil {
		t.Fatalf("CollectInventory failed: %v", err)
	}

	if got := inv.Cards["620-Cake"]; got != 2 {
		t.Errorf("expected 2 copies of 620-Cake, got %d", got)
	}
	if got := inv.Cards["220-Crowbar"]; got != 1 {
		t.Errorf("expected 1 copy of 220-Crowbar, got %d", got)
	}
	if _, ok := inv.Cards["620-Turret (Foil)"]; ok {
		t.Error("foil card should be excluded")
	}
	if _, ok := inv.Cards["Summer Sale Emoticon"]; ok {
		t.Error("non-card item should be excluded")
	}

	wantIDs := []int{220, 620}
	if len(inv.AppIDs) != len(wantIDs) {
		t.Fatalf("expected appIDs %v, got %v", wantIDs, inv.AppIDs)
	}
	for i, id := range wantIDs {
		if inv.AppIDs[i] != id {
			t.Errorf("appIDs[%d] = %d, want %d", i, inv.AppIDs[i], id)
		}
	}

	if len(transport.Requests) != 2 {
		t.Fatalf("expected 2 page fetches, got %d", len(transport.Requests))
	}
	first := transport.Requests[0].URL
	if first.Query().Get("count") != "2000" {
		t.Errorf("expected count=2000, got %q", first.Query().Get("count"))
	}
	if first.Query().Get("start_assetid") != "" {
		t.Error("first page should not carry a cursor")
	}
	second := transport.Requests[1].URL
	if second.Query().Get("start_assetid") != "111" {
		t.Errorf("expected cursor 111 on second page, got %q", second.Query().Get("start_assetid"))
	}
}

func TestCollectInventoryEmpty(t *testing.T) {
	transport := &helpers.QueueRoundTripper{Queue: []helpers.QueuedResponse{
		{Response: helpers.NewResponse(200, `{"descriptions": [], "more_items": 0}`)},
	}}
	svc := testService(t, transport)

	inv, err := svc.CollectInventory(context.Background(), "76561197960287930")
	if err != nil {
		t.Fatalf("CollectInventory failed: %v", err)
	}
	if !inv.Empty() {
		t.Errorf("expected empty inventory, got %+v", inv)
	}
}

func TestCollectInventoryPartialOnPageFailure(t *testing.T) {
	transport := &helpers.QueueRoundTripper{Queue: []helpers.QueuedResponse{
		{Response: helpers.NewResponse(200, inventoryPageOne)},
		{Err: errors.New("timeout")},
		{Err: errors.New("timeout")},
		{Err: errors.New("timeout")},
	}}
	svc := testService(t, transport)

	inv, err := svc.CollectInventory(context.Background(), "76561197960287930")
	if err != nil {
		t.Fatalf("expected partial result, got error: %v", err)
	}
	if got := inv.Cards["620-Cake"]; got != 2 {
		t.Errorf("expected first page's cards preserved, got %+v", inv.Cards)
	}
}

func TestCollectInventoryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport := &helpers.QueueRoundTripper{}
	svc := testService(t, transport)

	_, err := svc.CollectInventory(ctx, "76561197960287930")
	if !errors.Is(err, shared.ErrInventoryUnavailable) {
		t.Errorf("expected ErrInventoryUnavailable, got %v", err)
	}
}

func TestCardAppID(t *testing.T) {
	tests := []struct {
		name   string
		item   inventoryItem
		wantID int
		wantOK bool
	}{
		{
			"game tag present",
			inventoryItem{Tags: []itemTag{{Category: "Game", InternalName: "app_440"}}},
			440, true,
		},
		{
			"no game tag",
			inventoryItem{Tags: []itemTag{{Category: "item_class", InternalName: "item_class_2"}}},
			0, false,
		},
		{
			"malformed game tag",
			inventoryItem{Tags: []itemTag{{Category: "Game", InternalName: "tf2"}}},
			0, false,
		},
		{
			"first game tag wins",
			inventoryItem{Tags: []itemTag{
				{Category: "Game", InternalName: "app_570"},
				{Category: "Game", InternalName: "app_730"},
			}},
			570, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := cardAppID(tt.item)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("cardAppID() = (%d, %v), want (%d, %v)", id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}
