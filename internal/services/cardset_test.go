package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	helpers "github.com/deeCaTofficial/SteamBadgeHelper/internal/testing"
)

const badgeCardSetHTML = `<html><body>
<div class="badge_card_set_card">
  <div class="badge_card_set_text">  The Cake  </div>
</div>
<div class="badge_card_set_card">
  <div class="badge_card_set_text">Turret</div>
</div>
<div class="badge_card_set_card">
  <div class="badge_card_set_text">Turret</div>
</div>
</body></html>`

const gamecardNameHTML = `<html><body>
<div class="gamecard_card_name">Companion Cube</div>
<div class="gamecard_card_name">GLaDOS</div>
</body></html>`

func TestGetCardSetPrimarySelector(t *testing.T) {
	transport := &helpers.QueueRoundTripper{Queue: []helpers.QueuedResponse{
		{Response: helpers.NewResponse(200, badgeCardSetHTML)},
	}}
	svc := testService(t, transport)

	names, err := svc.GetCardSet(context.Background(), "76561197960287930", 620)
	if err != nil {
		t.Fatalf("GetCardSet failed: %v", err)
	}

	want := []string{"The Cake", "Turret"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestGetCardSetFallbackSelector(t *testing.T) {
	transport := &helpers.QueueRoundTripper{Queue: []helpers.QueuedResponse{
		{Response: helpers.NewResponse(200, gamecardNameHTML)},
	}}
	svc := testService(t, transport)

	names, err := svc.GetCardSet(context.Background(), "76561197960287930", 620)
	if err != nil {
		t.Fatalf("GetCardSet failed: %v", err)
	}
	if len(names) != 2 || names[0] != "Companion Cube" || names[1] != "GLaDOS" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestGetCardSetRedirectedAway(t *testing.T) {
	// The community site redirects /gamecards/ to the profile page for
	// apps without card sets; the final URL is all we have to detect it.
	resp := helpers.NewResponse(200, badgeCardSetHTML)
	req, err := http.NewRequest(http.MethodGet, "https://steamcommunity.com/profiles/76561197960287930/", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Request = req

	transport := &helpers.QueueRoundTripper{Queue: []helpers.QueuedResponse{
		{Response: resp},
	}}
	svc := testService(t, transport)

	names, err := svc.GetCardSet(context.Background(), "76561197960287930", 620)
	if err != nil {
		t.Fatalf("GetCardSet failed: %v", err)
	}
	if names != nil {
		t.Errorf("expected nil card set after redirect, got %v", names)
	}
}

func TestGetCardSetNoMatches(t *testing.T) {
	transport := &helpers.QueueRoundTripper{Queue: []helpers.QueuedResponse{
		{Response: helpers.NewResponse(200, "<html><body><p>nothing here</p></body></html>")},
	}}
	svc := testService(t, transport)

	names, err := svc.GetCardSet(context.Background(), "76561197960287930", 620)
	if err != nil {
		t.Fatalf("GetCardSet failed: %v", err)
	}
	if names != nil {
		t.Errorf("expected nil card set, got %v", names)
	}
}

func TestGetCardSetFetchFailure(t *testing.T) {
	transport := &helpers.QueueRoundTripper{Queue: []helpers.QueuedResponse{
		{Err: errors.New("timeout")},
		{Err: errors.New("timeout")},
		{Err: errors.New("timeout")},
	}}
	svc := testService(t, transport)

	names, err := svc.GetCardSet(context.Background(), "76561197960287930", 620)
	if err != nil {
		t.Fatalf("expected graceful degradation, got error: %v", err)
	}
	if names != nil {
		t.Errorf("expected nil card set, got %v", names)
	}
}
