package tasks

import "testing"

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{ValidateKey, "validate_key"},
		{ResolveProfile, "resolve_profile"},
		{FetchInventory, "fetch_inventory"},
		{FetchBadges, "fetch_badges"},
		{Analyze, "analyze"},
		{Phase(99), ""},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestAnalyzingUpdate(t *testing.T) {
	ev := analyzingUpdate(3, 10, "Portal 2")
	if ev.Phase != Analyze || ev.Step != 3 || ev.Total != 10 {
		t.Errorf("unexpected event %+v", ev)
	}
	if ev.Message != "Analyzing Portal 2 (3/10)..." {
		t.Errorf("unexpected message %q", ev.Message)
	}
}

func TestFetchingInventoryUpdate(t *testing.T) {
	if ev := fetchingInventoryUpdate(true); ev.Message != "Loading inventory snapshot..." {
		t.Errorf("unexpected snapshot message %q", ev.Message)
	}
	if ev := fetchingInventoryUpdate(false); ev.Message != "Collecting inventory from Steam..." {
		t.Errorf("unexpected network message %q", ev.Message)
	}
}
