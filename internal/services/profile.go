package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"github.com/deeCaTofficial/SteamBadgeHelper/internal/shared"
)

var (
	steamID64Pattern  = regexp.MustCompile(`^\d{17}$`)
	profileURLPattern = regexp.MustCompile(`^https?://steamcommunity\.com/(id|profiles)/([^/]+)`)
)

// profileDoc is the subset of the community XML profile document we read.
type profileDoc struct {
	XMLName   xml.Name `xml:"profile"`
	SteamID64 string   `xml:"steamID64"`
}

// ResolveSteamID resolves user input to a canonical SteamID64.
//
// A 17-digit id is returned as-is with no network call. Profile URLs have
// their embedded value extracted; anything else is treated as a vanity
// name and resolved with one best-effort XML lookup (no retries).
func (s *SteamService) ResolveSteamID(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if steamID64Pattern.MatchString(input) {
		return input, nil
	}

	vanity := input
	if m := profileURLPattern.FindStringSubmatch(input); m != nil {
		if m[1] == "profiles" && steamID64Pattern.MatchString(m[2]) {
			return m[2], nil
		}
		vanity = m[2]
	}

	u := fmt.Sprintf("%s/id/%s?xml=1", communityBase, vanity)
	resp, err := s.client.GetOnce(ctx, u)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrProfileNotFound, err)
	}

	var doc profileDoc
	if err := xml.Unmarshal(resp.Body, &doc); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrProfileNotFound, err)
	}
	if !steamID64Pattern.MatchString(doc.SteamID64) {
		return "", fmt.Errorf("%w: no SteamID64 in profile for %q", shared.ErrProfileNotFound, vanity)
	}

	return doc.SteamID64, nil
}
