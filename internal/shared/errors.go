package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingAPIKey = fmt.Errorf("missing Steam API key")
	ErrInvalidAPIKey = fmt.Errorf("invalid Steam API key")

	// Network errors
	ErrRequestFailed   = fmt.Errorf("request failed")
	ErrBadStatus       = fmt.Errorf("unexpected response status")
	ErrTooManyRequests = fmt.Errorf("rate limited by Steam")

	// Analysis errors
	ErrProfileNotFound      = fmt.Errorf("could not resolve SteamID64")
	ErrInventoryUnavailable = fmt.Errorf("inventory unavailable")
	ErrNoBadges             = fmt.Errorf("no badge collections found to analyze")
	ErrUnknownCurrency      = fmt.Errorf("unknown currency code")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
