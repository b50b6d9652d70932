package services

import (
	"fmt"
	"strings"

	"github.com/deeCaTofficial/SteamBadgeHelper/internal/shared"
)

// currencyIDs maps ISO currency codes to Steam market currency ids.
var currencyIDs = map[string]int{
	"USD": 1, "GBP": 2, "EUR": 3, "CHF": 4, "RUB": 5, "PLN": 6,
	"BRL": 7, "JPY": 8, "NOK": 9, "IDR": 10, "MYR": 11, "PHP": 12,
	"SGD": 13, "THB": 14, "VND": 15, "KRW": 16, "TRY": 17, "UAH": 18,
	"MXN": 19, "CAD": 20, "AUD": 21, "NZD": 22, "CNY": 23, "INR": 24,
	"CLP": 25, "PEN": 26, "COP": 27, "ZAR": 28, "HKD": 29, "TWD": 30,
	"SAR": 31, "AED": 32, "SEK": 33, "ARS": 34, "ILS": 35, "BYN": 36,
	"KZT": 37, "KWD": 38, "QAR": 39, "CRC": 40, "UYU": 41, "BGN": 42,
	"HRK": 43, "CZK": 44, "DKK": 45, "HUF": 46, "RON": 47,
}

// CurrencyID resolves a currency code (case-insensitive) to its Steam
// market currency id.
func CurrencyID(code string) (int, error) {
	if code == "" {
		return currencyIDs["USD"], nil
	}
	id, ok := currencyIDs[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", shared.ErrUnknownCurrency, code)
	}
	return id, nil
}

// Currencies returns the supported currency codes, unordered.
func Currencies() []string {
	codes := make([]string, 0, len(currencyIDs))
	for code := range currencyIDs {
		codes = append(codes, code)
	}
	return codes
}
