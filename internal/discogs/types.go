package discogs

import "github.com/shopspring/decimal"

// ReleaseInfo is the catalog metadata needed for a price report.
type ReleaseInfo struct {
	ID      int
	Title   string
	Artists []string
}

// PriceSuggestion is the marketplace's suggested resale price for one grade.
type PriceSuggestion struct {
	Amount   decimal.Decimal
	Currency string
}

// Wire shapes. Pointers distinguish a missing field from a zero value.

type releaseResponse struct {
	Title   *string          `json:"title"`
	Artists *[]artistPayload `json:"artists"`
}

type artistPayload struct {
	Name *string `json:"name"`
}

type suggestionPayload struct {
	Value    *decimal.Decimal `json:"value"`
	Currency *string          `json:"currency"`
}

type errorResponse struct {
	Message string `json:"message"`
}
