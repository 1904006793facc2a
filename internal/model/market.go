package model

// Tag is a Gamma market category.
type Tag struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Slug      string `json:"slug"`
	ForceShow bool   `json:"forceShow,omitempty"`
}

// Market represents a Polymarket prediction market as served by the Gamma
// API. Prices and volumes arrive as JSON strings and are passed through
// unchanged.
type Market struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Slug          string   `json:"slug"`
	ConditionID   string   `json:"conditionId"`
	Description   string   `json:"description,omitempty"`
	Outcomes      string   `json:"outcomes,omitempty"`
	OutcomePrices string   `json:"outcomePrices,omitempty"`
	ClobTokenIDs  string   `json:"clobTokenIds,omitempty"`
	Image         string   `json:"image,omitempty"`
	Icon          string   `json:"icon,omitempty"`
	Active        bool     `json:"active"`
	Closed        bool     `json:"closed"`
	Archived      bool     `json:"archived"`
	Featured      bool     `json:"featured,omitempty"`
	NegRisk       bool     `json:"negRisk,omitempty"`
	Liquidity     string   `json:"liquidity,omitempty"`
	Volume        string   `json:"volume,omitempty"`
	Volume24Hr    float64  `json:"volume24hr,omitempty"`
	StartDate     string   `json:"startDate,omitempty"`
	EndDate       string   `json:"endDate,omitempty"`
	Events        []*Event `json:"events,omitempty"`
}

// Event groups related markets under one slug.
type Event struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	Active      bool     `json:"active"`
	Closed      bool     `json:"closed"`
	Archived    bool     `json:"archived"`
	Featured    bool     `json:"featured,omitempty"`
	Liquidity   float64  `json:"liquidity,omitempty"`
	Volume      float64  `json:"volume,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Markets     []Market `json:"markets,omitempty"`
	Tags        []Tag    `json:"tags,omitempty"`
}

// SearchResult is the public-search response: matches grouped by kind.
type SearchResult struct {
	Markets []Market `json:"markets,omitempty"`
	Events  []Event  `json:"events,omitempty"`
	Tags    []Tag    `json:"tags,omitempty"`
	HasMore bool     `json:"hasMore,omitempty"`
}

// MarketQuery carries list filters through to the Gamma API. Pointer fields
// are tri-state: nil means "not supplied", so the upstream default applies.
type MarketQuery struct {
	Limit    *int
	Offset   *int
	Active   *bool
	Closed   *bool
	Archived *bool
	TagID    string
}

// EventQuery mirrors MarketQuery for the events listing.
type EventQuery struct {
	Limit    *int
	Offset   *int
	Active   *bool
	Closed   *bool
	Archived *bool
	TagID    string
}
