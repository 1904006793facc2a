package model

import "github.com/shopspring/decimal"

// OrderbookLevel is a single price level. The CLOB serves price and size as
// strings; decimal keeps the precision on the way through.
type OrderbookLevel struct {
	Price decimal.Decimal `json:"price"`
	Size  decimal.Decimal `json:"size"`
}

type Orderbook struct {
	Market    string           `json:"market"`
	AssetID   string           `json:"asset_id"`
	Timestamp string           `json:"timestamp"`
	Hash      string           `json:"hash,omitempty"`
	Bids      []OrderbookLevel `json:"bids"`
	Asks      []OrderbookLevel `json:"asks"`
}

type PriceResponse struct {
	Price decimal.Decimal `json:"price"`
}

type MidpointResponse struct {
	Mid decimal.Decimal `json:"mid"`
}

type SpreadResponse struct {
	Spread decimal.Decimal `json:"spread"`
}

type TickSizeResponse struct {
	MinimumTickSize decimal.Decimal `json:"minimum_tick_size"`
}

type MinOrderSizeResponse struct {
	MinOrderSize decimal.Decimal `json:"min_order_size"`
}

// Trade is a single fill reported by the CLOB data API.
type Trade struct {
	ID              string `json:"id"`
	TakerOrderID    string `json:"taker_order_id,omitempty"`
	Market          string `json:"market"`
	AssetID         string `json:"asset_id"`
	Side            string `json:"side"`
	Price           string `json:"price"`
	Size            string `json:"size"`
	Status          string `json:"status,omitempty"`
	MatchTime       string `json:"match_time,omitempty"`
	Outcome         string `json:"outcome,omitempty"`
	MakerAddress    string `json:"maker_address,omitempty"`
	TransactionHash string `json:"transaction_hash,omitempty"`
}

// TradeQuery filters the trades listing.
type TradeQuery struct {
	Market  string
	AssetID string
	Limit   *int
	Offset  *int
}

// SignedOrder is a caller-signed order forwarded unmodified to the CLOB.
// The gateway never verifies or re-signs it. Field names follow the CLOB
// wire format: salt is a bare integer, amounts are decimal strings.
type SignedOrder struct {
	Salt          int64  `json:"salt"`
	Maker         string `json:"maker"`
	Signer        string `json:"signer"`
	Taker         string `json:"taker"`
	TokenID       string `json:"tokenId"`
	MakerAmount   string `json:"makerAmount"`
	TakerAmount   string `json:"takerAmount"`
	Side          string `json:"side"`
	Expiration    string `json:"expiration"`
	Nonce         string `json:"nonce"`
	FeeRateBps    string `json:"feeRateBps"`
	SignatureType int    `json:"signatureType"`
	Signature     string `json:"signature"`
}

// OrderSubmission wraps a signed order with its owner API key and order type
// for POST /order.
type OrderSubmission struct {
	Order     SignedOrder `json:"order"`
	Owner     string      `json:"owner"`
	OrderType string      `json:"orderType"`
}

// OrderSubmissionResponse is the CLOB's answer to an order placement.
type OrderSubmissionResponse struct {
	Success      bool     `json:"success"`
	ErrorMsg     string   `json:"errorMsg,omitempty"`
	OrderID      string   `json:"orderId,omitempty"`
	OrderHashes  []string `json:"orderHashes,omitempty"`
	Status       string   `json:"status,omitempty"`
	TakingAmount string   `json:"takingAmount,omitempty"`
	MakingAmount string   `json:"makingAmount,omitempty"`
}

// OpenOrder is an order as returned by the CLOB query endpoints.
type OpenOrder struct {
	OrderID      string `json:"id"`
	Status       string `json:"status"`
	Owner        string `json:"owner,omitempty"`
	Market       string `json:"market,omitempty"`
	AssetID      string `json:"asset_id,omitempty"`
	Side         string `json:"side"`
	OriginalSize string `json:"original_size"`
	SizeMatched  string `json:"size_matched,omitempty"`
	Price        string `json:"price"`
	Outcome      string `json:"outcome,omitempty"`
	OrderType    string `json:"order_type,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	Expiration   string `json:"expiration,omitempty"`
	MakerAddress string `json:"maker_address,omitempty"`
}

type CancelResponse struct {
	Canceled    []string          `json:"canceled,omitempty"`
	NotCanceled map[string]string `json:"not_canceled,omitempty"`
}
