package upstream

import (
	"context"
	"time"

	"github.com/GoPolymarket/polyproxy/internal/model"
	"github.com/GoPolymarket/polyproxy/internal/signer"
	"github.com/go-resty/resty/v2"
)

const upstreamClob = "trading"

// ClobClient wraps the trading/orderbook REST API. Read operations are
// plain pass-throughs; order mutations carry builder attribution headers
// when credentials are configured so volume is credited to the operator.
type ClobClient struct {
	http    *resty.Client
	builder *signer.BuilderCredentials
}

func NewClobClient(baseURL string, builder *signer.BuilderCredentials) *ClobClient {
	return &ClobClient{
		http:    newClient(baseURL, tradingTimeout),
		builder: builder,
	}
}

func (c *ClobClient) GetOrderbook(ctx context.Context, tokenID string) (*model.Orderbook, error) {
	var book model.Orderbook
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("token_id", tokenID).
		SetResult(&book).
		Get("/book")
	if appErr := translate(upstreamClob, resp, err); appErr != nil {
		return nil, appErr
	}
	return &book, nil
}

// GetOrderbookWithDepth truncates both sides after the fetch; the book
// endpoint itself has no depth parameter.
func (c *ClobClient) GetOrderbookWithDepth(ctx context.Context, tokenID string, depth int) (*model.Orderbook, error) {
	book, err := c.GetOrderbook(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if depth > 0 {
		if len(book.Bids) > depth {
			book.Bids = book.Bids[:depth]
		}
		if len(book.Asks) > depth {
			book.Asks = book.Asks[:depth]
		}
	}
	return book, nil
}

func (c *ClobClient) GetPrice(ctx context.Context, tokenID, side string) (*model.PriceResponse, error) {
	var price model.PriceResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"token_id": tokenID, "side": side}).
		SetResult(&price).
		Get("/price")
	if appErr := translate(upstreamClob, resp, err); appErr != nil {
		return nil, appErr
	}
	return &price, nil
}

func (c *ClobClient) GetMidpoint(ctx context.Context, tokenID string) (*model.MidpointResponse, error) {
	var mid model.MidpointResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("token_id", tokenID).
		SetResult(&mid).
		Get("/midpoint")
	if appErr := translate(upstreamClob, resp, err); appErr != nil {
		return nil, appErr
	}
	return &mid, nil
}

func (c *ClobClient) GetSpread(ctx context.Context, tokenID string) (*model.SpreadResponse, error) {
	var spread model.SpreadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("token_id", tokenID).
		SetResult(&spread).
		Get("/spread")
	if appErr := translate(upstreamClob, resp, err); appErr != nil {
		return nil, appErr
	}
	return &spread, nil
}

func (c *ClobClient) GetTickSize(ctx context.Context, tokenID string) (*model.TickSizeResponse, error) {
	var tick model.TickSizeResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("token_id", tokenID).
		SetResult(&tick).
		Get("/tick-size")
	if appErr := translate(upstreamClob, resp, err); appErr != nil {
		return nil, appErr
	}
	return &tick, nil
}

func (c *ClobClient) GetMinOrderSize(ctx context.Context, tokenID string) (*model.MinOrderSizeResponse, error) {
	var size model.MinOrderSizeResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("token_id", tokenID).
		SetResult(&size).
		Get("/min-order-size")
	if appErr := translate(upstreamClob, resp, err); appErr != nil {
		return nil, appErr
	}
	return &size, nil
}

func (c *ClobClient) ListTrades(ctx context.Context, q model.TradeQuery) ([]model.Trade, error) {
	var trades []model.Trade
	req := c.http.R().SetContext(ctx).SetResult(&trades)
	if q.Market != "" {
		req.SetQueryParam("market", q.Market)
	}
	if q.AssetID != "" {
		req.SetQueryParam("asset_id", q.AssetID)
	}
	setInt(req, "limit", q.Limit)
	setInt(req, "offset", q.Offset)
	resp, err := req.Get("/trades")
	if appErr := translate(upstreamClob, resp, err); appErr != nil {
		return nil, appErr
	}
	return trades, nil
}

func (c *ClobClient) ListTradesForToken(ctx context.Context, tokenID string, limit *int) ([]model.Trade, error) {
	return c.ListTrades(ctx, model.TradeQuery{AssetID: tokenID, Limit: limit})
}

func (c *ClobClient) ListUserOrders(ctx context.Context, address string) ([]model.OpenOrder, error) {
	var orders []model.OpenOrder
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("maker", address).
		SetResult(&orders).
		Get("/data/orders")
	if appErr := translate(upstreamClob, resp, err); appErr != nil {
		return nil, appErr
	}
	return orders, nil
}

func (c *ClobClient) GetOrder(ctx context.Context, orderID string) (*model.OpenOrder, error) {
	var order model.OpenOrder
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&order).
		Get("/data/order/" + orderID)
	if appErr := translate(upstreamClob, resp, err); appErr != nil {
		return nil, appErr
	}
	return &order, nil
}

// CreateOrder forwards a caller-signed order unmodified. The gateway never
// inspects or verifies the signature.
func (c *ClobClient) CreateOrder(ctx context.Context, sub model.OrderSubmission) (*model.OrderSubmissionResponse, error) {
	var result model.OrderSubmissionResponse
	req := c.http.R().
		SetContext(ctx).
		SetBody(sub).
		SetResult(&result)
	c.attachAttribution(req, "POST", "/order", sub)
	resp, err := req.Post("/order")
	if appErr := translate(upstreamClob, resp, err); appErr != nil {
		return nil, appErr
	}
	return &result, nil
}

func (c *ClobClient) CancelOrder(ctx context.Context, orderID string) (*model.CancelResponse, error) {
	var result model.CancelResponse
	body := map[string]string{"orderID": orderID}
	req := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result)
	c.attachAttribution(req, "DELETE", "/order", body)
	resp, err := req.Delete("/order")
	if appErr := translate(upstreamClob, resp, err); appErr != nil {
		return nil, appErr
	}
	return &result, nil
}

func (c *ClobClient) CancelAllOrders(ctx context.Context) (*model.CancelResponse, error) {
	var result model.CancelResponse
	req := c.http.R().
		SetContext(ctx).
		SetResult(&result)
	c.attachAttribution(req, "DELETE", "/cancel-all", nil)
	resp, err := req.Delete("/cancel-all")
	if appErr := translate(upstreamClob, resp, err); appErr != nil {
		return nil, appErr
	}
	return &result, nil
}

func (c *ClobClient) attachAttribution(req *resty.Request, method, path string, body any) {
	if c.builder == nil {
		return
	}
	headers, err := c.builder.Headers(time.Now(), method, path, body)
	if err != nil {
		return
	}
	req.SetHeaders(headers)
}
