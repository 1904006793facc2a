package handler

import (
	"strings"

	"github.com/GoPolymarket/polyproxy/internal/model"
	"github.com/GoPolymarket/polyproxy/internal/pkg/apperrors"
	"github.com/GoPolymarket/polyproxy/internal/pkg/response"
	"github.com/GoPolymarket/polyproxy/internal/pkg/validate"
	"github.com/GoPolymarket/polyproxy/internal/upstream"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

type TradingHandler struct {
	clob *upstream.ClobClient
}

func NewTradingHandler(clob *upstream.ClobClient) *TradingHandler {
	return &TradingHandler{clob: clob}
}

func (h *TradingHandler) Orderbook(c *gin.Context) {
	depth, appErr := optionalIntQuery(c, "depth")
	if appErr != nil {
		fail(c, appErr)
		return
	}

	var (
		book *model.Orderbook
		err  error
	)
	if depth != nil {
		book, err = h.clob.GetOrderbookWithDepth(c.Request.Context(), c.Param("tokenId"), *depth)
	} else {
		book, err = h.clob.GetOrderbook(c.Request.Context(), c.Param("tokenId"))
	}
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"orderbook": book})
}

func (h *TradingHandler) Price(c *gin.Context) {
	side := strings.ToUpper(c.DefaultQuery("side", "BUY"))
	if side != "BUY" && side != "SELL" {
		fail(c, apperrors.NewValidation("side must be BUY or SELL", nil))
		return
	}

	price, err := h.clob.GetPrice(c.Request.Context(), c.Param("tokenId"), side)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, price)
}

func (h *TradingHandler) Midpoint(c *gin.Context) {
	mid, err := h.clob.GetMidpoint(c.Request.Context(), c.Param("tokenId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, mid)
}

func (h *TradingHandler) Spread(c *gin.Context) {
	spread, err := h.clob.GetSpread(c.Request.Context(), c.Param("tokenId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, spread)
}

func (h *TradingHandler) Trades(c *gin.Context) {
	limit, appErr := intQuery(c, "limit", defaultLimit)
	if appErr != nil {
		fail(c, appErr)
		return
	}
	offset, appErr := intQuery(c, "offset", defaultOffset)
	if appErr != nil {
		fail(c, appErr)
		return
	}

	trades, err := h.clob.ListTrades(c.Request.Context(), model.TradeQuery{
		Market:  c.Query("market"),
		AssetID: c.Query("asset_id"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"trades": trades, "count": len(trades)})
}

func (h *TradingHandler) TradesForToken(c *gin.Context) {
	limit, appErr := intQuery(c, "limit", defaultLimit)
	if appErr != nil {
		fail(c, appErr)
		return
	}

	trades, err := h.clob.ListTradesForToken(c.Request.Context(), c.Param("tokenId"), limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"trades": trades, "count": len(trades)})
}

func (h *TradingHandler) TickSize(c *gin.Context) {
	tick, err := h.clob.GetTickSize(c.Request.Context(), c.Param("tokenId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, tick)
}

func (h *TradingHandler) MinOrderSize(c *gin.Context) {
	size, err := h.clob.GetMinOrderSize(c.Request.Context(), c.Param("tokenId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, size)
}

func (h *TradingHandler) UserOrders(c *gin.Context) {
	address := c.Param("address")
	if !common.IsHexAddress(address) {
		fail(c, apperrors.NewValidation("address must be a valid hex address", nil))
		return
	}

	orders, err := h.clob.ListUserOrders(c.Request.Context(), address)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"orders": orders, "count": len(orders)})
}

func (h *TradingHandler) Order(c *gin.Context) {
	order, err := h.clob.GetOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// CreateOrder forwards a caller-signed order. Address fields are shape
// checked; the signature itself is never verified here.
func (h *TradingHandler) CreateOrder(c *gin.Context) {
	var req model.CreateOrderRequest
	if appErr := validate.BindJSON(c, &req); appErr != nil {
		fail(c, appErr)
		return
	}
	if appErr := checkOrderAddresses(req.Order); appErr != nil {
		fail(c, appErr)
		return
	}

	orderType := req.OrderType
	if orderType == "" {
		orderType = "GTC"
	}

	result, err := h.clob.CreateOrder(c.Request.Context(), model.OrderSubmission{
		Order:     req.Order,
		Owner:     req.Owner,
		OrderType: orderType,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, result)
}

func (h *TradingHandler) CancelOrder(c *gin.Context) {
	var req model.CancelOrderRequest
	if appErr := validate.BindJSON(c, &req); appErr != nil {
		fail(c, appErr)
		return
	}

	result, err := h.clob.CancelOrder(c.Request.Context(), req.OrderID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

func (h *TradingHandler) CancelAll(c *gin.Context) {
	result, err := h.clob.CancelAllOrders(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

func checkOrderAddresses(order model.SignedOrder) *apperrors.AppError {
	var details []validate.FieldError
	for _, field := range []struct {
		path string
		addr string
	}{
		{"order.maker", order.Maker},
		{"order.signer", order.Signer},
		{"order.taker", order.Taker},
	} {
		if !common.IsHexAddress(field.addr) {
			details = append(details, validate.FieldError{Path: field.path, Message: "must be a valid hex address"})
		}
	}
	if len(details) > 0 {
		return apperrors.NewValidation("order contains invalid addresses", details)
	}
	return nil
}
