package handler

import (
	"github.com/GoPolymarket/polyproxy/internal/model"
	"github.com/GoPolymarket/polyproxy/internal/pkg/apperrors"
	"github.com/GoPolymarket/polyproxy/internal/pkg/response"
	"github.com/GoPolymarket/polyproxy/internal/upstream"
	"github.com/gin-gonic/gin"
)

type MarketHandler struct {
	gamma *upstream.GammaClient
}

func NewMarketHandler(gamma *upstream.GammaClient) *MarketHandler {
	return &MarketHandler{gamma: gamma}
}

func (h *MarketHandler) Tags(c *gin.Context) {
	tags, err := h.gamma.ListTags(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"tags": tags, "count": len(tags)})
}

func (h *MarketHandler) Events(c *gin.Context) {
	query, appErr := eventQuery(c)
	if appErr != nil {
		fail(c, appErr)
		return
	}

	events, err := h.gamma.ListEvents(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"events": events, "count": len(events)})
}

func (h *MarketHandler) EventsByTag(c *gin.Context) {
	query, appErr := eventQuery(c)
	if appErr != nil {
		fail(c, appErr)
		return
	}

	events, err := h.gamma.ListEventsByTag(c.Request.Context(), c.Param("tagId"), query)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"events": events, "count": len(events)})
}

func (h *MarketHandler) EventBySlug(c *gin.Context) {
	event, err := h.gamma.GetEventBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"event": event})
}

func (h *MarketHandler) Markets(c *gin.Context) {
	query, appErr := marketQuery(c)
	if appErr != nil {
		fail(c, appErr)
		return
	}

	markets, err := h.gamma.ListMarkets(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"markets": markets, "count": len(markets)})
}

func (h *MarketHandler) Featured(c *gin.Context) {
	query, appErr := marketQuery(c)
	if appErr != nil {
		fail(c, appErr)
		return
	}

	markets, err := h.gamma.FeaturedMarkets(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"markets": markets, "count": len(markets)})
}

func (h *MarketHandler) Trending(c *gin.Context) {
	query, appErr := marketQuery(c)
	if appErr != nil {
		fail(c, appErr)
		return
	}

	markets, err := h.gamma.TrendingMarkets(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"markets": markets, "count": len(markets)})
}

func (h *MarketHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		fail(c, apperrors.NewValidation("q is required", nil))
		return
	}

	query, appErr := marketQuery(c)
	if appErr != nil {
		fail(c, appErr)
		return
	}

	result, err := h.gamma.SearchMarkets(c.Request.Context(), q, query)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}

func (h *MarketHandler) MarketBySlug(c *gin.Context) {
	market, err := h.gamma.GetMarketBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"market": market})
}

func (h *MarketHandler) MarketByID(c *gin.Context) {
	market, err := h.gamma.GetMarketByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"market": market})
}

func marketQuery(c *gin.Context) (model.MarketQuery, *apperrors.AppError) {
	limit, appErr := intQuery(c, "limit", defaultLimit)
	if appErr != nil {
		return model.MarketQuery{}, appErr
	}
	offset, appErr := intQuery(c, "offset", defaultOffset)
	if appErr != nil {
		return model.MarketQuery{}, appErr
	}
	return model.MarketQuery{
		Limit:    limit,
		Offset:   offset,
		Active:   boolQuery(c, "active"),
		Closed:   boolQuery(c, "closed"),
		Archived: boolQuery(c, "archived"),
		TagID:    c.Query("tag_id"),
	}, nil
}

func eventQuery(c *gin.Context) (model.EventQuery, *apperrors.AppError) {
	q, appErr := marketQuery(c)
	if appErr != nil {
		return model.EventQuery{}, appErr
	}
	return model.EventQuery{
		Limit:    q.Limit,
		Offset:   q.Offset,
		Active:   q.Active,
		Closed:   q.Closed,
		Archived: q.Archived,
		TagID:    q.TagID,
	}, nil
}
