package upstream

import (
	"context"
	"strconv"

	"github.com/GoPolymarket/polyproxy/internal/model"
	"github.com/GoPolymarket/polyproxy/internal/pkg/apperrors"
	"github.com/go-resty/resty/v2"
)

const upstreamGamma = "market-data"

// GammaClient wraps the public market-data API: markets, events and tags.
type GammaClient struct {
	http *resty.Client
}

func NewGammaClient(baseURL string) *GammaClient {
	return &GammaClient{http: newClient(baseURL, marketTimeout)}
}

func (c *GammaClient) ListTags(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&tags).
		Get("/tags")
	if appErr := translate(upstreamGamma, resp, err); appErr != nil {
		return nil, appErr
	}
	return tags, nil
}

func (c *GammaClient) ListEvents(ctx context.Context, q model.EventQuery) ([]model.Event, error) {
	var events []model.Event
	req := c.http.R().SetContext(ctx).SetResult(&events)
	applyEventQuery(req, q)
	resp, err := req.Get("/events")
	if appErr := translate(upstreamGamma, resp, err); appErr != nil {
		return nil, appErr
	}
	return events, nil
}

func (c *GammaClient) ListEventsByTag(ctx context.Context, tagID string, q model.EventQuery) ([]model.Event, error) {
	q.TagID = tagID
	return c.ListEvents(ctx, q)
}

// GetEventBySlug fetches a single event. The upstream only exposes slug
// lookup as a list filter, so an empty result maps to NOT_FOUND here.
func (c *GammaClient) GetEventBySlug(ctx context.Context, slug string) (*model.Event, error) {
	var events []model.Event
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("slug", slug).
		SetResult(&events).
		Get("/events")
	if appErr := translate(upstreamGamma, resp, err); appErr != nil {
		return nil, appErr
	}
	if len(events) == 0 {
		return nil, apperrors.NewNotFound("event not found: " + slug)
	}
	return &events[0], nil
}

func (c *GammaClient) ListMarkets(ctx context.Context, q model.MarketQuery) ([]model.Market, error) {
	var markets []model.Market
	req := c.http.R().SetContext(ctx).SetResult(&markets)
	applyMarketQuery(req, q)
	resp, err := req.Get("/markets")
	if appErr := translate(upstreamGamma, resp, err); appErr != nil {
		return nil, appErr
	}
	return markets, nil
}

func (c *GammaClient) GetMarketByID(ctx context.Context, id string) (*model.Market, error) {
	var market model.Market
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&market).
		Get("/markets/" + id)
	if appErr := translate(upstreamGamma, resp, err); appErr != nil {
		return nil, appErr
	}
	return &market, nil
}

func (c *GammaClient) GetMarketBySlug(ctx context.Context, slug string) (*model.Market, error) {
	var markets []model.Market
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("slug", slug).
		SetResult(&markets).
		Get("/markets")
	if appErr := translate(upstreamGamma, resp, err); appErr != nil {
		return nil, appErr
	}
	if len(markets) == 0 {
		return nil, apperrors.NewNotFound("market not found: " + slug)
	}
	return &markets[0], nil
}

func (c *GammaClient) SearchMarkets(ctx context.Context, query string, q model.MarketQuery) (*model.SearchResult, error) {
	var result model.SearchResult
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetResult(&result)
	if q.Limit != nil {
		req.SetQueryParam("limit_per_type", strconv.Itoa(*q.Limit))
	}
	resp, err := req.Get("/public-search")
	if appErr := translate(upstreamGamma, resp, err); appErr != nil {
		return nil, appErr
	}
	return &result, nil
}

func (c *GammaClient) FeaturedMarkets(ctx context.Context, q model.MarketQuery) ([]model.Market, error) {
	var markets []model.Market
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("featured", "true").
		SetResult(&markets)
	applyMarketQuery(req, q)
	resp, err := req.Get("/markets")
	if appErr := translate(upstreamGamma, resp, err); appErr != nil {
		return nil, appErr
	}
	return markets, nil
}

// TrendingMarkets lists active markets ordered by 24h volume.
func (c *GammaClient) TrendingMarkets(ctx context.Context, q model.MarketQuery) ([]model.Market, error) {
	var markets []model.Market
	req := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"active":    "true",
			"closed":    "false",
			"order":     "volume24hr",
			"ascending": "false",
		}).
		SetResult(&markets)
	if q.Limit != nil {
		req.SetQueryParam("limit", strconv.Itoa(*q.Limit))
	}
	if q.Offset != nil {
		req.SetQueryParam("offset", strconv.Itoa(*q.Offset))
	}
	resp, err := req.Get("/markets")
	if appErr := translate(upstreamGamma, resp, err); appErr != nil {
		return nil, appErr
	}
	return markets, nil
}

// Query params are only set when the caller supplied them, explicit zero
// values included, so upstream defaults stay in charge otherwise.
func applyMarketQuery(req *resty.Request, q model.MarketQuery) {
	setInt(req, "limit", q.Limit)
	setInt(req, "offset", q.Offset)
	setBool(req, "active", q.Active)
	setBool(req, "closed", q.Closed)
	setBool(req, "archived", q.Archived)
	if q.TagID != "" {
		req.SetQueryParam("tag_id", q.TagID)
	}
}

func applyEventQuery(req *resty.Request, q model.EventQuery) {
	setInt(req, "limit", q.Limit)
	setInt(req, "offset", q.Offset)
	setBool(req, "active", q.Active)
	setBool(req, "closed", q.Closed)
	setBool(req, "archived", q.Archived)
	if q.TagID != "" {
		req.SetQueryParam("tag_id", q.TagID)
	}
}

func setInt(req *resty.Request, name string, v *int) {
	if v != nil {
		req.SetQueryParam(name, strconv.Itoa(*v))
	}
}

func setBool(req *resty.Request, name string, v *bool) {
	if v != nil {
		req.SetQueryParam(name, strconv.FormatBool(*v))
	}
}
