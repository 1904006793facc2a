package handler

import (
	"github.com/GoPolymarket/polyproxy/internal/config"
	"github.com/GoPolymarket/polyproxy/internal/middleware"
	"github.com/GoPolymarket/polyproxy/internal/service"
	"github.com/GoPolymarket/polyproxy/internal/upstream"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps bundles everything the router needs; main constructs it once at
// startup.
type Deps struct {
	Config   *config.Config
	Auth     *upstream.AuthProviderClient
	Gamma    *upstream.GammaClient
	Clob     *upstream.ClobClient
	Comments *upstream.CommentsClient
	Signing  *service.SigningService
	Audit    *service.AuditService
	Limiter  middleware.Limiter
}

// NewRouter assembles the middleware pipeline and route table. Order matters:
// CORS and logging run before the rate limiter so rejected requests still get
// headers and a log line, and audit wraps the terminal error middleware so
// captured entries carry the status and body actually sent. Auth gates sit
// per-group.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(d.Config.CORS.Origins()))
	r.Use(middleware.RequestLog())
	r.Use(middleware.Metrics())
	if d.Audit != nil {
		r.Use(middleware.Audit(d.Audit))
	}
	if d.Limiter != nil {
		r.Use(middleware.RateLimit(d.Limiter))
	}
	r.Use(middleware.ErrorHandler(d.Config.Server.Env))

	r.GET("/health", Health(d.Config.Server.Env))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(middleware.NotFoundHandler())

	authHandler := NewAuthHandler(d.Auth)
	marketHandler := NewMarketHandler(d.Gamma)
	tradingHandler := NewTradingHandler(d.Clob)
	commentHandler := NewCommentHandler(d.Comments)
	builderHandler := NewBuilderHandler(d.Signing)

	requireAuth := middleware.RequireAuth(d.Auth, d.Config.Auth.JWTSecret)
	optionalAuth := middleware.OptionalAuth(d.Auth, d.Config.Auth.JWTSecret)

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/signin", authHandler.SignIn)
		auth.POST("/verify", authHandler.Verify)
		auth.GET("/me", requireAuth, authHandler.Me)
		auth.POST("/signout", requireAuth, authHandler.SignOut)
	}

	markets := v1.Group("/markets", optionalAuth)
	{
		markets.GET("/tags", marketHandler.Tags)
		markets.GET("/events", marketHandler.Events)
		markets.GET("/events/tag/:tagId", marketHandler.EventsByTag)
		markets.GET("/events/:slug", marketHandler.EventBySlug)
		markets.GET("", marketHandler.Markets)
		markets.GET("/featured", marketHandler.Featured)
		markets.GET("/trending", marketHandler.Trending)
		markets.GET("/search", marketHandler.Search)
		markets.GET("/slug/:slug", marketHandler.MarketBySlug)
		markets.GET("/:id", marketHandler.MarketByID)
	}

	trading := v1.Group("/trading")
	{
		reads := trading.Group("", optionalAuth)
		{
			reads.GET("/orderbook/:tokenId", tradingHandler.Orderbook)
			reads.GET("/price/:tokenId", tradingHandler.Price)
			reads.GET("/midpoint/:tokenId", tradingHandler.Midpoint)
			reads.GET("/spread/:tokenId", tradingHandler.Spread)
			reads.GET("/trades", tradingHandler.Trades)
			reads.GET("/trades/:tokenId", tradingHandler.TradesForToken)
			reads.GET("/tick-size/:tokenId", tradingHandler.TickSize)
			reads.GET("/min-order-size/:tokenId", tradingHandler.MinOrderSize)
		}
		writes := trading.Group("", requireAuth)
		{
			writes.GET("/orders/:address", tradingHandler.UserOrders)
			writes.GET("/order/:orderId", tradingHandler.Order)
			writes.POST("/order", tradingHandler.CreateOrder)
			writes.DELETE("/order", tradingHandler.CancelOrder)
			writes.DELETE("/orders", tradingHandler.CancelAll)
		}
	}

	v1.GET("/comments", optionalAuth, commentHandler.List)

	polymarket := v1.Group("/polymarket", optionalAuth)
	{
		polymarket.POST("/sign", builderHandler.Sign)
		polymarket.GET("/builder-info", builderHandler.BuilderInfo)
	}

	return r
}
