package httpserver

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"marketplace-companion/internal/domain"
)

// CartService is the cart surface the handlers consume.
type CartService interface {
	View(ctx context.Context) domain.CartView
	Add(ctx context.Context, productID int64, qty int) (*domain.CartLine, error)
	Increment(ctx context.Context, productID int64) (*domain.CartLine, error)
	Decrement(ctx context.Context, productID int64) error
	Remove(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error
	Reconcile(ctx context.Context) (domain.CartView, error)
	Checkout(ctx context.Context) (string, error)
}

// FundingService is the funding-gate surface the handlers consume.
type FundingService interface {
	Get(ctx context.Context, id int64) (*domain.FundingRequest, error)
	Approve(ctx context.Context, id int64) (*domain.FundingRequest, error)
	Reject(ctx context.Context, id int64) (*domain.FundingRequest, error)
	AdminApprove(ctx context.Context, id int64) (*domain.FundingRequest, error)
	MarkFunded(ctx context.Context, id int64) (*domain.FundingRequest, error)
	Messages(ctx context.Context, id int64) ([]domain.FundingMessage, error)
	PostMessage(ctx context.Context, id int64, author, body string) (*domain.FundingMessage, error)
}

// buildRouter wires routes for the local API the mobile UI talks to.
func buildRouter(logger zerolog.Logger, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps))

	v1 := router.Group("/v1")
	{
		v1.GET("/cart", getCartHandler(deps.CartSvc))
		v1.DELETE("/cart", clearCartHandler(deps.CartSvc))
		v1.POST("/cart/lines", addLineHandler(deps.CartSvc))
		v1.POST("/cart/lines/:productID/increment", incrementHandler(deps.CartSvc))
		v1.POST("/cart/lines/:productID/decrement", decrementHandler(deps.CartSvc))
		v1.DELETE("/cart/lines/:productID", removeLineHandler(deps.CartSvc))
		v1.POST("/cart/reconcile", reconcileHandler(deps.CartSvc))
		v1.POST("/checkout", checkoutHandler(deps.CartSvc))

		v1.GET("/funding-requests/:id", getFundingHandler(deps.FundingSvc))
		v1.POST("/funding-requests/:id/approve", fundingTransitionHandler(deps.FundingSvc, "approve"))
		v1.POST("/funding-requests/:id/reject", fundingTransitionHandler(deps.FundingSvc, "reject"))
		v1.POST("/funding-requests/:id/admin-approve", fundingTransitionHandler(deps.FundingSvc, "admin-approve"))
		v1.POST("/funding-requests/:id/fund", fundingTransitionHandler(deps.FundingSvc, "fund"))
		v1.GET("/funding-requests/:id/messages", listMessagesHandler(deps.FundingSvc))
		v1.POST("/funding-requests/:id/messages", postMessageHandler(deps.FundingSvc))
	}

	return router
}
