package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Setup builds the gin engine with all routes and middleware registered.
func Setup(posHandler *handler.POSHandler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/sales", posHandler.CompleteSale)
		v1.POST("/sales/:id/void", posHandler.VoidSale)
		v1.POST("/refunds", posHandler.IssueRefund)
		v1.POST("/credit-memos/:id/void", posHandler.VoidCreditMemo)
		v1.POST("/retail-lots/:id/display", posHandler.MarkAsDisplayed)
		v1.POST("/display-entries/:id/release", posHandler.MarkAsReleased)
	}

	return r
}
