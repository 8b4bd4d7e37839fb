package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/middleware"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1")
	{
		// The trust seal is public: no case data, just chain integrity.
		api.GET("/trust-seal", h.TrustSeal)

		audit := api.Group("/audit")
		audit.Use(mw.Auth())
		{
			audit.GET("/entries", h.ListEntries)
			audit.GET("/verify", h.VerifyChain)
		}
	}

	internal := r.Group("/internal/audit")
	internal.Use(mw.ServiceAuth())
	{
		internal.POST("/reconcile", h.Reconcile)
	}
}
