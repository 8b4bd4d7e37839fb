package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/middleware"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	internal := r.Group("/internal/rate-limits")
	internal.Use(mw.ServiceAuth())
	{
		internal.POST("/:user_id/clear", h.ClearSoftBlock)
	}
}
