package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/middleware"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1")
	api.Use(mw.Auth())
	{
		api.GET("/cases", h.ListCases)
		api.GET("/cases/:case_id", h.GetCase)
		api.POST("/cases/:case_id/ack", h.Acknowledge)
		api.POST("/cases/:case_id/actions", h.RecordAction)
		api.POST("/cases/:case_id/close", h.Close)
		api.POST("/cases/:case_id/unfounded", h.MarkUnfounded)
	}
}
