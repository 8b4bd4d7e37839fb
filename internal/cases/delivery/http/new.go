package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/cases"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/middleware"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/discord"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/log"
)

type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
}

type handler struct {
	l       log.Logger
	uc      cases.UseCase
	discord discord.IDiscord
}

func New(l log.Logger, uc cases.UseCase, discord discord.IDiscord) Handler {
	return &handler{
		l:       l,
		uc:      uc,
		discord: discord,
	}
}
