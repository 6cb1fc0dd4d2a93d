package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mumanal/actualizacion-datos/internal/container"
	handlers "github.com/mumanal/actualizacion-datos/internal/interface/http"
	"github.com/mumanal/actualizacion-datos/internal/interface/middleware"
)

// PageModule wires the server-rendered form and users table.
type PageModule struct {
	Handler *handlers.PageHandler
	Limit   int
}

func NewPageModule(h *handlers.PageHandler, limit int) *PageModule {
	return &PageModule{Handler: h, Limit: limit}
}

func (m *PageModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	submitLimiter := middleware.RateLimit(rdb, m.Limit, time.Minute, middleware.KeyByIPAndPath(), m.Handler.DenyWithBanner("/"))
	deleteLimiter := middleware.RateLimit(rdb, m.Limit, time.Minute, middleware.KeyByIP(), m.Handler.DenyWithBanner("/usuarios"))

	rg.GET("/", m.Handler.Form)
	rg.POST("/registro", submitLimiter, m.Handler.Submit)
	rg.GET("/usuarios", m.Handler.Users)
	rg.POST("/usuarios/:id/eliminar", deleteLimiter, m.Handler.Delete)
}
