package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mumanal/actualizacion-datos/internal/container"
	handlers "github.com/mumanal/actualizacion-datos/internal/interface/http"
	"github.com/mumanal/actualizacion-datos/internal/interface/middleware"
)

// RegistrationModule wires the JSON API:
// POST/GET /api/registrations, DELETE /api/registrations/:id,
// GET /api/registrations/search and GET /api/health.
type RegistrationModule struct {
	Handler *handlers.RegistrationHandler
	Limit   int
}

func NewRegistrationModule(h *handlers.RegistrationHandler, limit int) *RegistrationModule {
	return &RegistrationModule{Handler: h, Limit: limit}
}

func (m *RegistrationModule) Register(rg *gin.RouterGroup) {
	writeLimiter := middleware.RateLimit(container.GetRedis(), m.Limit, time.Minute, middleware.KeyByIPAndPath(), nil)
	readLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/health", m.Handler.Health)

	regs := rg.Group("/registrations")
	regs.POST("", writeLimiter, m.Handler.Create)
	regs.GET("", readLimiter, m.Handler.List)
	regs.GET("/search", readLimiter, m.Handler.Search)
	regs.DELETE("/:id", writeLimiter, m.Handler.Delete)
}
