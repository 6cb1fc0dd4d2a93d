package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/mumanal/actualizacion-datos/internal/application"
	"github.com/mumanal/actualizacion-datos/internal/domain/entity"
	"github.com/mumanal/actualizacion-datos/pkg/response"
	"github.com/mumanal/actualizacion-datos/pkg/validation"
)

// RegistrationHandler exposes the registration operations as a JSON API.
type RegistrationHandler struct {
	Svc    *app.Service
	Logger *logrus.Logger
}

func NewRegistrationHandler(svc *app.Service, logger *logrus.Logger) *RegistrationHandler {
	return &RegistrationHandler{Svc: svc, Logger: logger}
}

// Create accepts a JSON or form-encoded registration.
func (h *RegistrationHandler) Create(c *gin.Context) {
	var req entity.Registration
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	reg, err := h.Svc.Submit(c.Request.Context(), req)
	switch {
	case errors.Is(err, app.ErrInvalidRegistration):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
	case err != nil:
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("registration submit failed")
		}
		response.Error[any](c, http.StatusBadGateway, MsgRegisterFailed, nil)
	default:
		response.Success(c, http.StatusCreated, reg, MsgRegistered, nil)
	}
}

func (h *RegistrationHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.Error[any](c, http.StatusBadGateway, MsgListFailed, nil)
		return
	}
	response.Success(c, http.StatusOK, users, "registered users", map[string]any{"count": len(users)})
}

func (h *RegistrationHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), id, c.Query("ci")); err != nil {
		if errors.Is(err, app.ErrMissingID) {
			response.Error[any](c, http.StatusBadRequest, "missing id", nil)
			return
		}
		response.Error[any](c, http.StatusBadGateway, MsgDeleteFailed, nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true, "id": id}, MsgDeleted, nil)
}

func (h *RegistrationHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	size, _ := strconv.Atoi(c.Query("size"))
	results, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("registration search failed")
		}
		response.Error[any](c, http.StatusBadGateway, MsgSearchFailed, nil)
		return
	}
	response.Success(c, http.StatusOK, results, "search results", map[string]any{"query": q, "count": len(results)})
}

func (h *RegistrationHandler) Health(c *gin.Context) {
	response.Success[any](c, http.StatusOK, map[string]any{"status": "ok"}, "healthy", nil)
}
