package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/mumanal/actualizacion-datos/internal/application"
	"github.com/mumanal/actualizacion-datos/internal/domain/entity"
	repo "github.com/mumanal/actualizacion-datos/internal/domain/repository"
	"github.com/mumanal/actualizacion-datos/internal/interface/middleware"
	"github.com/mumanal/actualizacion-datos/pkg/validation"
)

// PageHandler renders the registration form and the users table.
type PageHandler struct {
	Svc           *app.Service
	Banners       repo.BannerStore
	Logger        *logrus.Logger
	BannerTTL     time.Duration
	SearchEnabled bool
}

func NewPageHandler(svc *app.Service, banners repo.BannerStore, logger *logrus.Logger, bannerTTL time.Duration, searchEnabled bool) *PageHandler {
	return &PageHandler{Svc: svc, Banners: banners, Logger: logger, BannerTTL: bannerTTL, SearchEnabled: searchEnabled}
}

type fieldView struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
}

type formPage struct {
	Title           string
	TopFields       []fieldView
	Fields          []fieldView
	Banner          *entity.Banner
	BannerTTLMillis int64
}

type usersPage struct {
	Title           string
	Users           []entity.RegisteredUser
	Results         []entity.Registration
	Query           string
	SearchEnabled   bool
	Banner          *entity.Banner
	BannerTTLMillis int64
}

var formFields = []fieldView{
	{Name: "firstName", Label: "Nombre", Type: "text"},
	{Name: "paternalLastName", Label: "Apellido Paterno", Type: "text"},
	{Name: "maternalLastName", Label: "Apellido Materno", Type: "text"},
	{Name: "email", Label: "Correo Electrónico", Type: "email"},
	{Name: "ci", Label: "CI (Cédula de Identidad)", Type: "text"},
}

// topFieldCount fields share the first row of the form.
const topFieldCount = 2

func (h *PageHandler) formPage(values entity.Registration, errs map[string]string, banner *entity.Banner) formPage {
	byName := make(map[string]string, len(formFields))
	for _, kv := range values.Fields() {
		byName[kv[0]] = kv[1]
	}
	views := make([]fieldView, len(formFields))
	for i, f := range formFields {
		f.Value = byName[f.Name]
		f.Error = errs[f.Name]
		views[i] = f
	}
	return formPage{
		Title:           PageTitle,
		TopFields:       views[:topFieldCount],
		Fields:          views[topFieldCount:],
		Banner:          banner,
		BannerTTLMillis: h.BannerTTL.Milliseconds(),
	}
}

// Form renders an empty form plus any pending banner.
func (h *PageHandler) Form(c *gin.Context) {
	c.HTML(http.StatusOK, "form.html", h.formPage(entity.Registration{}, nil, h.popBanner(c)))
}

// Submit validates the posted form; on success or upstream failure it sets the
// result banner and redirects back to an empty form.
func (h *PageHandler) Submit(c *gin.Context) {
	var in entity.Registration
	if err := c.ShouldBind(&in); err != nil {
		h.renderInvalid(c, in, err)
		return
	}

	if _, err := h.Svc.Submit(c.Request.Context(), in); err != nil {
		if errors.Is(err, app.ErrInvalidRegistration) {
			h.renderInvalid(c, in, err)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("registration submit failed")
		}
		h.setBanner(c, entity.ErrorBanner(MsgRegisterFailed))
	} else {
		h.setBanner(c, entity.SuccessBanner(MsgRegistered))
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) renderInvalid(c *gin.Context, in entity.Registration, err error) {
	details := validation.ToDetails(err)
	var banner *entity.Banner
	if _, ok := details["payload"]; ok {
		b := entity.ErrorBanner(MsgInvalidForm)
		banner = &b
	}
	c.HTML(http.StatusUnprocessableEntity, "form.html", h.formPage(in, details, banner))
}

// Users renders the registered users table, or search results when q is set.
func (h *PageHandler) Users(c *gin.Context) {
	page := usersPage{
		Title:           PageTitle,
		SearchEnabled:   h.SearchEnabled,
		Banner:          h.popBanner(c),
		BannerTTLMillis: h.BannerTTL.Milliseconds(),
	}
	ctx := c.Request.Context()

	if q := strings.TrimSpace(c.Query("q")); q != "" && h.SearchEnabled {
		page.Query = q
		results, err := h.Svc.Search(ctx, q, 0)
		if err != nil {
			if h.Logger != nil {
				h.Logger.WithError(err).Warn("registration search failed")
			}
			b := entity.ErrorBanner(MsgSearchFailed)
			page.Banner = &b
		}
		page.Results = results
		c.HTML(http.StatusOK, "users.html", page)
		return
	}

	users, err := h.Svc.List(ctx)
	if err != nil {
		b := entity.ErrorBanner(MsgListFailed)
		page.Banner = &b
	}
	page.Users = users
	c.HTML(http.StatusOK, "users.html", page)
}

// Delete removes one row and returns to the table.
func (h *PageHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), c.PostForm("ci")); err != nil {
		h.setBanner(c, entity.ErrorBanner(MsgDeleteFailed))
	} else {
		h.setBanner(c, entity.SuccessBanner(MsgDeleted))
	}
	c.Redirect(http.StatusSeeOther, "/usuarios")
}

// DenyWithBanner answers rate-limited form posts with a banner and a redirect to target.
func (h *PageHandler) DenyWithBanner(target string) middleware.DenyFunc {
	return func(c *gin.Context, _ int) {
		h.setBanner(c, entity.ErrorBanner(MsgTooMany))
		c.Redirect(http.StatusSeeOther, target)
	}
}

func (h *PageHandler) setBanner(c *gin.Context, b entity.Banner) {
	sid := c.GetString(middleware.CtxSessionKey)
	if sid == "" || h.Banners == nil {
		return
	}
	if err := h.Banners.Set(c.Request.Context(), sid, b); err != nil && h.Logger != nil {
		h.Logger.WithError(err).Warn("banner store set failed")
	}
}

func (h *PageHandler) popBanner(c *gin.Context) *entity.Banner {
	sid := c.GetString(middleware.CtxSessionKey)
	if sid == "" || h.Banners == nil {
		return nil
	}
	b, ok, err := h.Banners.Pop(c.Request.Context(), sid)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("banner store pop failed")
		}
		return nil
	}
	if !ok {
		return nil
	}
	return &b
}
