package router

import (
	"github.com/gin-contrib/cors"

	app "github.com/mumanal/actualizacion-datos/internal/application"
	"github.com/mumanal/actualizacion-datos/internal/container"
	repo "github.com/mumanal/actualizacion-datos/internal/domain/repository"
	"github.com/mumanal/actualizacion-datos/internal/infrastructure/flash"
	"github.com/mumanal/actualizacion-datos/internal/infrastructure/search"
	"github.com/mumanal/actualizacion-datos/internal/infrastructure/sheets"
	handlers "github.com/mumanal/actualizacion-datos/internal/interface/http"
	"github.com/mumanal/actualizacion-datos/internal/router/modules"
)

type RegistrationModuleDeps struct {
	Repo    repo.RegistrationRepository
	Banners repo.BannerStore
	Service *app.Service
	API     *handlers.RegistrationHandler
	Pages   *handlers.PageHandler
}

func buildRegistrationDeps() RegistrationModuleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	sheetsRepo := sheets.NewClient(cfg.SheetsScriptURL, cfg.SheetsTimeout, cfg.SheetsLenient, logger)

	// keep the interfaces nil, not typed-nil, when a backend is off
	var receipts app.JobPublisher
	if r := container.GetRabbit(); r != nil {
		receipts = r
	}
	var index app.Indexer
	if es := container.GetES(); es != nil {
		index = search.NewRegistrations(es, cfg.ESRegistrationsIndex)
	}
	var banners repo.BannerStore = flash.NewMemoryStore(cfg.BannerTTL)
	if rdb := container.GetRedis(); rdb != nil {
		banners = flash.NewRedisStore(rdb, cfg.BannerTTL)
	}

	service := app.NewService(sheetsRepo, receipts, index, cfg, logger)

	return RegistrationModuleDeps{
		Repo:    sheetsRepo,
		Banners: banners,
		Service: service,
		API:     handlers.NewRegistrationHandler(service, logger),
		Pages:   handlers.NewPageHandler(service, banners, logger, cfg.BannerTTL, index != nil),
	}
}

// InitModules builds every module from the container and adds it to the registry.
// Call it once during startup, after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(corsConfig(origins)))
	}

	deps := buildRegistrationDeps()
	r.AddAPI(modules.NewRegistrationModule(deps.API, cfg.SubmitRateLimit))
	r.AddAPI(modules.NewDebugModule())
	r.AddPage(modules.NewPageModule(deps.Pages, cfg.SubmitRateLimit))
}
