// Package main Search Refinery API
// @title Search Refinery API
// @version 1.0
// @description A query pipeline service: token resolution, synonym expansion, refinement compilation and result enrichment
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.email support@searchrefinery.dev
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	_ "github.com/mpavkov/search-refinery/docs"
	"github.com/mpavkov/search-refinery/internal/backend/factory"
	"github.com/mpavkov/search-refinery/internal/datefmt"
	"github.com/mpavkov/search-refinery/internal/enrich"
	"github.com/mpavkov/search-refinery/internal/router"
	"github.com/mpavkov/search-refinery/internal/search"
	"github.com/mpavkov/search-refinery/internal/server"
	"github.com/mpavkov/search-refinery/internal/settings"
	"github.com/mpavkov/search-refinery/internal/token"
	pkgserver "github.com/mpavkov/search-refinery/pkg/server"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	healthChecker := pkgserver.NewOkHealthChecker()

	s := server.New(sCfg, healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Search Refinery API is running")
	})

	appCfg := NewAppConfig()
	cfg, err := appCfg.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
		return
	}

	stg, err := settings.LoadFromFile(cfg.SettingsPath)
	if err != nil {
		slog.Error("Failed to load pipeline settings", "path", cfg.SettingsPath, "error", err)
		os.Exit(1)
		return
	}

	searcher, err := factory.NewSearcher(s.Context(), cfg.BackendConfig)
	if err != nil {
		slog.Error("Failed to create search backend", "error", err)
		os.Exit(1)
		return
	}

	enricher := enrich.NewEnricher(factory.NewIconResolver(searcher), searcher)

	svc := search.NewService(searcher, datefmt.New(),
		search.WithEnricher(enricher),
		search.WithTokenResolver(token.NewResolver()),
	)

	searchRouter := router.NewSearchRouter(s.Echo, svc, stg.SearchConfig(), stg.Verticals)
	searchRouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	if err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
