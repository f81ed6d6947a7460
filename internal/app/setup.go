// Package app contains the application setup for the marketplace service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	cartservice "github.com/nstepura/matmarket/internal/cart/service"
	cartstore "github.com/nstepura/matmarket/internal/cart/store"
	cartrest "github.com/nstepura/matmarket/internal/cart/transport/rest"
	"github.com/nstepura/matmarket/internal/catalog/seed"
	"github.com/nstepura/matmarket/internal/catalog/service"
	"github.com/nstepura/matmarket/internal/catalog/store"
	"github.com/nstepura/matmarket/internal/catalog/transport/rest"
	"github.com/nstepura/matmarket/internal/config"
	"github.com/nstepura/matmarket/pkg/server"
)

type Dependencies struct {
	CatalogService service.CatalogService
	CartService    cartservice.CartService
	Logger         *slog.Logger
}

// SetupDependencies wires the stores and services. A nil pool selects the
// in-memory product store preloaded with the demo catalog.
func SetupDependencies(dbPool *pgxpool.Pool, logger *slog.Logger) *Dependencies {
	var products store.ProductStore
	if dbPool != nil {
		products = store.NewPgStore(dbPool)
	} else {
		products = store.NewMemoryStore(seed.Products(), seed.Vendors())
	}

	return &Dependencies{
		CatalogService: service.NewService(products),
		CartService:    cartservice.NewService(cartstore.NewMemoryStore(), products),
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the marketplace application.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the marketplace application.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	catalogHandler := rest.NewHandler(deps.CatalogService, deps.Logger)
	catalogHandler.RegisterRoutes(mux)
	cartHandler := cartrest.NewHandler(deps.CartService, deps.Logger)
	cartHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the marketplace application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
