package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"oficina-import/internal/config"
	invHnd "oficina-import/internal/invoice/handler"
	"oficina-import/internal/invoice/service"
	"oficina-import/internal/middleware"
	"oficina-import/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, imp *service.Importer) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) << 20))

	r.Get("/health", handlers.Health)

	r.Post("/classify", invHnd.Classify(imp))
	r.Route("/invoice", func(r chi.Router) {
		r.Post("/review", invHnd.Review(imp))
		r.Post("/review/upload", invHnd.ReviewUpload(imp, cfg.MaxUploadMB))
		r.Post("/commit", invHnd.Commit(imp))
	})

	return r
}
