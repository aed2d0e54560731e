package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/portfolio-api/internal/application/content"
	"github.com/portfolio-api/internal/application/resume"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/pkg/token"
	"github.com/portfolio-api/internal/transport/http/handler"
	appmiddleware "github.com/portfolio-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Ops-Key"},
		ExposedHeaders:   []string{"X-Resume-Token", "X-Download-Count", "X-Max-Downloads"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	codec := token.NewCodec(cfg.ResumeSigningSecret)
	resumeSvc := resume.NewService(
		deps.RequestRepo,
		deps.Mailer,
		deps.AssetStore,
		deps.LeadNotifier,
		codec,
		cfg.ResumeAssetKey,
		cfg.ResumeMaxDownloads,
		cfg.ResumeTokenTTL,
		cfg.PublicBaseURL,
	)
	contentSvc := content.NewService(deps.CMSClient)

	healthH := handler.NewHealthHandler()
	resumeH := handler.NewResumeHandler(resumeSvc)
	contentH := handler.NewContentHandler(contentSvc)
	opsH := handler.NewOpsHandler(deps.Mailer, deps.AssetStore, cfg.ResumeAssetKey)

	r.Get("/health-check/{action}", healthH.Ping)
	r.Post("/health-check/{action}", healthH.Ping)

	// Gated resume delivery. Request is rate-limited; download relies on the
	// quota store for abuse control.
	r.Route("/resume", func(r chi.Router) {
		r.With(sensitiveRL.Limit).Post("/request", resumeH.Request)
		r.Get("/download", resumeH.Download)
	})

	// Published site content.
	r.Route("/v1/content", func(r chi.Router) {
		r.Get("/posts", contentH.ListPosts)
		r.Get("/posts/{slug}", contentH.GetPost)
		r.Get("/case-studies", contentH.ListCaseStudies)
		r.Get("/case-studies/{slug}", contentH.GetCaseStudy)
		r.Get("/products", contentH.ListProducts)
		r.Get("/pages/{slug}", contentH.GetPage)
	})

	// Operational checks, key-protected.
	r.Route("/ops", func(r chi.Router) {
		r.Use(appmiddleware.OpsKey(cfg.OpsKey))
		r.Post("/email-test", opsH.EmailTest)
		r.Get("/asset-check", opsH.AssetCheck)
	})

	return r
}
