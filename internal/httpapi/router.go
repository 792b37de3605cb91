package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lifedemo/internal/httpapi/handlers"
	"lifedemo/internal/httpkit"
	"lifedemo/internal/pkg/logger"
	"lifedemo/internal/pkg/middleware"
)

type Deps struct {
	Handlers       handlers.Deps
	AllowedOrigins []string
	Log            *logger.Logger
}

func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	if d.Handlers.Log == nil {
		d.Handlers.Log = log
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Metrics)

	// The client is a browser or mobile app on another origin.
	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(httpkit.CORS(httpkit.CORSOptions{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "HEAD", "POST", "OPTIONS"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAgeSeconds:  600,
	}))

	h := handlers.New(d.Handlers)

	// ---- HEALTH ----
	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	// ---- RENDER ----
	r.Post("/render", h.PostRender)

	// ---- DOWNLOADS ----
	r.Group(func(r chi.Router) {
		r.Use(httpkit.NoStore)
		r.Get("/download/*", h.Download)
		r.Head("/download/*", h.Download)
	})

	return r
}
