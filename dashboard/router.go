package dashboard

import (
	"cmp"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"qythex.dev/core/dashboard/config"
	"qythex.dev/core/notifier"
	"qythex.dev/core/registry"
	"qythex.dev/core/telemetry"
)

type Dashboard struct {
	c *config.Config
	r *registry.Registry
	n *notifier.Notifier
	t *telemetry.Telemetry
	l *slog.Logger
}

func New(c *config.Config, r *registry.Registry, n *notifier.Notifier, t *telemetry.Telemetry, l *slog.Logger) *Dashboard {
	return &Dashboard{
		c: c,
		r: r,
		n: n,
		t: t,
		l: l,
	}
}

func (d *Dashboard) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(d.RequestLogger)
	r.Use(d.t.RequestInFlight())
	r.Use(d.t.RequestDuration())
	r.Use(d.Recover)
	r.Use(d.CORS)
	r.Use(middleware.StripSlashes)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("This is a qythex dashboard server."))
	})
	r.Get("/version", d.Version)

	// websocket stream of registry events
	r.Get("/events", d.Events)

	// spans only for the api; the websocket stream stays unwrapped
	api := chi.NewRouter()
	d.apiRoutes(api)
	r.Mount(cmp.Or(d.c.Server.MountPrefix, "/"), d.t.Handler(api, "api"))

	return r
}

func (d *Dashboard) apiRoutes(r chi.Router) {
	r.Get("/repos", d.ListRepositories)

	r.Route("/workflows", func(r chi.Router) {
		r.Get("/", d.ListWorkflows)
		r.Post("/", d.CreateWorkflow)
		r.Post("/{id}/run", d.RunWorkflow)
	})

	r.Get("/stats", d.Stats)
	r.Get("/compliance", d.Compliance)

	r.Post("/auth/github", d.ConnectGitHub)
}

func (d *Dashboard) logger(handler string) *slog.Logger {
	return d.l.With("handler", handler)
}
