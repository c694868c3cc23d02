package app

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Binaergewitter/datefinder/internal/broadcast"
	"github.com/Binaergewitter/datefinder/internal/calendar"
	"github.com/Binaergewitter/datefinder/internal/config"
	"github.com/Binaergewitter/datefinder/internal/hooks"
	"github.com/Binaergewitter/datefinder/internal/ical"
	"github.com/Binaergewitter/datefinder/internal/jwt"
	"github.com/Binaergewitter/datefinder/internal/routes"
	"github.com/Binaergewitter/datefinder/internal/storage"
)

func securityHeaders(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")

	// Availability data changes in real time; never serve it stale
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Next()
}

// App wires the calendar core together: storage, hub, hooks, auth and the
// HTTP surface. Everything is assembled once from the config; no component
// reads ambient settings.
type App struct {
	cfg      *config.Config
	provider storage.Provider
	hub      *broadcast.Hub
	svc      *calendar.Service
	auth     *jwt.Authenticator
	renderer *ical.Renderer
	export   *hooks.ICalExportHook
}

func New(cfg *config.Config, provider storage.Provider) *App {
	loc := cfg.Location()
	renderer := ical.NewRenderer(cfg.CalendarName, loc)
	export := hooks.NewICalExportHook(provider, renderer, cfg.ICalExportPath)

	registry := hooks.NewRegistry(hooks.NewLoggingHook())
	if recipients := splitList(cfg.NotifyEmails); len(recipients) > 0 {
		registry.Register(hooks.NewEmailHook(cfg.Email, recipients))
	}
	registry.Register(export)

	hub := broadcast.NewHub()

	svc := calendar.NewService(provider, hub, registry, calendar.Options{
		DisplayQuorum: cfg.DisplayQuorum,
		ConfirmQuorum: cfg.ConfirmQuorum,
		WindowDays:    cfg.WindowDays,
		Location:      loc,
	})

	authTTL := time.Duration(cfg.UserAuthTTL) * 24 * time.Hour
	auth := jwt.NewAuthenticator(cfg.Secret, authTTL)

	return &App{
		cfg:      cfg,
		provider: provider,
		hub:      hub,
		svc:      svc,
		auth:     auth,
		renderer: renderer,
		export:   export,
	}
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// HTTPServer assembles the gin engine and all route groups.
func (a *App) HTTPServer() *gin.Engine {
	r := gin.Default()

	r.Use(securityHeaders)
	r.Use(routes.ErrorHandler())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Authentication routes
	authHandler := routes.NewAuthHandler(a.auth, a.provider)
	authHandler.Routes(r.Group("/auth"))

	// Calendar API; everything behind the auth cookie
	calendarHandler := routes.NewCalendarHandler(a.svc)
	api := r.Group("/calendar/api", routes.AuthMiddleware(a.auth))
	calendarHandler.Routes(api)

	// Realtime updates share the auth requirement
	wsHandler := routes.NewWSHandler(a.hub)
	r.GET("/calendar/ws", routes.AuthMiddleware(a.auth), wsHandler.Serve)

	// Public calendar feed
	feedHandler := routes.NewFeedHandler(a.provider, a.renderer)
	r.GET("/calendar.ics", feedHandler.Serve)

	return r
}

// ServerMain regenerates the feed file and serves HTTP until the process
// exits.
func (a *App) ServerMain(ctx context.Context) error {
	// The feed file may be missing or stale after a restart
	if err := a.export.Export(ctx); err != nil {
		slog.Error("Initial calendar export failed", "error", err)
	}

	slog.Info("Starting datefinder server", "addr", a.cfg.ListenAddr)
	return a.HTTPServer().Run(a.cfg.ListenAddr)
}
