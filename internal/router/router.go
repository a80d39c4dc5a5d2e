package router

import (
	"net/http"
	"time"

	"menuboard/internal/auth"
	"menuboard/internal/menu"
	"menuboard/internal/middleware"
	"menuboard/internal/venue"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Deps struct {
	Auth   *auth.Service
	Tokens *auth.TokenIssuer
	Venues *venue.Service
	Menus  *menu.Service

	// Gatherer backs /metrics. Nil means the default registry.
	Gatherer prometheus.Gatherer
	Log      zerolog.Logger

	AllowedOrigins []string
	PublicRPS      float64
	PublicBurst    int
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Log))

	// cors.New panics on an empty origin list; no origins means no
	// cross-origin access at all.
	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// ───────────────────────── HEALTH / METRICS ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// ───────────────────────── AUTH ─────────────────────────
	authHandler := auth.NewHandler(d.Auth)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── PUBLIC ─────────────────────────
	publicMenus := menu.NewPublicHandler(d.Menus)
	public := r.Group("/public")
	public.Use(middleware.RateLimit(d.PublicRPS, d.PublicBurst))
	{
		public.GET("/venues/:slug/menus", publicMenus.Menus)
		public.GET("/venues/:slug/menus/current", publicMenus.Current)
	}

	// ───────────────────────── VENUES ─────────────────────────
	venueHandler := venue.NewHandler(d.Venues)
	menuHandler := menu.NewHandler(d.Menus)

	venues := r.Group("/venues")
	venues.Use(
		middleware.AuthMiddleware(d.Tokens),
		middleware.RequireRole(auth.RoleOwner, auth.RoleStaff, auth.RoleAdmin),
	)
	{
		venues.POST("", middleware.RequireRole(auth.RoleOwner, auth.RoleAdmin), venueHandler.CreateVenue)
		venues.GET("/me", venueHandler.ListMyVenues)
		venues.POST("/:venue_id/members", venueHandler.AddMember)
		venues.POST("/:venue_id/menus", menuHandler.CreateMenu)
	}

	// ───────────────────────── MENUS ─────────────────────────
	menus := r.Group("/menus")
	menus.Use(middleware.AuthMiddleware(d.Tokens))
	{
		menus.PATCH("/:id", menuHandler.UpdateMenu)
		menus.GET("/:id/visibility", menuHandler.Visibility)
		menus.GET("/:id/schedules", menuHandler.ListSchedules)
		menus.POST("/:id/schedules", menuHandler.AddSchedule)
		menus.PUT("/:id/schedules/:schedule_id", menuHandler.UpdateSchedule)
		menus.DELETE("/:id/schedules/:schedule_id", menuHandler.RemoveSchedule)
	}

	return r
}
