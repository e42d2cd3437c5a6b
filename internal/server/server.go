package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/habrasia/yogyn/internal/auth"
	"github.com/habrasia/yogyn/internal/booking"
	"github.com/habrasia/yogyn/internal/config"
	"github.com/habrasia/yogyn/internal/event"
	"github.com/habrasia/yogyn/internal/session"
	"github.com/habrasia/yogyn/internal/studio"
	"github.com/habrasia/yogyn/internal/studiouser"
)

type Server struct {
	router    *gin.Engine
	httpSrv   *http.Server
	db        *sqlx.DB
	config    *config.Config
	publisher event.Publisher
}

func New(db *sqlx.DB, cfg *config.Config, publisher event.Publisher) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RequestLoggingMiddleware())

	studioRepo := studio.NewRepository(db)
	sessionRepo := session.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	studioHandler := studio.NewHandler(studio.NewService(studioRepo))
	sessionHandler := session.NewHandler(session.NewService(sessionRepo, studioRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, sessionRepo, publisher, cfg.PublicBaseURL))
	userHandler := studiouser.NewHandler(db, cfg.JWTSecret)

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", userHandler.Register)
		authRoutes.POST("/login", userHandler.Login)
	}

	public := router.Group("/api")
	{
		public.GET("/studios", studioHandler.ListStudios)
		public.GET("/studios/:id", studioHandler.GetStudio)
		public.GET("/sessions", sessionHandler.ListSessions)
		public.GET("/sessions/:id", sessionHandler.GetSession)
		public.POST("/bookings", RateLimitMiddleware(5, 10), bookingHandler.CreateBooking)
		public.GET("/bookings/cancel/:token", bookingHandler.CancelByToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/api")
	protected.Use(authMiddleware)
	{
		protected.POST("/studios", studioHandler.CreateStudio)
		protected.PUT("/studios/:id", studioHandler.UpdateStudio)
		protected.DELETE("/studios/:id", studioHandler.SuspendStudio)

		protected.POST("/sessions", sessionHandler.CreateSession)
		protected.PUT("/sessions/:id", sessionHandler.UpdateSession)
		protected.DELETE("/sessions/:id", sessionHandler.CancelSession)

		protected.GET("/bookings", bookingHandler.ListBookings)
		protected.GET("/bookings/:id", bookingHandler.GetBooking)
		protected.POST("/bookings/:id/approve", bookingHandler.ApproveBooking)
		protected.POST("/bookings/:id/reject", bookingHandler.RejectBooking)
		protected.DELETE("/bookings/:id", bookingHandler.CancelBooking)
		protected.PATCH("/bookings/:id/attendance", bookingHandler.UpdateAttendance)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router:    router,
		db:        db,
		config:    cfg,
		publisher: publisher,
	}
}

func (s *Server) Start(port string) error {
	s.httpSrv = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Router exposes the underlying engine for httptest-driven tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
