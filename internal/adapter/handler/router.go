package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hospitalvoice/booking-agent/internal/infrastructure/http/middleware"
	"github.com/hospitalvoice/booking-agent/pkg/config"
	"github.com/hospitalvoice/booking-agent/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	jwtManager       *jwt.Manager
	authHandler      *Auth
	hospitalHandler  *Hospital
	bookingHandler   *Booking
	telephonyHandler *Telephony
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	jwtManager *jwt.Manager,
	authHandler *Auth,
	hospitalHandler *Hospital,
	bookingHandler *Booking,
	telephonyHandler *Telephony,
) *Router {
	return &Router{
		cfg:              cfg,
		jwtManager:       jwtManager,
		authHandler:      authHandler,
		hospitalHandler:  hospitalHandler,
		bookingHandler:   bookingHandler,
		telephonyHandler: telephonyHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Conversation relay lives outside the API group: the telephony
	// provider dials it directly
	e.GET("/ws", rt.telephonyHandler.Relay)

	// API v1 group
	v1 := e.Group("/v1")
	protected := middleware.EchoAuth(rt.jwtManager)

	rt.setupAuthRoutes(v1, protected)
	rt.setupHospitalRoutes(v1, protected)
	rt.setupBookingRoutes(v1, protected)
	rt.setupTelephonyRoutes(v1)
}

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group, protected echo.MiddlewareFunc) {
	authGroup := g.Group("/auth")

	authGroup.POST("/signup", rt.authHandler.Signup)
	authGroup.POST("/login", rt.authHandler.Login)
	authGroup.POST("/refresh", rt.authHandler.Refresh)
	authGroup.GET("/me", rt.authHandler.Me, protected)
}

// setupHospitalRoutes configures directory routes. Searches and the plain
// list are public so the voice agent frontends can use them unauthenticated.
func (rt *Router) setupHospitalRoutes(g *echo.Group, protected echo.MiddlewareFunc) {
	hospitalGroup := g.Group("/hospitals")

	hospitalGroup.GET("/search/nearby", rt.hospitalHandler.Nearby)
	hospitalGroup.GET("/search/location", rt.hospitalHandler.ByLocation)
	hospitalGroup.GET("/search/specialty", rt.hospitalHandler.BySpecialty)
	hospitalGroup.GET("", rt.hospitalHandler.List)
	// Creating a hospital is the same flow as registering its account
	hospitalGroup.POST("", rt.authHandler.Signup)
	hospitalGroup.GET("/:id", rt.hospitalHandler.Get)
	hospitalGroup.PUT("/:id", rt.hospitalHandler.Update, protected)
	hospitalGroup.DELETE("/:id", rt.hospitalHandler.Deactivate, protected)
}

// setupBookingRoutes configures reservation, call log and customer routes
func (rt *Router) setupBookingRoutes(g *echo.Group, protected echo.MiddlewareFunc) {
	reservationGroup := g.Group("/reservations", protected)
	reservationGroup.GET("", rt.bookingHandler.ListReservations)
	reservationGroup.GET("/:id", rt.bookingHandler.GetReservation)
	reservationGroup.POST("/:id/cancel", rt.bookingHandler.CancelReservation)
	reservationGroup.POST("/:id/reschedule", rt.bookingHandler.RescheduleReservation)

	callLogGroup := g.Group("/call-logs", protected)
	callLogGroup.GET("", rt.bookingHandler.ListCallLogs)
	callLogGroup.GET("/stats/overview", rt.bookingHandler.Stats)
	callLogGroup.GET("/:id", rt.bookingHandler.GetCallLog)
	callLogGroup.GET("/:id/recording", rt.bookingHandler.GetRecording)
	callLogGroup.POST("/:id/transcribe", rt.bookingHandler.Transcribe)

	g.GET("/customers", rt.bookingHandler.ListCustomers, protected)
}

// setupTelephonyRoutes configures the provider webhook
func (rt *Router) setupTelephonyRoutes(g *echo.Group) {
	telephonyGroup := g.Group("/telephony")
	telephonyGroup.POST("/voice", rt.telephonyHandler.Voice)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
