package routes

import (
	"net/http"
	"time"

	"github.com/LovationAdmin/finanzas/handlers"
	"github.com/LovationAdmin/finanzas/middleware"
	"github.com/LovationAdmin/finanzas/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

// Options holds everything the router wires together. RateLimiter may be nil.
type Options struct {
	Movements   *services.MovementService
	Identity    services.IdentityProvider
	Feed        *handlers.WSHandler
	RateLimiter *middleware.RateLimiter
}

// NewRouter builds the HTTP surface: open CORS, request ids, logging,
// optional rate limiting and the /api routes.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:   []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	if opts.RateLimiter != nil {
		router.Use(opts.RateLimiter.Handler())
	}

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API Financiera 🟢")
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": Version,
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		SetupMovementRoutes(api, opts.Movements)
		SetupIdentityRoutes(api, opts.Identity)
		if opts.Feed != nil {
			SetupFeedRoutes(api, opts.Feed)
		}
	}

	return router
}

// SetupMovementRoutes sets up the movement CRUD routes.
func SetupMovementRoutes(rg *gin.RouterGroup, service *services.MovementService) {
	h := handlers.NewMovementHandler(service)

	rg.GET("/movimientos", h.GetMovements)
	rg.POST("/movimientos", h.CreateMovement)
	rg.GET("/movimientos/:id", h.GetMovement)
	rg.PUT("/movimientos/:id", h.UpdateMovement)
	rg.DELETE("/movimientos/:id", h.DeleteMovement)
}

// SetupIdentityRoutes sets up the unauthenticated name/role lookup.
func SetupIdentityRoutes(rg *gin.RouterGroup, identity services.IdentityProvider) {
	h := handlers.NewAuthHandler(identity)

	rg.POST("/login", h.Login)
	rg.POST("/registro", h.Register)
}

// SetupFeedRoutes sets up the WebSocket change feed.
func SetupFeedRoutes(rg *gin.RouterGroup, feed *handlers.WSHandler) {
	rg.GET("/ws", feed.HandleWS)
}
