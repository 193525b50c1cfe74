package handlers

import (
	"os"

	"blogapi/internal/logger"
	"blogapi/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// staticDir is served under /static when it exists next to the binary.
const staticDir = "static"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	allowedOrigins []string
}

// NewHandler constructs a new HTTP handler with dependencies. CORS origins
// are optional; none means no CORS layer is installed.
func NewHandler(services *service.Service, log *logger.Logger, allowedOrigins ...string) *Handler {
	return &Handler{services: services, log: log, allowedOrigins: allowedOrigins}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(h.requestIDMiddleware)

	if len(h.allowedOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = h.allowedOrigins
		cfg.AllowCredentials = true
		cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
		router.Use(cors.New(cfg))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Liveness/greeting endpoints
	router.GET("/", h.root)
	router.GET("/api/hello", h.hello)
	router.GET("/health", h.health)

	// Auth endpoints
	router.POST("/register", h.register)
	router.POST("/token", h.login)
	router.GET("/users/me", h.bearerAuthMiddleware, h.me)

	// Blog endpoints: reads are public, mutations require a bearer token
	h.registerBlogRoutes(router)

	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/static", staticDir)
	}

	return router
}

func (h *Handler) registerBlogRoutes(r *gin.Engine) {
	blogs := r.Group("/blogs")
	{
		blogs.GET("", h.listBlogs)
		blogs.GET("/:id", h.getBlog)
		blogs.POST("", h.bearerAuthMiddleware, h.createBlog)
		blogs.PUT("/:id", h.bearerAuthMiddleware, h.updateBlog)
		blogs.DELETE("/:id", h.bearerAuthMiddleware, h.deleteBlog)
	}
}
