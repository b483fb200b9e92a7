package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/librisapp/libris-backend/internal/config"
	"github.com/librisapp/libris-backend/internal/handler"
	"github.com/librisapp/libris-backend/internal/middleware"
	"github.com/librisapp/libris-backend/internal/model"
	"github.com/librisapp/libris-backend/internal/response"
	"github.com/librisapp/libris-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Book     *handler.BookHandler
	Quote    *handler.QuoteHandler
	Question *handler.InterviewQuestionHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 2. Authenticated API ──────────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(authService))
	{
		// Books
		api.POST("/books", handlers.Book.Create)
		api.GET("/books", handlers.Book.List)
		api.GET("/books/:id", handlers.Book.Get)
		api.PUT("/books/:id", handlers.Book.Update)
		api.DELETE("/books/:id", handlers.Book.Delete)
		api.POST("/books/:id/toggle-favorite", handlers.Book.ToggleFavorite)

		// Quotes (book-scoped collection plus single-quote operations)
		api.POST("/books/:id/quotes", handlers.Quote.Create)
		api.GET("/books/:id/quotes", handlers.Quote.List)
		api.GET("/books/:id/export", handlers.Quote.Export)
		api.PUT("/quotes/:id", handlers.Quote.Update)
		api.DELETE("/quotes/:id", handlers.Quote.Delete)

		// Interview-question bank
		api.POST("/interview-questions", handlers.Question.Create)
		api.GET("/interview-questions", handlers.Question.List)
		api.GET("/interview-questions/analytics/summary",
			middleware.RequireRole(model.RoleAdmin),
			handlers.Question.Analytics,
		)
		api.GET("/interview-questions/:id", handlers.Question.Get)
		api.PUT("/interview-questions/:id", handlers.Question.Update)
		api.DELETE("/interview-questions/:id", handlers.Question.Delete)
		api.POST("/interview-questions/:id/bookmark", handlers.Question.ToggleBookmark)
		api.POST("/interview-questions/:id/favorite", handlers.Question.ToggleFavorite)
	}

	return router
}
