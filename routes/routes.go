package routes

import (
	"forum_backend/forum"
	"forum_backend/handlers"
	"forum_backend/metrics"
	"forum_backend/middleware"
	"forum_backend/sensor"
	"forum_backend/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies are the services the route table is built from.
type Dependencies struct {
	Store    store.Store
	Forum    *forum.Service
	Tokens   *middleware.TokenService
	Feed     *sensor.Feed
	Limiter  *middleware.ClientRateLimiter
	Registry *prometheus.Registry
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, deps Dependencies) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.Store, deps.Tokens)
	userHandler := handlers.NewUserHandler(deps.Store)
	postHandler := handlers.NewPostHandler(deps.Forum)
	commentHandler := handlers.NewCommentHandler(deps.Forum)
	sensorHandler := handlers.NewSensorHandler(deps.Feed)
	healthHandler := handlers.NewHealthHandler(deps.Store)

	requireAuth := middleware.AuthMiddleware(deps.Tokens)
	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if deps.Limiter != nil {
		limit = middleware.RateLimit(deps.Limiter)
	}

	r.GET("/", handlers.Root)
	r.GET("/health", healthHandler.HealthCheck)
	if deps.Registry != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(deps.Registry)))
	}

	api := r.Group("/api")
	api.GET("/hello", handlers.Hello)

	// Auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", limit, authHandler.Register)
		auth.POST("/login", limit, authHandler.Login)
		auth.GET("/me", requireAuth, userHandler.GetUserInfo)
	}

	// Post routes
	posts := api.Group("/posts")
	{
		posts.GET("", postHandler.GetPosts)
		posts.GET("/:postId", postHandler.GetPost)
		posts.POST("/add", requireAuth, limit, postHandler.CreatePost)
		posts.PUT("/:postId/comment", requireAuth, limit, commentHandler.AddComment)
		posts.DELETE("/:postId", requireAuth, limit, postHandler.DeletePost)
	}

	// Sensor routes
	data := api.Group("/data")
	{
		data.GET("", sensorHandler.Data)
		data.GET("/history", sensorHandler.History)
		data.GET("/stream", sensorHandler.Stream)
	}
}
