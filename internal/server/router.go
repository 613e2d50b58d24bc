package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/echoroom/echoroom-backend/internal/handlers"
	"github.com/echoroom/echoroom-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName       string
	CORSOrigins       string
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	IdeaHandler       *handlers.IdeaHandler
	ExperimentHandler *handlers.ExperimentHandler
	OutcomeHandler    *handlers.OutcomeHandler
	ReflectionHandler *handlers.ReflectionHandler
	CommentHandler    *handlers.CommentHandler
	LikeHandler       *handlers.LikeHandler
	InsightsHandler   *handlers.InsightsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := []string{"http://localhost:3000", "http://localhost:3001"}
	if cfg.CORSOrigins != "" {
		origins = strings.Split(cfg.CORSOrigins, ",")
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/health", handlers.HealthCheck)

	// Auth
	auth := router.Group("/auth")
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.Refresh)
		auth.POST("/logout", cfg.AuthHandler.Logout)
	}

	// Ideas
	ideas := router.Group("/ideas")
	{
		ideas.GET("", cfg.IdeaHandler.GetIdeas)
		ideas.GET("/all", cfg.IdeaHandler.GetAllIdeas)
		ideas.GET("/drafts", cfg.IdeaHandler.GetDrafts)
		ideas.POST("", cfg.IdeaHandler.PostIdea)
		ideas.POST("/drafts", cfg.IdeaHandler.PostDraft)
		ideas.PUT("/:id", cfg.IdeaHandler.PutDraft)
		ideas.PATCH("/:id/publish", cfg.IdeaHandler.PublishDraft)
		ideas.PATCH("/:id/status", cfg.IdeaHandler.PatchStatus)
		ideas.DELETE("/:id", cfg.IdeaHandler.DeleteIdea)
		ideas.GET("/:id", cfg.IdeaHandler.GetIdea)

		// Comments hang off an idea; posting works anonymously too.
		ideas.GET("/:id/comments", cfg.CommentHandler.GetComments)
		ideas.POST("/:id/comments", cfg.AuthMiddleware.OptionalAuth(), cfg.CommentHandler.PostComment)
	}

	// Experiments
	experiments := router.Group("/experiments")
	{
		experiments.GET("", cfg.ExperimentHandler.GetExperiments)
		experiments.GET("/:id", cfg.ExperimentHandler.GetExperiment)
		experiments.POST("", cfg.ExperimentHandler.PostExperiment)
		experiments.PUT("/:id", cfg.ExperimentHandler.PutExperiment)
		experiments.DELETE("/:id", cfg.ExperimentHandler.DeleteExperiment)
	}

	// Outcomes
	outcomes := router.Group("/outcomes")
	{
		outcomes.POST("", cfg.OutcomeHandler.PostOutcome)
		outcomes.GET("", cfg.OutcomeHandler.GetOutcomes)
		outcomes.GET("/:experimentId", cfg.OutcomeHandler.GetOutcomesByExperiment)
		outcomes.PATCH("/:experimentId/result", cfg.OutcomeHandler.PatchOutcomeResult)
	}

	// Reflections
	reflections := router.Group("/reflections")
	{
		reflections.POST("", cfg.ReflectionHandler.PostReflection)
		reflections.GET("", cfg.ReflectionHandler.GetReflections)
		reflections.GET("/id/:id", cfg.ReflectionHandler.GetReflection)
		reflections.GET("/:outcomeId", cfg.ReflectionHandler.GetReflectionsByOutcome)
	}

	// Likes
	likes := router.Group("/likes")
	{
		likes.POST("/:id", cfg.AuthMiddleware.RequireAuth(), cfg.LikeHandler.ToggleLike)
		likes.GET("", cfg.AuthMiddleware.OptionalAuth(), cfg.LikeHandler.GetIdeaLikesBatch)
		likes.GET("/:id", cfg.AuthMiddleware.OptionalAuth(), cfg.LikeHandler.GetIdeaLikes)
	}

	// Insights
	insights := router.Group("/insights")
	{
		insights.GET("/graph", cfg.InsightsHandler.GetGraph)
		insights.POST("/suggest-patterns", cfg.InsightsHandler.SuggestPatterns)
	}

	return router
}
