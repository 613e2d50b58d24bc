package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/echoroom/echoroom-backend/internal/db"
	"github.com/echoroom/echoroom-backend/internal/handlers"
	"github.com/echoroom/echoroom-backend/internal/logger"
	"github.com/echoroom/echoroom-backend/internal/middleware"
	"github.com/echoroom/echoroom-backend/internal/observability"
	"github.com/echoroom/echoroom-backend/internal/repos"
	"github.com/echoroom/echoroom-backend/internal/server"
	"github.com/echoroom/echoroom-backend/internal/services"
	"github.com/echoroom/echoroom-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	corsOrigins := utils.GetEnv("CORS_ORIGINS", "", log)
	port := utils.GetEnv("PORT", "5000", log)

	// Tracing
	shutdownOTel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "echoroom-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})

	// Postgres (users, tokens, likes)
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	ideaRepo := repos.NewIdeaRepo(log)
	experimentRepo := repos.NewExperimentRepo(log)
	outcomeRepo := repos.NewOutcomeRepo(log)
	reflectionRepo := repos.NewReflectionRepo(log)
	commentRepo := repos.NewCommentRepo(log)

	// Services
	log.Info("Setting up Services from main...")
	ideaService := services.NewIdeaService(log, ideaRepo)
	outcomeService := services.NewOutcomeService(log, outcomeRepo, experimentRepo)
	experimentService := services.NewExperimentService(log, experimentRepo, outcomeService)
	reflectionService := services.NewReflectionService(log, reflectionRepo, outcomeRepo)
	commentService := services.NewCommentService(log, commentRepo)
	insightsService := services.NewInsightsService(log, ideaRepo, experimentRepo, outcomeRepo, reflectionRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	ideaHandler := handlers.NewIdeaHandler(ideaService)
	experimentHandler := handlers.NewExperimentHandler(experimentService)
	outcomeHandler := handlers.NewOutcomeHandler(outcomeService)
	reflectionHandler := handlers.NewReflectionHandler(reflectionService)
	commentHandler := handlers.NewCommentHandler(commentService)
	insightsHandler := handlers.NewInsightsHandler(insightsService)

	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	likeRepo := repos.NewLikeRepo(thePG, log)
	authService := services.NewAuthService(
		thePG,
		log,
		userRepo,
		userTokenRepo,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	likeService := services.NewLikeService(thePG, log, likeRepo)
	authHandler := handlers.NewAuthHandler(authService)
	likeHandler := handlers.NewLikeHandler(likeService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ServiceName:       "echoroom-backend",
		CORSOrigins:       corsOrigins,
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		IdeaHandler:       ideaHandler,
		ExperimentHandler: experimentHandler,
		OutcomeHandler:    outcomeHandler,
		ReflectionHandler: reflectionHandler,
		CommentHandler:    commentHandler,
		LikeHandler:       likeHandler,
		InsightsHandler:   insightsHandler,
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("Server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("Server shutdown failed", "error", err)
		}
		return shutdownOTel(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}
