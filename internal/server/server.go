package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/imageimprov/photogame-api/internal/assetstore"
	"github.com/imageimprov/photogame-api/internal/ballot"
	"github.com/imageimprov/photogame-api/internal/config"
	"github.com/imageimprov/photogame-api/internal/domain/vote"
	"github.com/imageimprov/photogame-api/internal/domain/voter"
	"github.com/imageimprov/photogame-api/internal/handlers"
	"github.com/imageimprov/photogame-api/internal/logger"
	"github.com/imageimprov/photogame-api/internal/middleware/events"
	"github.com/imageimprov/photogame-api/internal/middleware/widgetauth"
	"github.com/imageimprov/photogame-api/internal/storage/postgres"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	container  *postgres.Container
	store      *assetstore.Store
}

// New creates a new server instance
func New(cfg *config.Config, container *postgres.Container, store *assetstore.Store) *Server {
	return &Server{
		config:    cfg,
		container: container,
		store:     store,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	router := s.setupRouter()

	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: router,

		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting HTTP server", "port", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *gin.Engine {
	if s.config.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(events.CreateEvent())
	router.Use(widgetauth.Decode(s.config.Server.JWTSecret))

	// The widget is embedded on arbitrary partner sites, so origins come
	// from configuration rather than a hardcoded list.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(s.config.CORS.AllowOrigins, ",")
	if len(corsConfig.AllowOrigins) == 1 && corsConfig.AllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowOrigins = nil
	} else {
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = strings.Split(s.config.CORS.AllowMethods, ",")
	corsConfig.AllowHeaders = strings.Split(s.config.CORS.AllowHeaders, ",")
	router.Use(cors.New(corsConfig))

	ballots := ballot.NewGenerator(s.container.Assets())
	resolver := voter.NewResolver(s.container.Voters(), s.container.Assets())
	tally := vote.NewTallyService(s.container.Votes(), resolver)

	gameHandler := handlers.NewGameHandler(
		s.container.Campaigns(),
		s.container.Votes(),
		ballots,
		s.config.Game.BallotSize,
		s.config.Game.VoterCookie,
		s.config.Server.BaseURL,
	)
	assetHandler := handlers.NewAssetHandler(
		s.container.Assets(),
		s.container.Campaigns(),
		s.store,
		s.config.Store.MaxUploadSize,
	)
	voteHandler := handlers.NewVoteHandler(tally, s.config.Game.VoterCookie)

	// Health check
	router.GET("/ping", func(c *gin.Context) {
		if err := s.container.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"message": "Photogame API is degraded",
				"status":  "unhealthy",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Photogame API is running",
			"status":  "healthy",
		})
	})

	s.setupAPIRoutes(router, gameHandler, assetHandler, voteHandler)

	return router
}

// setupAPIRoutes configures all API routes
func (s *Server) setupAPIRoutes(
	router *gin.Engine,
	gameHandler *handlers.GameHandler,
	assetHandler *handlers.AssetHandler,
	voteHandler *handlers.VoteHandler,
) {
	photogame := router.Group("/photogame")
	{
		photogame.GET("/:campaign_id", gameHandler.GetPhotogame)
		photogame.GET("/:campaign_id/results", gameHandler.GetResults)
		photogame.POST("/:campaign_id/asset", assetHandler.UploadAsset)
	}

	router.GET("/asset/:asset_id", assetHandler.GetAsset)
	router.POST("/vote", voteHandler.PostVote)
}
