package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/diug22/BeCreativIA/backend/internal/adapter"
	"github.com/diug22/BeCreativIA/backend/internal/concepts"
	"github.com/diug22/BeCreativIA/backend/internal/graph"
	"github.com/diug22/BeCreativIA/backend/pkg/config"
	apperrors "github.com/diug22/BeCreativIA/backend/pkg/errors"
	"github.com/diug22/BeCreativIA/backend/pkg/logger"
)

func main() {
	// Initialize logger
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting concept graph API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if !cfg.HasOpenRouterKey() {
		log.Warn("OPENROUTER_API_KEY not set, generation endpoints will report errors")
	}

	// Initialize dependencies
	store := graph.NewStore()
	llmAdapter := adapter.NewLLMAdapter(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.ModelID)
	conceptSvc := concepts.NewService(llmAdapter, store)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := setupRouter(cfg, store, conceptSvc, log)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started",
		zap.String("port", cfg.Port),
		zap.String("model", cfg.ModelID))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// setupRouter wires middleware and all API routes
func setupRouter(cfg *config.Config, store *graph.Store, conceptSvc *concepts.Service, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	// The frontend is served from arbitrary origins (local dev, Vercel
	// previews), so the API stays wide open.
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"Authorization", "Accept", "Cache-Control", "X-Requested-With", "X-Request-ID",
		},
		ExposeHeaders: []string{"X-Request-ID"},
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Analyze free text: is it a concept or a phrase, and which concept
	// does it carry. Always 200 once the key is configured; LLM failures
	// degrade to a first-word fallback inside the service.
	router.POST("/analyze-concept", func(c *gin.Context) {
		var req struct {
			Text string `json:"text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !cfg.HasOpenRouterKey() {
			reportMissingKey(c, log)
			return
		}

		c.JSON(http.StatusOK, conceptSvc.Analyze(c.Request.Context(), req.Text))
	})

	// Generate three related concepts for a given one.
	router.POST("/generate-concepts", func(c *gin.Context) {
		var req struct {
			Concept string `json:"concept" binding:"required"`
			// Cycles is accepted for wire compatibility; expansion
			// loops run client-side, one generation per request.
			Cycles int `json:"cycles"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !cfg.HasOpenRouterKey() {
			reportMissingKey(c, log)
			return
		}

		related, err := conceptSvc.Related(c.Request.Context(), req.Concept)
		if err != nil {
			log.Error("Failed to generate related concepts", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error generating concepts: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"related_concepts": related})
	})

	// Add a concept node, optionally linked to a parent. Parameters come
	// in the query string, not the body.
	router.POST("/add-concept", func(c *gin.Context) {
		concept, ok := c.GetQuery("concept")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "concept query parameter is required"})
			return
		}

		result := store.Ingest(concept, c.Query("parent"))

		c.JSON(http.StatusOK, gin.H{
			"status":              "success",
			"concept_id":          result.NodeID,
			"similar_connections": result.SimilarConnections,
		})
	})

	// Current graph state
	router.GET("/graph", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Snapshot())
	})

	// Drop all nodes and edges; the accumulated concept list survives
	router.DELETE("/reset-graph", func(c *gin.Context) {
		store.Reset()
		c.JSON(http.StatusOK, gin.H{"status": "Graph reset successfully"})
	})

	// Every concept ever generated or added, sorted
	router.GET("/all-concepts", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"concepts": store.AllConcepts()})
	})

	return router
}

// reportMissingKey answers generation requests made before an OpenRouter
// key was configured
func reportMissingKey(c *gin.Context, log *zap.Logger) {
	log.Warn("Rejecting request without OpenRouter key",
		zap.String("path", c.Request.URL.Path),
		zap.Error(apperrors.NewConfigMissingRequired("OPENROUTER_API_KEY")))
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "API key not configured"})
}

// requestID tags every request with an ID, honoring one supplied by the
// caller, and echoes it back in the response headers
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}
