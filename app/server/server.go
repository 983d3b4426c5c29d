package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"stoickb/app/api"
	"stoickb/model"
	"stoickb/profile"
	"stoickb/retriever"
	"stoickb/store"
)

var config = fiber.Config{
	ErrorHandler: api.ErrorHandler,
}

type Server struct {
	listenAddr string
	logger     *slog.Logger
}

func NewServer(addr string) *Server {
	return &Server{
		listenAddr: addr,
		logger:     slog.Default(),
	}
}

func (s *Server) Stop() {
	s.logger.Info("server stopped")
}

func (s *Server) Run() {
	ctx := context.Background()

	pool, err := store.NewPostgresStore(ctx, connStrFromEnv(), embeddingDimension())
	if err != nil {
		log.Fatal("error to connect to Postgres database", err)
		return
	}

	if err := pool.Init(ctx); err != nil {
		log.Fatal("error to create tables", err)
		return
	}

	embedder, err := model.NewEmbedderFromEnv()
	if err != nil {
		log.Fatal("embedding provider not configured: ", err)
		return
	}

	catalog, err := profile.LoadCatalog(os.Getenv("PROFILE_CATALOG"))
	if err != nil {
		log.Fatal("error to load profile catalog: ", err)
		return
	}

	// The justification generator is optional; without it matches fall
	// back to the templated reason.
	var gen model.Generator
	if chat, err := model.NewChatClientFromEnv(); err == nil {
		gen = chat
	} else {
		s.logger.Warn("text generation not configured, using fallback match reasons", "error", err)
	}

	var (
		app          = fiber.New(config)
		checkHandler = api.NewCheckHandler()
		quoteHandler = api.NewQuoteHandler(retriever.New(embedder, pool))
		matchHandler = api.NewMatchHandler(profile.NewMatcher(catalog, gen), catalog)
		check        = app.Group("/check")
		apiv1        = app.Group("/api/v1")
	)

	check.Get("/healthy", checkHandler.HandleHealthy)
	apiv1.Post("/quote", quoteHandler.HandleQuote)
	apiv1.Post("/match", matchHandler.HandleMatch)
	apiv1.Get("/philosophers", matchHandler.HandlePhilosophers)

	if err := app.Listen(s.listenAddr); err != nil {
		s.logger.Error("error to start server", "error", err.Error())
		return
	}
}

func connStrFromEnv() string {
	port, _ := strconv.Atoi(os.Getenv("PG_PORT"))
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("PG_HOST"), port, os.Getenv("PG_USER"), os.Getenv("PG_PASS"), os.Getenv("PG_DB_NAME"))
}

func embeddingDimension() int {
	dim, err := strconv.Atoi(os.Getenv("EMBEDDING_DIMENSION"))
	if err != nil || dim <= 0 {
		return 1536
	}
	return dim
}
