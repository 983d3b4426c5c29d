package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"stoickb/loader/service"
	"stoickb/model"
	"stoickb/store"
	"stoickb/tagger"
)

func init() {
	mustLoadEnvVariables()
}

func main() {
	ctx := context.Background()

	port, _ := strconv.Atoi(os.Getenv("PG_PORT"))
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("PG_HOST"), port, os.Getenv("PG_USER"), os.Getenv("PG_PASS"), os.Getenv("PG_DB_NAME"))

	dimension, err := strconv.Atoi(os.Getenv("EMBEDDING_DIMENSION"))
	if err != nil || dimension <= 0 {
		dimension = 1536
	}

	pool, err := store.NewPostgresStore(ctx, connStr, dimension)
	if err != nil {
		log.Fatal("error to connect to Postgres database", err)
		return
	}
	defer pool.Close()

	if err := pool.Init(ctx); err != nil {
		log.Fatal("error to create tables", err)
		return
	}

	embedder, err := model.NewEmbedderFromEnv()
	if err != nil {
		log.Fatal("embedding provider not configured: ", err)
		return
	}

	if err := service.New(pool, pickTagger(), embedder).Run(ctx); err != nil {
		log.Fatal("ingest run failed: ", err)
	}
}

// pickTagger selects the tagging strategy via the TAGGER env var: "provider"
// uses the external text-understanding provider, anything else the
// deterministic rules.
func pickTagger() tagger.Tagger {
	if os.Getenv("TAGGER") == "provider" {
		chat, err := model.NewChatClientFromEnv()
		if err != nil {
			log.Fatal("provider tagging requested but not configured: ", err)
		}
		return tagger.NewProviderTagger(chat)
	}
	return tagger.NewRuleTagger()
}

func mustLoadEnvVariables() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}
}
