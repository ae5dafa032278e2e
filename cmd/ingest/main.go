package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"ai-assistant-be/internal/config"
	"ai-assistant-be/internal/repository/unitofwork"
	"ai-assistant-be/internal/service"
	"ai-assistant-be/pkg/database"
	"ai-assistant-be/pkg/embedding"
)

// Indexes documents from the command line, bypassing the HTTP upload and the
// ingest bus. Useful for seeding a fresh database.
//
// Usage: ingest <file.pdf|file.txt|file.md> [more files...]
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s <file> [more files...]", filepath.Base(os.Args[0]))
	}

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	embeddingProvider, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Keys.GoogleGemini,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
	)
	if err != nil {
		log.Fatalf("Error: Failed to initialize embedding provider: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	indexer := service.NewIndexerService(uowFactory, embeddingProvider)

	ctx := context.Background()
	for _, path := range os.Args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Error: Failed to read %s: %v", path, err)
		}

		msg, pageCount, err := service.BuildChunkMessage(path, data, cfg.Retrieval.ChunkSize, cfg.Retrieval.ChunkOverlap)
		if err != nil {
			log.Fatalf("Error: Failed to prepare %s: %v", path, err)
		}

		indexed, err := indexer.IndexChunks(ctx, msg.Source, msg.Chunks)
		if err != nil {
			log.Fatalf("Error: Failed to index %s: %v", path, err)
		}

		log.Printf("✅ Indexed %s: %d pages, %d chunks", msg.Source, pageCount, indexed)
	}
}
