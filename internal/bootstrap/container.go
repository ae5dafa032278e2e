package bootstrap

import (
	"log"

	"ai-assistant-be/internal/config"
	"ai-assistant-be/internal/controller"
	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/internal/repository/implementation"
	"ai-assistant-be/internal/repository/unitofwork"
	"ai-assistant-be/internal/service"
	"ai-assistant-be/pkg/classifier"
	"ai-assistant-be/pkg/embedding"
	"ai-assistant-be/pkg/llm/factory"
	"ai-assistant-be/pkg/rag"
	"ai-assistant-be/pkg/weather"
	"ai-assistant-be/pkg/workflow"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	QueryController    controller.IQueryController
	DocumentController controller.IDocumentController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Core facades
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	uowFactory := unitofwork.NewRepositoryFactory(db)
	chunkRepository := implementation.NewDocumentChunkRepository(db)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	embeddingProvider, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Keys.GoogleGemini,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize embedding provider: %v", err)
	}
	log.Printf("[INFO] Using embedding provider: %s", cfg.Ai.EmbeddingProvider)

	llmBaseURL := cfg.Ai.GroqBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Keys.Groq,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Query workflow
	traceLogger := log.Default()
	docStore := service.NewDocstoreService(chunkRepository, embeddingProvider, llmProvider, sysLogger)
	weatherProvider := weather.NewClient(cfg.Keys.OpenWeather, traceLogger)
	engine := workflow.NewEngine(
		classifier.NewClassifier(traceLogger),
		weatherProvider,
		docStore,
		rag.NewScorer(cfg.Retrieval.ConfidenceThreshold),
		cfg.Retrieval.TopK,
		traceLogger,
	)

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.IngestTopic)
	indexerService := service.NewIndexerService(uowFactory, embeddingProvider)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.IngestTopic, indexerService)
	queryService := service.NewQueryService(engine, docStore, sysLogger)
	documentService := service.NewDocumentService(
		chunkRepository,
		publisherService,
		cfg.Retrieval.ChunkSize,
		cfg.Retrieval.ChunkOverlap,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		QueryController:    controller.NewQueryController(queryService),
		DocumentController: controller.NewDocumentController(documentService),
		ConsumerService:    consumerService,
		Logger:             sysLogger,
	}
}
