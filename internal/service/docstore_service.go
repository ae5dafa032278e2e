package service

import (
	"context"
	"fmt"
	"strings"

	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/internal/repository/contract"
	"ai-assistant-be/internal/repository/specification"
	"ai-assistant-be/pkg/embedding"
	"ai-assistant-be/pkg/llm"
	"ai-assistant-be/pkg/workflow"
)

// docstoreService backs the query workflow with pgvector retrieval and LLM
// answer synthesis. It is the only implementation of workflow.DocumentStore.
type docstoreService struct {
	chunkRepository   contract.DocumentChunkRepository
	embeddingProvider embedding.Provider
	llmProvider       llm.LLMProvider
	log               logger.ILogger
}

func NewDocstoreService(
	chunkRepository contract.DocumentChunkRepository,
	embeddingProvider embedding.Provider,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) workflow.DocumentStore {
	return &docstoreService{
		chunkRepository:   chunkRepository,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		log:               log,
	}
}

func (s *docstoreService) HasDocuments(ctx context.Context) (bool, error) {
	count, err := s.chunkRepository.Count(ctx, specification.NotDeleted{})
	if err != nil {
		return false, fmt.Errorf("count document chunks: %w", err)
	}
	return count > 0, nil
}

func (s *docstoreService) Retrieve(ctx context.Context, query string, limit int) ([]workflow.RetrievedChunk, error) {
	res, err := s.embeddingProvider.Generate(query, embedding.TaskTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := s.chunkRepository.SearchSimilarWithScore(ctx, res.Embedding.Values, limit)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	chunks := make([]workflow.RetrievedChunk, len(scored))
	for i, sc := range scored {
		chunks[i] = workflow.RetrievedChunk{
			Text:      sc.Chunk.Content,
			Source:    sc.Chunk.Source,
			PageRange: sc.Chunk.PageRange,
			Score:     sc.Similarity,
		}
	}

	s.log.Debug("docstore", "Retrieved chunks for query", map[string]interface{}{
		"query_length": len(query),
		"chunks":       len(chunks),
	})
	return chunks, nil
}

const answerSystemPrompt = "You are a helpful assistant that answers questions using only the provided document excerpts. " +
	"If the excerpts do not contain the answer, say so plainly. Keep answers concise."

func (s *docstoreService) Answer(ctx context.Context, query string, chunks []workflow.RetrievedChunk) (string, error) {
	var contextBlock strings.Builder
	for i, c := range chunks {
		fmt.Fprintf(&contextBlock, "[%d] %s (page %s):\n%s\n\n", i+1, c.Source, c.PageRange, c.Text)
	}

	prompt := fmt.Sprintf("Document excerpts:\n\n%sQuestion: %s", contextBlock.String(), query)

	answer, err := s.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: answerSystemPrompt},
		{Role: "user", Content: prompt},
	}, llm.WithTemperature(0.3))
	if err != nil {
		return "", fmt.Errorf("synthesize answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}
