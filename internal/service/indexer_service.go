package service

import (
	"context"
	"fmt"
	"time"

	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/entity"
	"ai-assistant-be/internal/repository/unitofwork"
	"ai-assistant-be/pkg/embedding"

	"github.com/google/uuid"
)

type IIndexerService interface {
	IndexChunks(ctx context.Context, source string, chunks []dto.ChunkPayload) (int, error)
}

// indexerService embeds pre-split chunks and stores them, replacing whatever
// was previously indexed under the same source. The ingest consumer and the
// CLI ingester share this path.
type indexerService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
}

func NewIndexerService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
) IIndexerService {
	return &indexerService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (is *indexerService) IndexChunks(ctx context.Context, source string, chunks []dto.ChunkPayload) (int, error) {
	newChunks := make([]*entity.DocumentChunk, 0, len(chunks))
	for _, chunk := range chunks {
		res, err := is.embeddingProvider.Generate(chunk.Content, embedding.TaskTypeDocument)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d of %s: %w", chunk.ChunkIndex, source, err)
		}

		newChunks = append(newChunks, &entity.DocumentChunk{
			Id:             uuid.New(),
			Source:         source,
			Content:        chunk.Content,
			PageRange:      chunk.PageRange,
			ChunkIndex:     chunk.ChunkIndex,
			EmbeddingValue: res.Embedding.Values,
			CreatedAt:      time.Now(),
		})
	}

	uow := is.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	// Re-uploading a document replaces its chunks
	if err := uow.DocumentChunkRepository().DeleteBySource(ctx, source); err != nil {
		return 0, fmt.Errorf("delete old chunks for %s: %w", source, err)
	}

	if len(newChunks) > 0 {
		if err := uow.DocumentChunkRepository().CreateBulk(ctx, newChunks); err != nil {
			return 0, fmt.Errorf("create chunks for %s: %w", source, err)
		}
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return len(newChunks), nil
}
