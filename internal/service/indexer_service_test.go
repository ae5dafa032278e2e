package service

import (
	"context"
	"errors"
	"testing"

	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/entity"
	"ai-assistant-be/internal/repository/contract"
	"ai-assistant-be/internal/repository/unitofwork"
	"ai-assistant-be/pkg/embedding"

	"github.com/stretchr/testify/assert"
)

type fakeEmbedder struct {
	taskTypes []string
	err       error
}

func (f *fakeEmbedder) Generate(text, taskType string) (*embedding.Response, error) {
	f.taskTypes = append(f.taskTypes, taskType)
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.Response{Embedding: embedding.Vector{Values: []float32{0.1, 0.2}}}, nil
}

type recordingUnitOfWork struct {
	repo *fakeChunkRepository
	ops  []string
}

func (u *recordingUnitOfWork) Begin(ctx context.Context) error {
	u.ops = append(u.ops, "begin")
	return nil
}

func (u *recordingUnitOfWork) Commit() error {
	u.ops = append(u.ops, "commit")
	return nil
}

func (u *recordingUnitOfWork) Rollback() error {
	u.ops = append(u.ops, "rollback")
	return nil
}

func (u *recordingUnitOfWork) DocumentChunkRepository() contract.DocumentChunkRepository {
	return &recordingChunkRepo{fakeChunkRepository: u.repo, uow: u}
}

type recordingChunkRepo struct {
	*fakeChunkRepository
	uow *recordingUnitOfWork
}

func (r *recordingChunkRepo) DeleteBySource(ctx context.Context, source string) error {
	r.uow.ops = append(r.uow.ops, "delete:"+source)
	return r.fakeChunkRepository.DeleteBySource(ctx, source)
}

func (r *recordingChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	r.uow.ops = append(r.uow.ops, "create")
	return r.fakeChunkRepository.CreateBulk(ctx, chunks)
}

type recordingFactory struct {
	uow *recordingUnitOfWork
}

func (f recordingFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func TestIndexChunksReplacesSource(t *testing.T) {
	uow := &recordingUnitOfWork{repo: &fakeChunkRepository{}}
	embedder := &fakeEmbedder{}
	indexer := NewIndexerService(recordingFactory{uow: uow}, embedder)

	chunks := []dto.ChunkPayload{
		{Content: "first chunk", PageRange: "1", ChunkIndex: 0},
		{Content: "second chunk", PageRange: "1-2", ChunkIndex: 1},
	}
	indexed, err := indexer.IndexChunks(context.Background(), "guide.pdf", chunks)

	assert.NoError(t, err)
	assert.Equal(t, 2, indexed)

	// Document embeddings, one per chunk.
	assert.Equal(t, []string{embedding.TaskTypeDocument, embedding.TaskTypeDocument}, embedder.taskTypes)

	// Old chunks go before the new ones, inside the transaction.
	assert.Equal(t, []string{"begin", "delete:guide.pdf", "create", "commit"}, uow.ops[:4])

	if assert.Len(t, uow.repo.chunks, 2) {
		assert.Equal(t, "guide.pdf", uow.repo.chunks[0].Source)
		assert.Equal(t, 1, uow.repo.chunks[1].ChunkIndex)
		assert.NotEmpty(t, uow.repo.chunks[0].EmbeddingValue)
	}
}

func TestIndexChunksEmbedFailureSkipsStorage(t *testing.T) {
	uow := &recordingUnitOfWork{repo: &fakeChunkRepository{}}
	embedder := &fakeEmbedder{err: errors.New("model unavailable")}
	indexer := NewIndexerService(recordingFactory{uow: uow}, embedder)

	_, err := indexer.IndexChunks(context.Background(), "guide.pdf", []dto.ChunkPayload{
		{Content: "first chunk", PageRange: "1", ChunkIndex: 0},
	})

	assert.Error(t, err)
	assert.Empty(t, uow.ops, "no transaction should start when embedding fails")
	assert.Empty(t, uow.repo.chunks)
}
