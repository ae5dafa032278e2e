package service

import (
	"context"
	"strings"
	"testing"

	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/entity"
	"ai-assistant-be/internal/repository/contract"
	"ai-assistant-be/internal/repository/specification"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeChunkRepository struct {
	sources        []*contract.SourceSummary
	chunks         []*entity.DocumentChunk
	deletedSources []string
}

func (f *fakeChunkRepository) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	f.chunks = append(f.chunks, chunks...)
	return nil
}

func (f *fakeChunkRepository) DeleteBySource(ctx context.Context, source string) error {
	f.deletedSources = append(f.deletedSources, source)
	return nil
}

// sourceFilter mirrors how the real repository applies a BySource
// specification, so tests exercise the same narrowing.
func sourceFilter(specs []specification.Specification) (string, bool) {
	for _, spec := range specs {
		if bySource, ok := spec.(specification.BySource); ok {
			return bySource.Source, true
		}
	}
	return "", false
}

func (f *fakeChunkRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	source, filtered := sourceFilter(specs)
	var out []*entity.DocumentChunk
	for _, chunk := range f.chunks {
		if !filtered || chunk.Source == source {
			out = append(out, chunk)
		}
	}
	return out, nil
}

func (f *fakeChunkRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	source, filtered := sourceFilter(specs)
	var count int64
	for _, chunk := range f.chunks {
		if !filtered || chunk.Source == source {
			count++
		}
	}
	return count, nil
}

func (f *fakeChunkRepository) ListSources(ctx context.Context) ([]*contract.SourceSummary, error) {
	return f.sources, nil
}

func (f *fakeChunkRepository) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredDocumentChunk, error) {
	return nil, nil
}

type capturingPublisher struct {
	messages []*dto.PublishEmbedDocumentMessage
}

func (p *capturingPublisher) PublishEmbedDocument(ctx context.Context, msg *dto.PublishEmbedDocumentMessage) error {
	p.messages = append(p.messages, msg)
	return nil
}

func TestAddTextDocument(t *testing.T) {
	publisher := &capturingPublisher{}
	svc := NewDocumentService(&fakeChunkRepository{}, publisher, 100, 20, noopLogger{})

	content := strings.Repeat("terms and conditions apply to every order ", 10)
	res, err := svc.Add(context.Background(), "/tmp/uploads/terms.txt", []byte(content))

	assert.NoError(t, err)
	assert.Equal(t, "terms.txt", res.Source)
	assert.Equal(t, 1, res.PageCount)
	assert.Equal(t, "queued", res.Status)
	assert.Greater(t, res.ChunkCount, 1)

	if assert.Len(t, publisher.messages, 1) {
		msg := publisher.messages[0]
		assert.Equal(t, "terms.txt", msg.Source)
		assert.Len(t, msg.Chunks, res.ChunkCount)
		for i, chunk := range msg.Chunks {
			assert.Equal(t, i, chunk.ChunkIndex)
			assert.NotEmpty(t, chunk.Content)
			// Single page uploads attribute everything to page 1.
			assert.Equal(t, "1", chunk.PageRange)
		}
	}
}

func TestAddRejectsUnsupportedType(t *testing.T) {
	svc := NewDocumentService(&fakeChunkRepository{}, &capturingPublisher{}, 0, 0, noopLogger{})

	_, err := svc.Add(context.Background(), "report.docx", []byte("binary"))

	var fiberErr *fiber.Error
	assert.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
}

func TestAddRejectsEmptyUpload(t *testing.T) {
	svc := NewDocumentService(&fakeChunkRepository{}, &capturingPublisher{}, 0, 0, noopLogger{})

	_, err := svc.Add(context.Background(), "empty.txt", nil)
	assert.Error(t, err)
}

func TestListDocuments(t *testing.T) {
	repo := &fakeChunkRepository{sources: []*contract.SourceSummary{
		{Source: "a.pdf", ChunkCount: 12},
		{Source: "b.txt", ChunkCount: 3},
	}}
	svc := NewDocumentService(repo, &capturingPublisher{}, 0, 0, noopLogger{})

	res, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "a.pdf", res.Documents[0].Source)
	assert.EqualValues(t, 12, res.Documents[0].ChunkCount)
}

func TestGetDocument(t *testing.T) {
	repo := &fakeChunkRepository{chunks: []*entity.DocumentChunk{
		{Source: "a.pdf", ChunkIndex: 0, PageRange: "1", Content: "first"},
		{Source: "a.pdf", ChunkIndex: 1, PageRange: "1-2", Content: "second"},
		{Source: "b.txt", ChunkIndex: 0, PageRange: "1", Content: "other"},
	}}
	svc := NewDocumentService(repo, &capturingPublisher{}, 0, 0, noopLogger{})

	res, err := svc.Get(context.Background(), "a.pdf")

	assert.NoError(t, err)
	assert.Equal(t, "a.pdf", res.Source)
	if assert.Len(t, res.Chunks, 2) {
		assert.Equal(t, 0, res.Chunks[0].ChunkIndex)
		assert.Equal(t, "first", res.Chunks[0].Content)
		assert.Equal(t, "1-2", res.Chunks[1].PageRange)
	}
}

func TestGetUnknownDocumentIsNotFound(t *testing.T) {
	svc := NewDocumentService(&fakeChunkRepository{}, &capturingPublisher{}, 0, 0, noopLogger{})

	_, err := svc.Get(context.Background(), "missing.pdf")

	var fiberErr *fiber.Error
	assert.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
}

func TestDeleteDocument(t *testing.T) {
	repo := &fakeChunkRepository{chunks: []*entity.DocumentChunk{
		{Source: "a.pdf", ChunkIndex: 0},
		{Source: "a.pdf", ChunkIndex: 1},
	}}
	svc := NewDocumentService(repo, &capturingPublisher{}, 0, 0, noopLogger{})

	res, err := svc.Delete(context.Background(), "a.pdf")

	assert.NoError(t, err)
	assert.Equal(t, "a.pdf", res.Source)
	assert.EqualValues(t, 2, res.ChunkCount)
	assert.Equal(t, []string{"a.pdf"}, repo.deletedSources)

	_, err = svc.Delete(context.Background(), "")
	assert.Error(t, err)
}

func TestDeleteUnknownDocumentIsNotFound(t *testing.T) {
	repo := &fakeChunkRepository{}
	svc := NewDocumentService(repo, &capturingPublisher{}, 0, 0, noopLogger{})

	_, err := svc.Delete(context.Background(), "missing.pdf")

	var fiberErr *fiber.Error
	assert.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
	assert.Empty(t, repo.deletedSources)
}
