package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/internal/repository/contract"
	"ai-assistant-be/internal/repository/specification"
	"ai-assistant-be/pkg/pdf"
	"ai-assistant-be/pkg/rag"
	"ai-assistant-be/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type IDocumentService interface {
	Add(ctx context.Context, filename string, data []byte) (*dto.AddDocumentResponse, error)
	List(ctx context.Context) (*dto.ListDocumentsResponse, error)
	Get(ctx context.Context, source string) (*dto.DocumentDetailResponse, error)
	Delete(ctx context.Context, source string) (*dto.DeleteDocumentResponse, error)
}

type documentService struct {
	chunkRepository contract.DocumentChunkRepository
	publisher       IPublisherService
	chunkSize       int
	chunkOverlap    int
	log             logger.ILogger
}

func NewDocumentService(
	chunkRepository contract.DocumentChunkRepository,
	publisher IPublisherService,
	chunkSize int,
	chunkOverlap int,
	log logger.ILogger,
) IDocumentService {
	if chunkSize <= 0 {
		chunkSize = utils.DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = utils.DefaultChunkOverlap
	}
	return &documentService{
		chunkRepository: chunkRepository,
		publisher:       publisher,
		chunkSize:       chunkSize,
		chunkOverlap:    chunkOverlap,
		log:             log,
	}
}

// Add splits an upload into chunks with page attribution and queues them for
// embedding. Indexing is asynchronous; the response reports what was queued.
func (s *documentService) Add(ctx context.Context, filename string, data []byte) (*dto.AddDocumentResponse, error) {
	msg, pageCount, err := BuildChunkMessage(filename, data, s.chunkSize, s.chunkOverlap)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishEmbedDocument(ctx, msg); err != nil {
		return nil, fmt.Errorf("queue document for indexing: %w", err)
	}

	s.log.Info("document", "Queued document for indexing", map[string]interface{}{
		"source": msg.Source,
		"pages":  pageCount,
		"chunks": len(msg.Chunks),
	})

	return &dto.AddDocumentResponse{
		Source:     msg.Source,
		PageCount:  pageCount,
		ChunkCount: len(msg.Chunks),
		Status:     "queued",
	}, nil
}

// BuildChunkMessage turns an upload into the ingest payload: extract page
// texts, split, attribute page ranges. Shared by the upload endpoint and the
// CLI ingester.
func BuildChunkMessage(filename string, data []byte, chunkSize, chunkOverlap int) (*dto.PublishEmbedDocumentMessage, int, error) {
	if len(data) == 0 {
		return nil, 0, fiber.NewError(fiber.StatusBadRequest, "Uploaded file is empty")
	}

	pages, err := extractPages(filename, data)
	if err != nil {
		return nil, 0, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	fullText := pdf.FullText(pages)
	chunks := utils.SplitText(fullText, chunkSize, chunkOverlap)
	if len(chunks) == 0 {
		return nil, 0, fiber.NewError(fiber.StatusBadRequest, "No text could be extracted from the file")
	}

	msg := &dto.PublishEmbedDocumentMessage{
		Source: filepath.Base(filename),
		Chunks: make([]dto.ChunkPayload, len(chunks)),
	}
	for i, chunk := range chunks {
		msg.Chunks[i] = dto.ChunkPayload{
			Content:    chunk,
			PageRange:  rag.AttributePage(chunk, pages),
			ChunkIndex: i,
		}
	}
	return msg, len(pages), nil
}

func (s *documentService) List(ctx context.Context) (*dto.ListDocumentsResponse, error) {
	summaries, err := s.chunkRepository.ListSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	documents := make([]dto.DocumentSource, len(summaries))
	for i, sum := range summaries {
		documents[i] = dto.DocumentSource{
			Source:     sum.Source,
			ChunkCount: sum.ChunkCount,
		}
	}

	return &dto.ListDocumentsResponse{
		Documents: documents,
		Total:     len(documents),
	}, nil
}

// Get returns the indexed chunks of one source in document order.
func (s *documentService) Get(ctx context.Context, source string) (*dto.DocumentDetailResponse, error) {
	if source == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Source is required")
	}

	chunks, err := s.chunkRepository.FindAll(ctx,
		specification.BySource{Source: source},
		specification.ByChunkOrder{},
	)
	if err != nil {
		return nil, fmt.Errorf("find chunks for source %q: %w", source, err)
	}
	if len(chunks) == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "No document found for source "+source)
	}

	res := &dto.DocumentDetailResponse{
		Source: source,
		Chunks: make([]dto.DocumentChunkInfo, len(chunks)),
	}
	for i, chunk := range chunks {
		res.Chunks[i] = dto.DocumentChunkInfo{
			ChunkIndex: chunk.ChunkIndex,
			PageRange:  chunk.PageRange,
			Content:    chunk.Content,
		}
	}
	return res, nil
}

func (s *documentService) Delete(ctx context.Context, source string) (*dto.DeleteDocumentResponse, error) {
	if source == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Source is required")
	}

	count, err := s.chunkRepository.Count(ctx, specification.BySource{Source: source})
	if err != nil {
		return nil, fmt.Errorf("count chunks for source %q: %w", source, err)
	}
	if count == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "No document found for source "+source)
	}

	if err := s.chunkRepository.DeleteBySource(ctx, source); err != nil {
		return nil, fmt.Errorf("delete source %q: %w", source, err)
	}
	return &dto.DeleteDocumentResponse{Source: source, ChunkCount: count}, nil
}

// extractPages handles PDFs page by page; plain text formats become a single
// page so attribution still produces a range.
func extractPages(filename string, data []byte) ([]rag.PageText, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return pdf.ExtractPages(data)
	case ".txt", ".md":
		text := pdf.CleanText(string(data))
		if text == "" {
			return nil, fmt.Errorf("no extractable text in file")
		}
		return []rag.PageText{{PageNum: 1, Text: text}}, nil
	default:
		return nil, fmt.Errorf("unsupported file type %q, expected .pdf, .txt or .md", filepath.Ext(filename))
	}
}
