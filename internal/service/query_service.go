package service

import (
	"context"

	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/pkg/workflow"
)

type IQueryService interface {
	ProcessQuery(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error)
}

type queryService struct {
	engine *workflow.Engine
	store  workflow.DocumentStore
	log    logger.ILogger
}

func NewQueryService(engine *workflow.Engine, store workflow.DocumentStore, log logger.ILogger) IQueryService {
	return &queryService{
		engine: engine,
		store:  store,
		log:    log,
	}
}

// ProcessQuery runs one query through the workflow. A failing availability
// probe downgrades to "no documents" so the query can still be answered by
// the weather or fallback path.
func (s *queryService) ProcessQuery(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	hasDocuments, err := s.store.HasDocuments(ctx)
	if err != nil {
		s.log.Warn("query", "Document availability probe failed, assuming empty store", map[string]interface{}{
			"error": err.Error(),
		})
		hasDocuments = false
	}

	state := workflow.NewState(req.Query, hasDocuments)
	s.engine.Run(ctx, state)

	s.log.Info("query", "Processed query", map[string]interface{}{
		"classification": string(state.Classification),
		"response_type":  string(state.ResponseType),
		"has_documents":  hasDocuments,
		"error":          state.Error,
	})

	return toQueryResponse(state), nil
}

func toQueryResponse(state *workflow.State) *dto.QueryResponse {
	sources := make([]dto.QuerySource, len(state.Sources))
	for i, src := range state.Sources {
		sources[i] = dto.QuerySource{
			Source:    src.Source,
			PageRange: src.PageRange,
			Score:     src.Score,
			Excerpt:   src.Excerpt,
		}
	}
	if len(sources) == 0 {
		sources = nil
	}

	return &dto.QueryResponse{
		Response:       state.Response,
		ResponseType:   string(state.ResponseType),
		Classification: string(state.Classification),
		Confidence:     state.Confidence,
		Sources:        sources,
		Error:          state.Error,
	}
}
