// Package workflow wires query handling as a small node graph: a decision
// node picks a handler node, the handler writes its response into the shared
// state, and the run terminates. Every run ends in a terminal state even when
// a handler fails.
package workflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"ai-assistant-be/pkg/classifier"
	"ai-assistant-be/pkg/rag"
)

// Node identifies a step in the graph.
type Node string

const (
	NodeDecision Node = "decision"
	NodeWeather  Node = "weather"
	NodeRAG      Node = "rag"
	NodeFallback Node = "fallback"
)

type Engine struct {
	decision *DecisionNode
	weather  *WeatherNode
	rag      *RAGNode
	fallback *FallbackNode
	logger   *log.Logger
}

func NewEngine(
	cls *classifier.Classifier,
	weatherProvider WeatherProvider,
	store DocumentStore,
	scorer *rag.Scorer,
	topK int,
	logger *log.Logger,
) *Engine {
	return &Engine{
		decision: NewDecisionNode(cls),
		weather:  NewWeatherNode(weatherProvider, logger),
		rag:      NewRAGNode(store, scorer, topK, logger),
		fallback: NewFallbackNode(),
		logger:   logger,
	}
}

// Route maps a classified state to its handler node. It is total: every
// combination of classification and document availability has an outgoing
// edge.
func Route(state *State) Node {
	switch state.Classification {
	case classifier.LabelWeather:
		return NodeWeather
	case classifier.LabelDocument:
		return NodeRAG
	default:
		if state.HasDocuments {
			return NodeRAG
		}
		return NodeFallback
	}
}

// Run executes the graph for a single query. Handler errors are captured in
// state.Error; Run itself never fails and always returns a state carrying a
// response.
func (e *Engine) Run(ctx context.Context, state *State) *State {
	start := time.Now()

	e.runNode(ctx, NodeDecision, e.decision.Process, state)

	next := Route(state)
	switch next {
	case NodeWeather:
		e.runNode(ctx, NodeWeather, e.weather.Process, state)
	case NodeRAG:
		e.runNode(ctx, NodeRAG, e.rag.Process, state)
	default:
		e.runNode(ctx, NodeFallback, e.fallback.Process, state)
	}

	if e.logger != nil {
		e.logger.Printf("[ENGINE] classification=%s node=%s type=%s took=%s",
			state.Classification, next, state.ResponseType, time.Since(start))
	}
	return state
}

func (e *Engine) runNode(ctx context.Context, node Node, fn func(context.Context, *State) error, state *State) {
	if err := fn(ctx, state); err != nil {
		state.Error = fmt.Sprintf("%s error: %v", node, err)
		if e.logger != nil {
			e.logger.Printf("[ENGINE] node %s failed: %v", node, err)
		}
	}
}
