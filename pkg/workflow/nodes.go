package workflow

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-assistant-be/pkg/classifier"
	"ai-assistant-be/pkg/rag"
)

const excerptLimit = 200

// notFoundResponse is returned when retrieval evidence is too weak to answer
// from; it keeps ResponseType=document so callers can distinguish it from a
// handler failure.
const notFoundResponse = "I couldn't find relevant information in the documents to answer your question. " +
	"Please try rephrasing or ask about a different topic."

// DecisionNode classifies the query. Classification is total over its input,
// so this node never fails.
type DecisionNode struct {
	classifier *classifier.Classifier
}

func NewDecisionNode(c *classifier.Classifier) *DecisionNode {
	return &DecisionNode{classifier: c}
}

func (n *DecisionNode) Process(ctx context.Context, state *State) error {
	state.Classification = n.classifier.Classify(state.Query).Label
	return nil
}

// WeatherNode extracts a location from the query and asks the weather
// provider for current conditions or a forecast.
type WeatherNode struct {
	provider WeatherProvider
	logger   *log.Logger
}

func NewWeatherNode(provider WeatherProvider, logger *log.Logger) *WeatherNode {
	return &WeatherNode{provider: provider, logger: logger}
}

func (n *WeatherNode) Process(ctx context.Context, state *State) error {
	city, country := ExtractLocation(state.Query)
	wantsForecast := WantsForecast(state.Query)

	if n.logger != nil {
		n.logger.Printf("[WEATHER] city=%q country=%q forecast=%v", city, country, wantsForecast)
	}

	result, err := n.provider.CurrentOrForecast(ctx, city, country, wantsForecast)
	if err != nil {
		state.Response = fmt.Sprintf("❌ Error processing weather request: %v", err)
		state.ResponseType = ResponseTypeError
		return fmt.Errorf("weather lookup for %q: %w", city, err)
	}

	state.WeatherData = result
	state.Response = result.Formatted
	state.ResponseType = ResponseTypeWeather
	return nil
}

// RAGNode retrieves evidence, scores it, and only asks the store to
// synthesize an answer when the evidence clears the confidence gate.
type RAGNode struct {
	store  DocumentStore
	scorer *rag.Scorer
	topK   int
	logger *log.Logger
}

func NewRAGNode(store DocumentStore, scorer *rag.Scorer, topK int, logger *log.Logger) *RAGNode {
	if topK <= 0 {
		topK = 3
	}
	return &RAGNode{store: store, scorer: scorer, topK: topK, logger: logger}
}

func (n *RAGNode) Process(ctx context.Context, state *State) error {
	chunks, err := n.store.Retrieve(ctx, state.Query, n.topK)
	if err != nil {
		state.Response = fmt.Sprintf("❌ Error processing document query: %v", err)
		state.ResponseType = ResponseTypeError
		return fmt.Errorf("retrieve: %w", err)
	}

	similarities := make([]float64, len(chunks))
	for i, c := range chunks {
		similarities[i] = c.Score
	}
	score := n.scorer.Score(similarities)

	state.Confidence = score.Confidence
	state.Sources = buildSources(chunks)

	if n.logger != nil {
		n.logger.Printf("[RAG] retrieved=%d confidence=%.1f accept=%v", len(chunks), score.Confidence, score.Accept)
	}

	if !score.Accept {
		state.Response = notFoundResponse
		state.ResponseType = ResponseTypeDocument
		return nil
	}

	answer, err := n.store.Answer(ctx, state.Query, chunks)
	if err != nil {
		state.Response = fmt.Sprintf("❌ Error processing document query: %v", err)
		state.ResponseType = ResponseTypeError
		return fmt.Errorf("answer: %w", err)
	}

	state.Response = formatDocumentResponse(answer, state.Sources, score.Confidence)
	state.ResponseType = ResponseTypeDocument
	return nil
}

func buildSources(chunks []RetrievedChunk) []SourceRef {
	sources := make([]SourceRef, len(chunks))
	for i, c := range chunks {
		excerpt := c.Text
		if runes := []rune(excerpt); len(runes) > excerptLimit {
			excerpt = string(runes[:excerptLimit]) + "..."
		}
		sources[i] = SourceRef{
			Source:    c.Source,
			PageRange: c.PageRange,
			Score:     c.Score,
			Excerpt:   excerpt,
		}
	}
	return sources
}

func formatDocumentResponse(answer string, sources []SourceRef, confidence float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 **Document Answer** (Confidence: %.1f%%)\n\n%s\n\n**Sources:**\n", confidence, answer)
	for i, src := range sources {
		fmt.Fprintf(&b, "\n%d. **%s** (Page %s, Score: %.3f)\n   %s\n", i+1, src.Source, src.PageRange, src.Score, src.Excerpt)
	}
	return strings.TrimSpace(b.String())
}

// FallbackNode answers queries that matched neither handler and have no
// indexed documents to fall back on.
type FallbackNode struct{}

func NewFallbackNode() *FallbackNode {
	return &FallbackNode{}
}

var fallbackSuggestions = []string{
	"Try asking about weather in a specific city (e.g., 'What's the weather in London?')",
	"Ask questions about documents you've uploaded (e.g., 'What does the document say about...?')",
	"Be more specific about what you're looking for",
}

func (n *FallbackNode) Process(ctx context.Context, state *State) error {
	var b strings.Builder
	fmt.Fprintf(&b, "🤔 I'm not sure how to help with that query.\n\n**Your query:** %q\n\n", state.Query)
	b.WriteString("**I can help you with:**\n• Weather information for any city\n• Questions about documents you've uploaded\n\n**Try these instead:**\n")
	for _, s := range fallbackSuggestions {
		b.WriteString("\n• " + s)
	}
	b.WriteString("\n\nPlease rephrase your question and try again!")

	state.Response = b.String()
	state.ResponseType = ResponseTypeFallback
	return nil
}
