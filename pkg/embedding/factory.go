package embedding

import "fmt"

// NewProvider builds an embedding backend by name. "ollama" runs locally,
// "gemini" needs an API key.
func NewProvider(providerType, apiKey, baseURL, model string) (Provider, error) {
	switch providerType {
	case "ollama":
		return NewOllamaProvider(baseURL, model), nil
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini embedding provider requires an api key")
		}
		return NewGeminiProvider(apiKey), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", providerType)
	}
}
