package ai

import (
	"context"
	"fmt"
)

// Settings chooses and configures a provider.
type Settings struct {
	Provider     string // openai | gemini | mock; empty picks by available keys
	LLMEndpoint  string
	LLMAPIKey    string
	LLMModel     string
	GeminiAPIKey string
	GeminiModel  string
}

// ResolveProvider returns the provider name Select would use.
func (s Settings) ResolveProvider() string {
	if s.Provider != "" {
		return s.Provider
	}
	switch {
	case s.GeminiAPIKey != "":
		return "gemini"
	case s.LLMAPIKey != "":
		return "openai"
	}
	return "mock"
}

func Select(ctx context.Context, s Settings) (Client, error) {
	switch p := s.ResolveProvider(); p {
	case "openai":
		if s.LLMAPIKey == "" {
			return nil, fmt.Errorf("openai provider needs LLM_API_KEY")
		}
		return NewOpenAI(s.LLMEndpoint, s.LLMAPIKey, s.LLMModel), nil
	case "gemini":
		return NewGemini(ctx, s.GeminiAPIKey, s.GeminiModel)
	case "mock":
		return NewMock(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", p)
	}
}
