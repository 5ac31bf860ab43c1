package llm

import "github.com/vzahanych/trip-planner-app/internal/config"

func configFor(provider string) config.LLMConfig {
	cfg := config.NewDefaultConfig().LLM
	cfg.Provider = provider
	cfg.APIKey = "test-key"
	return cfg
}
