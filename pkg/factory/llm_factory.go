// Package factory создаёт LLM провайдеров по описанию модели из конфигурации.
package factory

import (
	"fmt"
	"strings"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/config"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/llm"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/llm/openai"
)

// NewLLMProvider создает провайдера на основе конфигурации модели.
//
// Все поддерживаемые провайдеры говорят на OpenAI-совместимом API,
// отличается только base_url.
func NewLLMProvider(modelDef config.ModelDef) (llm.Provider, error) {
	if modelDef.ModelName == "" {
		return nil, fmt.Errorf("model_name is required for provider %q", modelDef.Provider)
	}

	switch strings.ToLower(modelDef.Provider) {
	case "openai", "openrouter", "zai", "deepseek", "ollama":
		return openai.NewClient(modelDef), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s", modelDef.Provider)
	}
}

// NewSenseModels создаёт пару vision/chat провайдеров из секции models.
//
// Если default_chat совпадает с default_vision, возвращается один и тот же провайдер.
func NewSenseModels(cfg *config.AppConfig) (vision, chat llm.Provider, err error) {
	visionDef, ok := cfg.GetVisionModel("")
	if !ok {
		return nil, nil, fmt.Errorf("default_vision model '%s' not found in definitions", cfg.Models.DefaultVision)
	}
	vision, err = NewLLMProvider(visionDef)
	if err != nil {
		return nil, nil, fmt.Errorf("vision model: %w", err)
	}

	if cfg.Models.DefaultChat == "" || cfg.Models.DefaultChat == cfg.Models.DefaultVision {
		return vision, vision, nil
	}

	chatDef, ok := cfg.GetChatModel("")
	if !ok {
		return nil, nil, fmt.Errorf("default_chat model '%s' not found in definitions", cfg.Models.DefaultChat)
	}
	chat, err = NewLLMProvider(chatDef)
	if err != nil {
		return nil, nil, fmt.Errorf("chat model: %w", err)
	}
	return vision, chat, nil
}
