package sense

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/llm"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/prompt"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/transform"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/utils"
)

// AnalyzerConfig - параметры Analyzer.
type AnalyzerConfig struct {
	PromptsDir string // Каталог с icon_sense.yaml / tag_sense.yaml; пусто = встроенные
	RenderSize int    // Сторона растра для vision-модели
	MaxWidth   int
}

// Analyzer - ядро Icon Sense поверх llm.Provider:
// промпт → модель → JSON → нормализация.
//
// Используется и LLMClient (в процессе), и Server (по HTTP).
type Analyzer struct {
	vision     llm.Provider
	chat       llm.Provider
	iconPrompt *prompt.PromptFile
	tagPrompt  *prompt.PromptFile
	renderSize int
	maxWidth   int
}

// NewAnalyzer создает Analyzer. chat == nil означает "использовать vision".
func NewAnalyzer(vision, chat llm.Provider, cfg AnalyzerConfig) (*Analyzer, error) {
	if vision == nil {
		return nil, fmt.Errorf("vision provider is required")
	}
	if chat == nil {
		chat = vision
	}

	iconPrompt, err := prompt.LoadOrDefault(cfg.PromptsDir, prompt.IconSense)
	if err != nil {
		return nil, fmt.Errorf("load %s prompt: %w", prompt.IconSense, err)
	}
	tagPrompt, err := prompt.LoadOrDefault(cfg.PromptsDir, prompt.TagSense)
	if err != nil {
		return nil, fmt.Errorf("load %s prompt: %w", prompt.TagSense, err)
	}

	return &Analyzer{
		vision:     vision,
		chat:       chat,
		iconPrompt: iconPrompt,
		tagPrompt:  tagPrompt,
		renderSize: cfg.RenderSize,
		maxWidth:   cfg.MaxWidth,
	}, nil
}

// Analyze выполняет визуальный (visual=true) или текстовый анализ.
//
// Имя модели чистится CleanKebabCase, пустое заменяется на UnknownName.
// Теги не массивом заменяются на ["icon"].
func (a *Analyzer) Analyze(ctx context.Context, req Request, visual bool) (Suggestion, error) {
	stem, _ := transform.SplitName(req.IconName)
	data := prompt.SenseData{Name: stem, Tags: req.IconTags}

	var (
		pf       *prompt.PromptFile
		provider llm.Provider
		images   []string
	)

	if visual {
		if strings.TrimSpace(req.Icon) == "" {
			return Suggestion{}, ErrEmptyContent
		}
		png, err := utils.RasterizeSVG(req.Icon, a.renderSize, a.maxWidth)
		if err != nil {
			return Suggestion{}, fmt.Errorf("rasterize icon: %w", err)
		}
		pf, provider, images = a.iconPrompt, a.vision, []string{utils.PNGDataURI(png)}
	} else {
		if strings.TrimSpace(req.IconName) == "" {
			return Suggestion{}, ErrEmptyName
		}
		pf, provider = a.tagPrompt, a.chat
	}

	rendered, err := pf.RenderMessages(data)
	if err != nil {
		return Suggestion{}, fmt.Errorf("render prompt: %w", err)
	}

	resp, err := provider.Generate(ctx, prompt.ToLLM(rendered, images...), pf.Options()...)
	if err != nil {
		return Suggestion{}, fmt.Errorf("model call: %w", err)
	}

	return parseModelOutput(resp.Content)
}

// modelOutput - сырой ответ модели. Tags разбираются отдельно:
// модели иногда возвращают строку вместо массива.
type modelOutput struct {
	Name *string         `json:"name"`
	Tags json.RawMessage `json:"tags"`
}

func parseModelOutput(content string) (Suggestion, error) {
	var out modelOutput
	if err := utils.DecodeLLMJSON(content, &out); err != nil {
		return Suggestion{}, fmt.Errorf("%w: %v", ErrMalformedSuggestion, err)
	}
	if out.Name == nil {
		return Suggestion{}, fmt.Errorf("%w: missing name", ErrMalformedSuggestion)
	}

	name := transform.CleanKebabCase(*out.Name)
	if name == "" {
		name = UnknownName
	}

	return Suggestion{Name: name, Tags: parseTags(out.Tags)}, nil
}

// parseTags оставляет строковые элементы массива. Не массив → ["icon"].
func parseTags(raw json.RawMessage) []string {
	var items []any
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil || items == nil {
		return []string{"icon"}
	}

	tags := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			tags = append(tags, s)
		}
	}
	return transform.CleanTags(tags)
}
