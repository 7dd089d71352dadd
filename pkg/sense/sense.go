// Package sense - клиент и сервер Icon Sense: подбор имени и тегов иконки
// моделью (по картинке или только по имени).
//
// Клиентская сторона (Client) используется пайплайном: один вызов Suggest
// на иконку, без ретраев. Реализации:
//   - HTTPClient - удалённый сервис (/api/icon-sense, /api/tag-sense)
//   - LLMClient - прямой вызов модели через llm.Provider
//
// Серверная сторона (Server) обслуживает те же маршруты поверх Analyzer.
package sense

import (
	"context"
	"fmt"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/icon"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/transform"
)

// Маршруты сервиса.
const (
	IconSensePath = "/api/icon-sense" // визуальный анализ
	TagSensePath  = "/api/tag-sense"  // только по имени
)

// UnknownName подставляется, когда имя от модели после очистки пустое.
const UnknownName = "unknown-icon"

// Client - Port для сервиса распознавания.
type Client interface {
	// Suggest возвращает предложение имени и тегов для иконки.
	// visual=true включает визуальный анализ (медленнее и дороже).
	// Имя может прийти в любом виде: enrich чистит его сам.
	Suggest(ctx context.Context, ic icon.Icon, visual bool) (Suggestion, error)
}

// Suggestion - ответ сервиса.
type Suggestion struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// Validate отклоняет пустой ответ: без имени и без тегов.
func (s Suggestion) Validate() error {
	if s.Name == "" && len(s.Tags) == 0 {
		return fmt.Errorf("%w: empty name and tags", ErrMalformedSuggestion)
	}
	return nil
}

// Normalize приводит имя к kebab-case и чистит теги.
// Отсутствующие теги (nil) остаются nil: это не то же, что пустой список.
func (s Suggestion) Normalize() Suggestion {
	out := Suggestion{Name: transform.CleanKebabCase(s.Name)}
	if s.Tags != nil {
		out.Tags = transform.CleanTags(s.Tags)
	}
	return out
}

// Request - тело запроса к сервису.
type Request struct {
	Icon     string   `json:"icon,omitempty"` // SVG разметка, только для визуального анализа
	IconName string   `json:"iconName"`
	IconTags []string `json:"iconTags,omitempty"`
}

// RequestFor собирает маршрут и тело запроса для иконки.
//
// Текстовый режим передает только имя.
func RequestFor(ic icon.Icon, visual bool) (string, Request) {
	if !visual {
		return TagSensePath, Request{IconName: ic.Name}
	}
	return IconSensePath, Request{
		Icon:     ic.Content,
		IconName: ic.Name,
		IconTags: ic.Tags,
	}
}

// ClientFunc позволяет использовать функцию как Client.
type ClientFunc func(ctx context.Context, ic icon.Icon, visual bool) (Suggestion, error)

// Suggest вызывает f.
func (f ClientFunc) Suggest(ctx context.Context, ic icon.Icon, visual bool) (Suggestion, error) {
	return f(ctx, ic, visual)
}
