// Package enrich применяет цепочку функций к одной иконке.
//
// Порядок шагов фиксирован:
//  1. Icon Sense (имя и/или теги от модели)
//  2. kebab-case
//  3. префикс
//  4. перекраска SVG
//
// Сбой Icon Sense не прерывает иконку: он логируется, уходит событием
// EventIconWarning, а имя и теги остаются прежними.
package enrich

import (
	"context"
	"errors"
	"fmt"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/events"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/features"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/icon"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/sense"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/transform"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/utils"
)

// Шаги, попадающие в WarningData.Step.
const (
	StepSense   = "sense"
	StepRecover = "recover"
)

// ErrNoClient - Icon Sense включён, а клиент не настроен.
var ErrNoClient = errors.New("sense client is not configured")

// Enricher обогащает одну иконку. Безопасен для параллельного использования.
type Enricher struct {
	client  sense.Client
	emitter events.Emitter
}

// Option настраивает Enricher.
type Option func(*Enricher)

// WithEmitter задает получателя предупреждений по иконкам.
func WithEmitter(e events.Emitter) Option {
	return func(en *Enricher) {
		en.emitter = e
	}
}

// New создает Enricher. client может быть nil, если Icon Sense не используется.
func New(client sense.Client, opts ...Option) *Enricher {
	e := &Enricher{client: client}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich возвращает новую запись; ic не меняется.
//
// Невыбранные иконки возвращаются как есть. Ошибка возвращается только
// при отмене ctx; сбои отдельных шагов и паники становятся предупреждениями.
func (e *Enricher) Enrich(ctx context.Context, ic icon.Icon, f features.Features) (out icon.Icon, err error) {
	if !ic.Selected {
		return ic, nil
	}
	if err := ctx.Err(); err != nil {
		return ic, err
	}

	out = ic.Clone()

	// Per-icon error boundary для шагов 2-4: паника одной иконки не роняет батч.
	// Паника клиента Icon Sense ловится раньше, в suggest.
	defer func() {
		if r := recover(); r != nil {
			e.warn(ctx, ic, StepRecover, fmt.Errorf("panic during enrichment: %v", r))
			out, err = ic.Clone(), nil
		}
	}()

	// 1. Icon Sense
	if f.SenseEnabled() {
		if cerr := e.applySense(ctx, &out, f); cerr != nil {
			return ic, cerr
		}
	}

	// 2. kebab-case
	if f.Standardization && f.KebabCase {
		stem, ext := transform.SplitName(out.Name)
		out.Rename(transform.JoinName(transform.Kebabify(stem), ext))
	}

	// 3. Префикс
	if f.Standardization && f.AddPrefix {
		stem, ext := transform.SplitName(out.Name)
		out.Rename(transform.JoinName(transform.ApplyPrefix(stem, f.Prefix()), ext))
	}

	// 4. Перекраска
	if f.Colorization && out.Content != "" {
		out.Content = transform.Recolor(out.Content, transform.RecolorOptions{
			ReplaceBlack:  f.ReplaceBlack,
			RemoveWhiteBg: f.RemoveWhiteBg,
			AddRootFill:   f.AddRootFill,
		})
	}

	return out, nil
}

// applySense вызывает клиента ровно один раз. Возвращает ошибку только
// если отменён сам запуск.
//
// Ответ применяется целиком или не применяется вовсе: при включённом
// naming нужно имя, при включённом tagging нужен список тегов.
func (e *Enricher) applySense(ctx context.Context, out *icon.Icon, f features.Features) error {
	if e.client == nil {
		e.warn(ctx, *out, StepSense, ErrNoClient)
		return nil
	}

	sug, err := e.suggest(ctx, *out, f.SenseNaming)
	if err == nil {
		sug, err = checkSuggestion(sug, f)
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		e.warn(ctx, *out, StepSense, err)
		return nil
	}

	if f.SenseNaming {
		_, ext := transform.SplitName(out.Name)
		out.Rename(transform.JoinName(sug.Name, ext))
	}
	if f.SenseTagging {
		out.Tags = append([]string{}, sug.Tags...)
	}
	return nil
}

// suggest изолирует панику клиента: она становится ошибкой шага sense,
// остальные шаги иконки выполняются.
func (e *Enricher) suggest(ctx context.Context, ic icon.Icon, visual bool) (sug sense.Suggestion, err error) {
	defer func() {
		if r := recover(); r != nil {
			sug, err = sense.Suggestion{}, fmt.Errorf("panic in sense client: %v", r)
		}
	}()
	return e.client.Suggest(ctx, ic, visual)
}

// checkSuggestion нормализует ответ и проверяет, что в нём есть
// всё нужное включённым режимам.
func checkSuggestion(sug sense.Suggestion, f features.Features) (sense.Suggestion, error) {
	sug = sug.Normalize()
	if err := sug.Validate(); err != nil {
		return sense.Suggestion{}, err
	}
	if f.SenseNaming && sug.Name == "" {
		return sense.Suggestion{}, fmt.Errorf("%w: missing name", sense.ErrMalformedSuggestion)
	}
	if f.SenseTagging && sug.Tags == nil {
		return sense.Suggestion{}, fmt.Errorf("%w: missing tags", sense.ErrMalformedSuggestion)
	}
	return sug, nil
}

func (e *Enricher) warn(ctx context.Context, ic icon.Icon, step string, err error) {
	utils.Warn("Icon enrichment step failed",
		"icon", ic.Path,
		"step", step,
		"kind", sense.ClassifyError(err).String(),
		"error", err)

	if e.emitter != nil {
		e.emitter.Emit(ctx, events.New(events.EventIconWarning, events.WarningData{
			Icon: ic.Path,
			Step: step,
			Err:  err,
		}))
	}
}
