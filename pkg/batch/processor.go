// Package batch - планировщик батчей и процессор запуска.
//
// Processor.Run делит коллекцию на батчи по Policy, обогащает выбранные
// иконки каждого батча параллельно и выдерживает паузу между батчами.
// Прогресс публикуется через ProgressFunc и events.Emitter.
//
// Rule 11: ctx проверяется на границах батчей и во время паузы.
// Иконка, начавшая обработку, доводится до конца.
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/events"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/features"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/icon"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/utils"
)

// optimizationFactor - оценка размера после оптимизации SVG.
// TODO: считать реальный размер, когда появится минификация разметки.
const optimizationFactor = 0.7

// Enricher - Port для обогащения одной иконки (реализация: enrich.Enricher).
type Enricher interface {
	Enrich(ctx context.Context, ic icon.Icon, f features.Features) (icon.Icon, error)
}

// Processor выполняет запуски. Один запуск за раз.
type Processor struct {
	enricher    Enricher
	emitter     events.Emitter
	progress    ProgressFunc
	concurrency int
	sleep       func(ctx context.Context, d time.Duration) error

	mu     sync.RWMutex
	status Status
	state  RunState
}

// Option настраивает Processor.
type Option func(*Processor)

// WithEmitter задает получателя событий запуска.
func WithEmitter(e events.Emitter) Option {
	return func(p *Processor) {
		p.emitter = e
	}
}

// WithProgress задает колбэк прогресса.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Processor) {
		p.progress = fn
	}
}

// WithConcurrency ограничивает число иконок, обрабатываемых одновременно
// внутри батча. n <= 0 игнорируется.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithSleep подменяет паузу между батчами (тестовые часы).
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(p *Processor) {
		if fn != nil {
			p.sleep = fn
		}
	}
}

// NewProcessor создает процессор.
func NewProcessor(enricher Enricher, opts ...Option) *Processor {
	p := &Processor{
		enricher:    enricher,
		concurrency: 8,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Status возвращает текущий статус.
func (p *Processor) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// State возвращает снимок состояния запуска.
func (p *Processor) State() RunState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := p.state
	s.Features = append([]string(nil), p.state.Features...)
	return s
}

// Run обрабатывает коллекцию и возвращает новую коллекцию той же длины
// и в том же порядке.
//
// Ошибки:
//   - ErrNoIconsSelected: нет выбранных иконок, состояние не меняется
//   - ErrRunInProgress: запуск уже идёт
//   - ErrRunFailed: запуск прерван (отмена ctx, ошибка Enricher);
//     частичный результат отбрасывается
func (p *Processor) Run(ctx context.Context, icons []icon.Icon, f features.Features, pol Policy) (Output, error) {
	selected := icon.CountSelected(icons)
	if selected == 0 {
		return Output{}, ErrNoIconsSelected
	}

	// 1. Idle/Completed/Failed → Running
	p.mu.Lock()
	if p.status == StatusRunning {
		p.mu.Unlock()
		return Output{}, ErrRunInProgress
	}
	p.status = StatusRunning
	p.state = RunState{Features: f.Applied()}
	p.mu.Unlock()

	batches := Partition(icons, pol.Size)
	total := len(batches)

	utils.Info("Batch run started",
		"icons", len(icons),
		"selected", selected,
		"batches", total,
		"batch_size", pol.Size,
		"delay", pol.Delay.String(),
		"features", f.Applied())
	p.emit(ctx, events.EventRunStarted, events.RunStartedData{
		Total:        len(icons),
		Selected:     selected,
		TotalBatches: total,
	})

	out := make([]icon.Icon, 0, len(icons))
	processed := 0
	var totalBytes float64
	start := time.Now()

	for i, b := range batches {
		// 2. Граница батча: проверяем отмену
		if err := ctx.Err(); err != nil {
			return Output{}, p.fail(ctx, err)
		}

		p.update(func(s *RunState) {
			s.CurrentBatch = i + 1
			s.TotalBatches = total
			s.BatchProgress = 0
		})
		utils.Debug("Batch started", "batch", i+1, "of", total, "size", len(b))
		p.emit(ctx, events.EventBatchStarted, events.BatchData{
			Batch:        i + 1,
			TotalBatches: total,
			Size:         len(b),
			Processed:    processed,
			Progress:     float64(i) / float64(total) * 100,
		})

		// 3. Иконки батча параллельно, результат по исходному индексу
		enriched, err := p.processBatch(ctx, b, f)
		if err != nil {
			return Output{}, p.fail(ctx, err)
		}
		out = append(out, enriched...)

		for _, ic := range b {
			if ic.Selected {
				processed++
				totalBytes += icon.ParseFileSize(ic.Size)
			}
		}
		progress := float64(i+1) / float64(total) * 100

		p.update(func(s *RunState) {
			s.Processed = processed
			s.Progress = progress
			s.BatchProgress = 100
			s.TotalBytes = totalBytes
		})
		utils.Debug("Batch completed", "batch", i+1, "processed", processed, "progress", progress)
		p.emit(ctx, events.EventBatchCompleted, events.BatchData{
			Batch:        i + 1,
			TotalBatches: total,
			Size:         len(b),
			Processed:    processed,
			Progress:     progress,
		})

		// 4. Пауза между батчами (не после последнего)
		if i < total-1 && pol.Delay > 0 {
			p.emit(ctx, events.EventDelay, events.DelayData{Duration: pol.Delay})
			if err := p.sleep(ctx, pol.Delay); err != nil {
				return Output{}, p.fail(ctx, err)
			}
		}
	}

	// 5. Сводка
	if f.Optimization {
		totalBytes *= optimizationFactor
	}
	results := Results{
		ProcessedCount:  processed,
		FeaturesApplied: f.Applied(),
		TotalSize:       icon.FormatFileSize(totalBytes),
	}

	p.finish(StatusCompleted)

	utils.Info("Batch run completed",
		"processed", processed,
		"total_size", results.TotalSize,
		"duration_ms", time.Since(start).Milliseconds())
	p.emit(ctx, events.EventDone, events.DoneData{
		ProcessedCount:  results.ProcessedCount,
		FeaturesApplied: results.FeaturesApplied,
		TotalSize:       results.TotalSize,
	})

	return Output{Icons: out, Results: results}, nil
}

// processBatch обогащает выбранные иконки батча. Невыбранные копируются как есть.
//
// Иконки получают контекст без отмены: отмена запуска срабатывает
// на следующей границе батча.
func (p *Processor) processBatch(ctx context.Context, b []icon.Icon, f features.Features) ([]icon.Icon, error) {
	results := make([]icon.Icon, len(b))

	g, gctx := errgroup.WithContext(context.WithoutCancel(ctx))
	g.SetLimit(p.concurrency)

	for i, ic := range b {
		if !ic.Selected {
			results[i] = ic
			continue
		}
		g.Go(func() error {
			enriched, err := p.enricher.Enrich(gctx, ic, f)
			if err != nil {
				return fmt.Errorf("enrich %s: %w", ic.Path, err)
			}
			results[i] = enriched
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// fail переводит процессор в Failed и оборачивает причину в ErrRunFailed.
func (p *Processor) fail(ctx context.Context, cause error) error {
	p.finish(StatusFailed)

	err := fmt.Errorf("%w: %w", ErrRunFailed, cause)
	utils.Error("Batch run failed", "error", cause)

	// Событие об ошибке должно дойти даже при отменённом ctx
	p.emit(context.WithoutCancel(ctx), events.EventError, events.ErrorData{Err: err})
	return err
}

// finish сбрасывает состояние запуска и выставляет итоговый статус.
func (p *Processor) finish(status Status) {
	p.mu.Lock()
	p.status = status
	p.state = RunState{}
	p.mu.Unlock()
}

// update меняет состояние под мьютексом и сообщает прогресс.
func (p *Processor) update(fn func(*RunState)) {
	p.mu.Lock()
	fn(&p.state)
	snap := Progress{
		CurrentBatch:    p.state.CurrentBatch,
		TotalBatches:    p.state.TotalBatches,
		BatchProgress:   p.state.BatchProgress,
		ProcessProgress: p.state.Progress,
	}
	p.mu.Unlock()

	if p.progress != nil {
		p.progress(snap)
	}
}

func (p *Processor) emit(ctx context.Context, t events.EventType, data events.EventData) {
	if p.emitter != nil {
		p.emitter.Emit(ctx, events.New(t, data))
	}
}

// sleepContext ждёт d или отмены ctx.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
