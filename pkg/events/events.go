// Package events предоставляет интерфейсы для реализации Port & Adapter паттерна.
//
// Это Port (интерфейс) для подписки на события пайплайна обработки иконок.
// Позволяет подключать любые UI (TUI, лог, Web) без изменения библиотечной логики.
//
// # Port & Adapter Pattern
//
//	Port - это интерфейс (Emitter, Subscriber), определённый в библиотеке.
//	Adapter - это реализация интерфейса для конкретного UI (TUI, plain log).
//
// # Basic Usage
//
//	emitter := events.NewChanEmitter(64)
//	proc := batch.NewProcessor(enricher, batch.WithEmitter(emitter))
//
//	// В UI:
//	for event := range emitter.Subscribe().Events() {
//	    switch data := event.Data.(type) {
//	    case events.BatchData:
//	        ui.showBatch(data.Batch, data.TotalBatches)
//	    case events.WarningData:
//	        ui.appendWarning(data)
//	    }
//	}
//
// # Thread Safety
//
// Все реализации интерфейсов должны быть thread-safe: предупреждения
// по иконкам приходят из параллельных горутин внутри батча.
//
// # Rule 11: Context Propagation
//
// Emitter.Emit() принимает context.Context для отмены операции.
package events

import (
	"context"
	"time"
)

// EventType представляет тип события пайплайна.
type EventType string

const (
	// EventRunStarted отправляется после валидации запуска, до первого батча.
	EventRunStarted EventType = "run_started"

	// EventBatchStarted отправляется перед обработкой батча.
	EventBatchStarted EventType = "batch_started"

	// EventBatchCompleted отправляется после того, как все иконки батча обработаны.
	EventBatchCompleted EventType = "batch_completed"

	// EventDelay отправляется перед паузой между батчами.
	EventDelay EventType = "delay"

	// EventIconWarning отправляется при сбое обогащения одной иконки.
	// Запуск продолжается.
	EventIconWarning EventType = "icon_warning"

	// EventError отправляется при ошибке всего запуска.
	EventError EventType = "error"

	// EventDone отправляется когда запуск завершён.
	EventDone EventType = "done"
)

// EventData - sealed interface для данных события.
//
// Только типы из пакета events могут реализовать этот интерфейс,
// что обеспечивает compile-time type safety.
type EventData interface {
	eventData()
}

// RunStartedData содержит данные для EventRunStarted.
type RunStartedData struct {
	Total        int // Всего иконок в коллекции
	Selected     int // Выбранных для обработки
	TotalBatches int
}

func (RunStartedData) eventData() {}

// BatchData содержит данные для EventBatchStarted и EventBatchCompleted.
type BatchData struct {
	Batch        int // 1-based
	TotalBatches int
	Size         int     // Иконок в батче
	Processed    int     // Выбранных иконок обработано к этому моменту
	Progress     float64 // Общий прогресс, 0..100
}

func (BatchData) eventData() {}

// DelayData содержит данные для EventDelay.
type DelayData struct {
	Duration time.Duration
}

func (DelayData) eventData() {}

// WarningData содержит данные для EventIconWarning.
type WarningData struct {
	Icon string // Path иконки
	Step string // "sense", "recover"
	Err  error
}

func (WarningData) eventData() {}

// DoneData содержит итоги запуска для EventDone.
type DoneData struct {
	ProcessedCount  int
	FeaturesApplied []string
	TotalSize       string
}

func (DoneData) eventData() {}

// ErrorData содержит данные для EventError.
type ErrorData struct {
	Err error
}

func (ErrorData) eventData() {}

// Event представляет событие пайплайна.
//
// Data содержит типизированные данные события (EventData):
//   - EventRunStarted: RunStartedData
//   - EventBatchStarted, EventBatchCompleted: BatchData
//   - EventDelay: DelayData
//   - EventIconWarning: WarningData
//   - EventError: ErrorData
//   - EventDone: DoneData
type Event struct {
	Type      EventType
	Data      EventData
	Timestamp time.Time
}

// New создаёт событие с текущим временем.
func New(t EventType, data EventData) Event {
	return Event{Type: t, Data: data, Timestamp: time.Now()}
}

// Emitter - это Port для отправки событий.
//
// Emitter инвертирует зависимость: библиотека (pkg/batch, pkg/enrich) зависит
// от этого интерфейса, а не от конкретного UI.
//
// Rule 11: все операции должны уважать context.Context.
type Emitter interface {
	// Emit отправляет событие.
	//
	// Если context отменён, операция должна прерваться.
	Emit(ctx context.Context, event Event)
}

// Subscriber позволяет читать события из канала.
//
// Rule 5: thread-safe операции.
type Subscriber interface {
	// Events возвращает read-only канал событий.
	//
	// Канал закрывается при вызове Close() у эмиттера.
	Events() <-chan Event

	// Close освобождает ресурсы подписчика.
	Close()
}

// Multi рассылает каждое событие во все эмиттеры по порядку. nil пропускаются.
func Multi(emitters ...Emitter) Emitter {
	return multiEmitter(emitters)
}

type multiEmitter []Emitter

func (m multiEmitter) Emit(ctx context.Context, event Event) {
	for _, e := range m {
		if e != nil {
			e.Emit(ctx, event)
		}
	}
}

// EmitterFunc позволяет использовать функцию как Emitter.
type EmitterFunc func(ctx context.Context, event Event)

// Emit вызывает f.
func (f EmitterFunc) Emit(ctx context.Context, event Event) {
	f(ctx, event)
}
