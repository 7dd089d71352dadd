package events

import (
	"context"
	"sync"
)

// ChanEmitter доставляет события запуска читателю прогресса через
// буферизованный канал.
//
// В iconpipe пишет batch.Processor (предупреждения по иконкам приходят
// от enrich через него же), читает TUI или plain-лог. main закрывает
// эмиттер после возврата Processor.Run: для читателя закрытый канал
// означает конец запуска.
type ChanEmitter struct {
	mu     sync.RWMutex
	ch     chan Event
	closed bool
}

var _ Emitter = (*ChanEmitter)(nil)

// NewChanEmitter создаёт эмиттер с буфером на buffer событий.
// buffer = 0 делает каждую отправку синхронной с читателем.
func NewChanEmitter(buffer int) *ChanEmitter {
	return &ChanEmitter{ch: make(chan Event, buffer)}
}

// Emit ставит событие в очередь.
//
// Rule 11: при полном буфере ждёт читателя или отмены ctx.
// После Close событие молча отбрасывается.
func (e *ChanEmitter) Emit(ctx context.Context, event Event) {
	// RLock на всю отправку: Close не закроет канал, пока она идёт.
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return
	}

	select {
	case e.ch <- event:
	case <-ctx.Done():
	}
}

// Subscribe возвращает читателя событий. Все читатели делят один канал,
// поэтому каждое событие получит ровно один из них.
func (e *ChanEmitter) Subscribe() Subscriber {
	return subscription(e.ch)
}

// Close закрывает канал; повторный вызов ничего не делает.
//
// Ждёт уже начатых Emit, поэтому вызывается, когда читатель ещё
// работает (или буфер заведомо вмещает остаток).
func (e *ChanEmitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		close(e.ch)
	}
}

// subscription - Subscriber поверх общего канала ChanEmitter.
type subscription <-chan Event

var _ Subscriber = subscription(nil)

// Events возвращает канал событий.
func (s subscription) Events() <-chan Event { return s }

// Close ничего не делает: канал принадлежит ChanEmitter.
func (subscription) Close() {}
