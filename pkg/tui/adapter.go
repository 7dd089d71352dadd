// Package tui показывает ход пакетной обработки иконок в терминале.
//
// Port & Adapter паттерн:
//   - pkg/events.* - Port (Emitter, Subscriber)
//   - pkg/tui.* - Adapter: Bubble Tea модель и plain-вывод
//
// # Basic Usage
//
//	emitter := events.NewChanEmitter(64)
//	proc := batch.NewProcessor(enricher, batch.WithEmitter(emitter))
//
//	go func() {
//	    out, err = proc.Run(ctx, icons, f)
//	    emitter.Close()
//	}()
//	err := tui.Run(ctx, emitter.Subscribe(), cancel)
//
// Библиотека не знает о TUI: процессор пишет в Emitter, TUI читает Subscriber.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/events"
)

// EventMsg конвертирует events.Event в Bubble Tea сообщение.
type EventMsg events.Event

// closedMsg - канал событий закрыт, запуск завершён.
type closedMsg struct{}

// ReceiveEventCmd возвращает Cmd, читающий одно событие из Subscriber.
//
// Закрытый канал превращается в closedMsg.
func ReceiveEventCmd(sub events.Subscriber) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-sub.Events()
		if !ok {
			return closedMsg{}
		}
		return EventMsg(event)
	}
}
