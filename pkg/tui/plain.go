package tui

import (
	"fmt"
	"io"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/events"
)

// Print пишет события в w построчно, пока канал подписчика не закроется.
//
// Используется когда stdout не терминал или TUI выключен флагом.
func Print(w io.Writer, sub events.Subscriber) {
	for e := range sub.Events() {
		prefix := "   "
		switch e.Type {
		case events.EventIconWarning:
			prefix = "⚠️ "
		case events.EventError:
			prefix = "❌ "
		case events.EventDone:
			prefix = "✅ "
		}
		fmt.Fprintf(w, "[%s] %s%s\n", e.Timestamp.Format("15:04:05"), prefix, FormatEvent(e))
	}
}
