package tui

import (
	"fmt"
	"strings"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/events"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/sense"
)

// FormatEvent возвращает однострочное описание события без стилей.
//
// Общий текст для TUI-лога и plain-вывода.
func FormatEvent(e events.Event) string {
	switch data := e.Data.(type) {
	case events.RunStartedData:
		return fmt.Sprintf("Processing %d of %d icons in %d batches", data.Selected, data.Total, data.TotalBatches)
	case events.BatchData:
		if e.Type == events.EventBatchStarted {
			return fmt.Sprintf("Batch %d/%d started: %d icons", data.Batch, data.TotalBatches, data.Size)
		}
		return fmt.Sprintf("Batch %d/%d completed: %d processed (%.0f%%)", data.Batch, data.TotalBatches, data.Processed, data.Progress)
	case events.DelayData:
		return fmt.Sprintf("Waiting %s before next batch", data.Duration)
	case events.WarningData:
		kind := sense.ClassifyError(data.Err)
		return fmt.Sprintf("%s: %s failed (%s): %v. %s", data.Icon, data.Step, kind, data.Err, kind.HumanMessage())
	case events.ErrorData:
		return fmt.Sprintf("Run failed: %v", data.Err)
	case events.DoneData:
		features := "none"
		if len(data.FeaturesApplied) > 0 {
			features = strings.Join(data.FeaturesApplied, ", ")
		}
		return fmt.Sprintf("Done: %d icons, %s, features: %s", data.ProcessedCount, data.TotalSize, features)
	}
	return string(e.Type)
}
