package batch

import "github.com/roastedbeans/xylvir-assets-manager/pkg/icon"

// Status - состояние процессора.
//
//	Idle → Running → Completed | Failed
//
// Из Completed и Failed можно снова перейти в Running.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusCompleted
	StatusFailed
)

// String возвращает строковое представление статуса.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// RunState - наблюдаемое состояние текущего запуска.
//
// Обнуляется при входе в Running и после завершения запуска
// (успешного или нет).
type RunState struct {
	CurrentBatch  int      // 1-based, 0 вне запуска
	TotalBatches  int
	BatchProgress float64  // 0 или 100: внутри батча прогресс не дробится
	Progress      float64  // 0..100
	Processed     int      // Выбранных иконок обработано
	Features      []string // Названия включённых функций запуска
	TotalBytes    float64
}

// Progress - снимок для ProgressFunc.
type Progress struct {
	CurrentBatch    int
	TotalBatches    int
	BatchProgress   float64
	ProcessProgress float64
}

// ProgressFunc получает прогресс синхронно из горутины Run.
type ProgressFunc func(Progress)

// Results - сводка завершённого запуска.
type Results struct {
	ProcessedCount  int
	FeaturesApplied []string
	TotalSize       string
}

// Output - новая коллекция и сводка.
type Output struct {
	Icons   []icon.Icon
	Results Results
}
