// Package debug записывает трейс пакетного запуска в JSON файл.
//
// Трейс нужен для разбора медленных или проблемных запусков: сколько
// длился каждый батч, сколько ждали между батчами, какие иконки
// получили предупреждения и почему.
package debug

import "time"

// RunLog представляет полный трейс одного запуска.
type RunLog struct {
	// RunID - уникальный идентификатор запуска (используется в имени файла)
	RunID string `json:"run_id"`

	// Timestamp - время начала запуска
	Timestamp time.Time `json:"timestamp"`

	// Duration - общая длительность в миллисекундах
	Duration int64 `json:"duration_ms"`

	Total        int `json:"total"`
	Selected     int `json:"selected"`
	TotalBatches int `json:"total_batches"`

	Batches  []BatchTrace   `json:"batches"`
	Warnings []WarningTrace `json:"warnings,omitempty"`

	Summary Summary `json:"summary"`

	// Error - ошибка если запуск завершился неудачно
	Error string `json:"error,omitempty"`
}

// BatchTrace - один батч.
type BatchTrace struct {
	Number    int     `json:"batch"`
	Size      int     `json:"size"`
	Duration  int64   `json:"duration_ms"`
	Processed int     `json:"processed"`
	Progress  float64 `json:"progress"`

	// Delay - пауза после батча, если была
	Delay int64 `json:"delay_ms,omitempty"`
}

// WarningTrace - сбой обогащения одной иконки.
type WarningTrace struct {
	Batch int    `json:"batch"`
	Icon  string `json:"icon"`
	Step  string `json:"step"`
	Kind  string `json:"kind"` // классификация ошибки sense
	Error string `json:"error"`
}

// Summary - итоги запуска.
type Summary struct {
	ProcessedCount  int      `json:"processed_count"`
	FeaturesApplied []string `json:"features_applied"`
	TotalSize       string   `json:"total_size"`
	WarningsCount   int      `json:"warnings_count"`
	TotalDelay      int64    `json:"total_delay_ms"`
}
