package debug

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/events"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/sense"
)

// Recorder собирает трейс запуска из событий пайплайна.
//
// Реализует events.Emitter, подключается через events.Multi рядом с UI.
// Потокобезопасен: предупреждения приходят из горутин батча.
type Recorder struct {
	mu sync.Mutex

	// logsDir - директория для сохранения трейсов
	logsDir string

	log RunLog

	// batchStart - время EventBatchStarted текущего батча
	batchStart time.Time
	current    int
}

var _ events.Emitter = (*Recorder)(nil)

// NewRecorder создает Recorder, пишущий в logsDir.
//
// Если logsDir не существует, пытается создать её. Пустая строка - текущая директория.
func NewRecorder(logsDir string) (*Recorder, error) {
	if logsDir != "" {
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create logs directory: %w", err)
		}
	}

	now := time.Now()
	return &Recorder{
		logsDir: logsDir,
		log: RunLog{
			RunID:     fmt.Sprintf("debug_%s", now.Format("20060102_150405")),
			Timestamp: now,
			Batches:   []BatchTrace{},
		},
	}, nil
}

// Emit записывает событие в трейс.
func (r *Recorder) Emit(_ context.Context, e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch data := e.Data.(type) {
	case events.RunStartedData:
		r.log.Timestamp = e.Timestamp
		r.log.Total, r.log.Selected, r.log.TotalBatches = data.Total, data.Selected, data.TotalBatches

	case events.BatchData:
		if e.Type == events.EventBatchStarted {
			r.batchStart = e.Timestamp
			r.current = data.Batch
			return
		}
		r.log.Batches = append(r.log.Batches, BatchTrace{
			Number:    data.Batch,
			Size:      data.Size,
			Duration:  e.Timestamp.Sub(r.batchStart).Milliseconds(),
			Processed: data.Processed,
			Progress:  data.Progress,
		})

	case events.DelayData:
		if n := len(r.log.Batches); n > 0 {
			r.log.Batches[n-1].Delay = data.Duration.Milliseconds()
		}
		r.log.Summary.TotalDelay += data.Duration.Milliseconds()

	case events.WarningData:
		w := WarningTrace{
			Batch: r.current,
			Icon:  data.Icon,
			Step:  data.Step,
			Kind:  sense.ClassifyError(data.Err).String(),
		}
		if data.Err != nil {
			w.Error = data.Err.Error()
		}
		r.log.Warnings = append(r.log.Warnings, w)
		r.log.Summary.WarningsCount++

	case events.ErrorData:
		if data.Err != nil {
			r.log.Error = data.Err.Error()
		}

	case events.DoneData:
		r.log.Summary.ProcessedCount = data.ProcessedCount
		r.log.Summary.FeaturesApplied = data.FeaturesApplied
		r.log.Summary.TotalSize = data.TotalSize
	}

	if !r.log.Timestamp.IsZero() && !e.Timestamp.IsZero() {
		r.log.Duration = e.Timestamp.Sub(r.log.Timestamp).Milliseconds()
	}
}

// Log возвращает копию накопленного трейса.
func (r *Recorder) Log() RunLog {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.log
	out.Batches = append([]BatchTrace(nil), r.log.Batches...)
	out.Warnings = append([]WarningTrace(nil), r.log.Warnings...)
	return out
}

// Finalize сохраняет трейс в файл.
//
// Возвращает путь к сохраненному файлу или ошибку.
func (r *Recorder) Finalize() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(r.log, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal debug log: %w", err)
	}

	filePath := r.getFilePath()
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write debug log: %w", err)
	}
	return filePath, nil
}

// getFilePath возвращает путь к файлу для сохранения.
func (r *Recorder) getFilePath() string {
	if r.logsDir != "" {
		return filepath.Join(r.logsDir, r.log.RunID+".json")
	}
	return r.log.RunID + ".json"
}

// GetRunID возвращает идентификатор текущего запуска.
func (r *Recorder) GetRunID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.log.RunID
}
