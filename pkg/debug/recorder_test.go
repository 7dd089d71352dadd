package debug

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/events"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/sense"
)

func at(t0 time.Time, ms int, typ events.EventType, data events.EventData) events.Event {
	return events.Event{Type: typ, Data: data, Timestamp: t0.Add(time.Duration(ms) * time.Millisecond)}
}

func TestRecorder_TracesRun(t *testing.T) {
	rec, err := NewRecorder(t.TempDir())
	require.NoError(t, err)

	t0 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	for _, e := range []events.Event{
		at(t0, 0, events.EventRunStarted, events.RunStartedData{Total: 5, Selected: 3, TotalBatches: 2}),
		at(t0, 10, events.EventBatchStarted, events.BatchData{Batch: 1, TotalBatches: 2, Size: 2}),
		at(t0, 50, events.EventIconWarning, events.WarningData{Icon: "/icons/a.svg", Step: "sense", Err: &sense.StatusError{StatusCode: 429}}),
		at(t0, 110, events.EventBatchCompleted, events.BatchData{Batch: 1, TotalBatches: 2, Size: 2, Processed: 2, Progress: 66.7}),
		at(t0, 110, events.EventDelay, events.DelayData{Duration: 2 * time.Second}),
		at(t0, 2110, events.EventBatchStarted, events.BatchData{Batch: 2, TotalBatches: 2, Size: 1}),
		at(t0, 2140, events.EventBatchCompleted, events.BatchData{Batch: 2, TotalBatches: 2, Size: 1, Processed: 3, Progress: 100}),
		at(t0, 2150, events.EventDone, events.DoneData{ProcessedCount: 3, FeaturesApplied: []string{"Icon Sense"}, TotalSize: "1.4KB"}),
	} {
		rec.Emit(ctx, e)
	}

	log := rec.Log()
	assert.Equal(t, 3, log.Selected)
	assert.Equal(t, int64(2150), log.Duration)
	require.Len(t, log.Batches, 2)
	assert.Equal(t, int64(100), log.Batches[0].Duration)
	assert.Equal(t, int64(2000), log.Batches[0].Delay)
	assert.Equal(t, int64(30), log.Batches[1].Duration)
	assert.Zero(t, log.Batches[1].Delay)

	require.Len(t, log.Warnings, 1)
	assert.Equal(t, 1, log.Warnings[0].Batch)
	assert.Equal(t, sense.ErrRateLimit.String(), log.Warnings[0].Kind)

	assert.Equal(t, Summary{
		ProcessedCount:  3,
		FeaturesApplied: []string{"Icon Sense"},
		TotalSize:       "1.4KB",
		WarningsCount:   1,
		TotalDelay:      2000,
	}, log.Summary)
}

func TestRecorder_Finalize(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRecorder(dir)
	require.NoError(t, err)

	rec.Emit(context.Background(), events.New(events.EventError, events.ErrorData{Err: errors.New("enricher exploded")}))

	path, err := rec.Finalize()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, rec.GetRunID()+".json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got RunLog
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "enricher exploded", got.Error)
	assert.Equal(t, rec.GetRunID(), got.RunID)
}
