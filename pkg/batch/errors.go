package batch

import "errors"

var (
	// ErrNoIconsSelected - в коллекции нет выбранных иконок. Состояние не меняется.
	ErrNoIconsSelected = errors.New("no icons selected")

	// ErrRunInProgress - процессор уже выполняет запуск.
	ErrRunInProgress = errors.New("batch run already in progress")

	// ErrRunFailed оборачивает причину прерванного запуска.
	ErrRunFailed = errors.New("batch run failed")
)
