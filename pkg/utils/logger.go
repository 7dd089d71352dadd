// Package utils предоставляет файловый логгер, graceful shutdown,
// растеризацию SVG и разбор JSON из ответов LLM.
//
// Логгер пишет в .log файл в текущей директории, имя файла содержит
// timestamp. Пока логгер не инициализирован, все вызовы - no-op, поэтому
// библиотечный код может логировать без проверок.
package utils

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	logMutex  sync.Mutex
	logOut    io.Writer
	logFile   *os.File
	debugMode bool
)

// InitLogger создает/открывает .log файл в текущей директории.
//
// Имя файла: <prefix>-YYYY-MM-DD-HH-MM.log (например, xylvir-2025-12-27-15-30.log).
// Повторный вызов ничего не делает.
func InitLogger(prefix string) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logOut != nil {
		return nil
	}
	if prefix == "" {
		prefix = "xylvir"
	}

	filename := fmt.Sprintf("%s-%s.log", prefix, time.Now().Format("2006-01-02-15-04"))
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	logFile = f
	logOut = f
	// Пишем напрямую: мьютекс уже захвачен
	writeLine("INFO", "Logger initialized", "file", filename)
	return nil
}

// SetOutput направляет лог в произвольный writer (stderr, буфер в тестах).
//
// nil отключает логирование.
func SetOutput(w io.Writer) {
	logMutex.Lock()
	defer logMutex.Unlock()
	logOut = w
}

// SetDebug включает вывод Debug сообщений.
func SetDebug(enabled bool) {
	logMutex.Lock()
	defer logMutex.Unlock()
	debugMode = enabled
}

// Info - информационное сообщение.
func Info(msg string, keyvals ...any) {
	log("INFO", msg, keyvals...)
}

// Warn - предупреждение.
func Warn(msg string, keyvals ...any) {
	log("WARN", msg, keyvals...)
}

// Error - сообщение об ошибке.
func Error(msg string, keyvals ...any) {
	log("ERROR", msg, keyvals...)
}

// Debug - отладочное сообщение, пишется только при SetDebug(true).
func Debug(msg string, keyvals ...any) {
	logMutex.Lock()
	enabled := debugMode
	logMutex.Unlock()
	if enabled {
		log("DEBUG", msg, keyvals...)
	}
}

func log(level, msg string, keyvals ...any) {
	logMutex.Lock()
	defer logMutex.Unlock()
	writeLine(level, msg, keyvals...)
}

// writeLine пишет строку формата
// [YYYY-MM-DD HH:MM:SS] LEVEL: message key1=value1 key2=value2.
// Вызывается под logMutex.
func writeLine(level, msg string, keyvals ...any) {
	if logOut == nil {
		return
	}

	line := fmt.Sprintf("[%s] %s: %s", time.Now().Format("2006-01-02 15:04:05"), level, msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		line += fmt.Sprintf(" %v=%v", keyvals[i], keyvals[i+1])
	}
	line += "\n"

	if _, err := io.WriteString(logOut, line); err != nil {
		// Fallback: если файл недоступен, пишем в stderr
		fmt.Fprint(os.Stderr, line)
		fmt.Fprintf(os.Stderr, "[LOGGER ERROR: write failed: %v]\n", err)
		return
	}
	if logFile != nil && logOut == io.Writer(logFile) {
		if err := logFile.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "[LOGGER WARNING: Sync failed: %v]\n", err)
		}
	}
}

// Close закрывает лог-файл. Вызывается через defer в main().
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile != nil {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "[LOGGER WARNING: Close failed: %v]\n", err)
		}
		if logOut == io.Writer(logFile) {
			logOut = nil
		}
		logFile = nil
	}
}
