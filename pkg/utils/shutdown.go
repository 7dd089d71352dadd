package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ShutdownContext возвращает контекст, отменяемый по SIGINT/SIGTERM.
//
// Возвращаемую функцию вызывают через defer: она снимает обработчик
// сигналов и закрывает лог.
//
//	ctx, shutdown := utils.ShutdownContext(context.Background())
//	defer shutdown()
//
// Rule 11: пайплайн проверяет ctx на границах батчей, поэтому Ctrl+C
// прерывает запуск перед следующим батчем, а не посреди иконки.
func ShutdownContext(parent context.Context) (context.Context, func()) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)

	released := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			if parent.Err() == nil {
				Info("Received signal, shutting down gracefully")
			}
		case <-released:
		}
	}()

	return ctx, func() {
		close(released)
		stop()
		Close()
	}
}
