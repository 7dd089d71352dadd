// sense-server - HTTP сервис Icon Sense поверх vision/chat моделей.
//
// Маршруты:
//
//	POST /api/icon-sense  визуальный анализ SVG: имя и теги
//	POST /api/tag-sense   теги по имени файла
//	GET  /healthz
//
// Модели берутся из секции models config.yaml; промпты из app.prompts_dir
// или встроенные.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/app"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/sense"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/utils"
)

var (
	configFlag = flag.String("config", "", "Path to config.yaml (default: ./config.yaml or next to binary)")
	addrFlag   = flag.String("addr", ":3000", "Listen address")
)

const shutdownTimeout = 10 * time.Second

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, shutdown := utils.ShutdownContext(context.Background())
	defer shutdown()

	cfg, cfgPath, err := app.InitializeConfig(&app.DefaultConfigPathFinder{ConfigFlag: *configFlag})
	if err != nil {
		return err
	}
	if err := utils.InitLogger(cfg.App.LogPrefix + "-sense"); err != nil {
		fmt.Fprintf(os.Stderr, "Logger init failed: %v\n", err)
	}
	utils.SetDebug(cfg.App.Debug)

	analyzer, err := app.NewAnalyzer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", sense.NewServer(analyzer))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              *addrFlag,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Info("sense-server listening", "addr", *addrFlag, "config", cfgPath,
			"vision", cfg.Models.DefaultVision, "chat", cfg.Models.DefaultChat)
		fmt.Printf("🔎 Icon Sense listening on %s\n", *addrFlag)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// Rule 11: даём текущим запросам завершиться
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	utils.Info("sense-server stopped")
	return nil
}
