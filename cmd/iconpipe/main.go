// iconpipe - пакетная обработка SVG иконок: сбор, обогащение и экспорт в ZIP.
//
// Иконки берутся из локального каталога (-dir) или из S3 (-s3-prefix),
// проходят через конвейер батчами и упаковываются в архив.
//
// Использование:
//
//	iconpipe -dir ./icons -select "*arrow*" -enable senseNaming -out arrows.zip
//	iconpipe -s3-prefix icons/ -upload exports/icons.zip -plain
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/app"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/batch"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/debug"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/events"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/export"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/icon"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/s3storage"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/tui"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/utils"
)

var (
	configFlag   = flag.String("config", "", "Path to config.yaml (default: ./config.yaml or next to binary)")
	dirFlag      = flag.String("dir", "", "Local directory with SVG icons")
	s3PrefixFlag = flag.String("s3-prefix", "", "Collect icons from S3 under this prefix (default: s3.prefix)")
	selectFlag   = flag.String("select", "*", "Glob over icon name or path; matching icons are processed")
	enableFlag   = flag.String("enable", "", "Comma-separated features to enable, e.g. senseNaming,addPrefix")
	disableFlag  = flag.String("disable", "", "Comma-separated features to disable")
	prefixFlag   = flag.String("prefix", "", "Custom prefix for addPrefix")
	outFlag      = flag.String("out", "icons-export.zip", "Output ZIP file; empty to skip")
	uploadFlag   = flag.String("upload", "", "Upload the ZIP to S3 under this key")
	plainFlag    = flag.Bool("plain", false, "Print events as plain lines instead of the TUI")
	themeFlag    = flag.String("theme", "default", "TUI color scheme: default, dark, light, dracula")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Interrupted")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Rule 11: корневой контекст отменяется по Ctrl+C / SIGTERM
	ctx, shutdown := utils.ShutdownContext(context.Background())
	defer shutdown()

	cfg, cfgPath, err := app.InitializeConfig(&app.DefaultConfigPathFinder{ConfigFlag: *configFlag})
	if err != nil {
		return err
	}

	if err := utils.InitLogger(cfg.App.LogPrefix); err != nil {
		fmt.Fprintf(os.Stderr, "Logger init failed: %v\n", err)
	}
	utils.SetDebug(cfg.App.Debug)
	utils.Info("iconpipe started", "config", cfgPath, "dir", *dirFlag, "select", *selectFlag)

	f, err := applyFeatureFlags(cfg.Features, *enableFlag, *disableFlag)
	if err != nil {
		return err
	}
	if *prefixFlag != "" {
		f.CustomPrefix = *prefixFlag
	}

	emitter := events.NewChanEmitter(256)

	// В debug режиме трейс запуска пишется в debug_logs/
	var sink events.Emitter = emitter
	var recorder *debug.Recorder
	if cfg.App.Debug {
		recorder, err = debug.NewRecorder("debug_logs")
		if err != nil {
			return err
		}
		sink = events.Multi(emitter, recorder)
	}

	comps, err := app.Initialize(cfg, sink)
	if err != nil {
		return err
	}

	// === СБОР ===
	coll, err := collect(ctx, comps)
	if err != nil {
		return err
	}
	fmt.Printf("📦 Collected %d icons in %d folders (%d duplicates, %d errors)\n",
		len(coll.Icons), coll.Stats.TotalFolders, coll.Stats.Duplicates, coll.Stats.Errors)
	for _, entry := range coll.Log {
		utils.Debug("Collect", "type", entry.Type, "message", entry.Message, "details", entry.Details)
	}

	icons, err := icon.SelectMatching(coll.Icons, *selectFlag)
	if err != nil {
		return fmt.Errorf("invalid -select pattern %q: %w", *selectFlag, err)
	}

	// === ОБРАБОТКА ===
	pol := batch.PolicyFor(f, cfg.Batch)
	proc := batch.NewProcessor(comps.Enricher,
		batch.WithEmitter(sink),
		batch.WithConcurrency(cfg.App.Concurrency),
	)

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	var (
		out    batch.Output
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer emitter.Close()
		out, runErr = proc.Run(runCtx, icons, f, pol)
	}()

	sub := emitter.Subscribe()
	if *plainFlag {
		tui.Print(os.Stdout, sub)
	} else {
		if err := tui.Run(ctx, sub, tui.WithOnQuit(cancelRun), tui.WithColorScheme(*themeFlag)); err != nil {
			utils.Error("TUI failed", "error", err)
			cancelRun()
		}
		// TUI мог выйти раньше процессора: вычитываем остаток, чтобы Emit не блокировался
		go func() {
			for range sub.Events() {
			}
		}()
	}
	<-done

	if recorder != nil {
		if path, err := recorder.Finalize(); err != nil {
			utils.Error("Debug trace not saved", "error", err)
		} else {
			fmt.Printf("📁 Debug trace: %s\n", path)
		}
	}

	if runErr != nil {
		return runErr
	}

	// === ЭКСПОРТ ===
	opts := export.OptionsFrom(cfg.Export)
	if err := writeOutputs(ctx, comps, out.Icons, opts); err != nil {
		return err
	}

	fmt.Printf("✅ Processed %d icons, %s total\n", out.Results.ProcessedCount, out.Results.TotalSize)
	return nil
}

// collect выбирает источник иконок: -dir важнее S3.
func collect(ctx context.Context, comps *app.Components) (icon.Collection, error) {
	if *dirFlag != "" {
		return icon.CollectFS(os.DirFS(*dirFlag))
	}
	if comps.Store == nil {
		return icon.Collection{}, errors.New("no icon source: pass -dir or configure s3")
	}
	prefix := *s3PrefixFlag
	if prefix == "" {
		prefix = comps.Config.S3.Prefix
	}
	return s3storage.CollectIcons(ctx, comps.Store, prefix)
}

func writeOutputs(ctx context.Context, comps *app.Components, icons []icon.Icon, opts export.Options) error {
	if *outFlag != "" {
		file, err := os.Create(*outFlag)
		if err != nil {
			return fmt.Errorf("create %s: %w", *outFlag, err)
		}
		if err := export.WriteZip(file, icons, opts); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("close %s: %w", *outFlag, err)
		}
		fmt.Printf("💾 Saved %s\n", *outFlag)
	}

	if *uploadFlag != "" {
		if comps.Store == nil {
			return errors.New("-upload requires s3 configuration")
		}
		if err := export.Publish(ctx, comps.Store, *uploadFlag, icons, opts); err != nil {
			return err
		}
		fmt.Printf("☁️  Uploaded %s\n", *uploadFlag)
	}
	return nil
}
