// Package app собирает компоненты конвейера из конфигурации.
//
// Используется обеими точками входа (cmd/iconpipe, cmd/sense-server),
// чтобы код инициализации не дублировался.
//
// Пакет следует правилам:
//   - Работает через llm.Provider интерфейс (Правило 4)
//   - Все ошибки возвращаются, никаких panic (Правило 7)
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/config"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/enrich"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/events"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/factory"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/s3storage"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/sense"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/utils"
)

// Components содержит собранные компоненты конвейера.
type Components struct {
	Config   *config.AppConfig
	Sense    sense.Client
	Enricher *enrich.Enricher
	Store    s3storage.Store // nil, если s3 не настроен
}

// ConfigPathFinder определяет стратегию поиска пути к config.yaml.
//
// По умолчанию используется DefaultConfigPathFinder, но можно
// реализовать свою стратегию для тестов.
type ConfigPathFinder interface {
	FindConfigPath() string
}

// DefaultConfigPathFinder реализует стандартную стратегию поиска config.yaml.
//
// Порядок поиска:
// 1. Флаг -config (если указан)
// 2. Текущая директория (./config.yaml)
// 3. Директория бинарника
//
// Пустая строка означает, что файла нет и работаем на дефолтах.
type DefaultConfigPathFinder struct {
	// ConfigFlag - значение флага -config, если указан
	ConfigFlag string
}

// FindConfigPath находит путь к config.yaml.
func (f *DefaultConfigPathFinder) FindConfigPath() string {
	// 1. Флаг имеет приоритет
	if f.ConfigFlag != "" {
		return resolveAbsPath(f.ConfigFlag)
	}

	// 2. Текущая директория
	if _, err := os.Stat("config.yaml"); err == nil {
		return resolveAbsPath("config.yaml")
	}

	// 3. Директория бинарника
	if execPath, err := os.Executable(); err == nil {
		cfgPath := filepath.Join(filepath.Dir(execPath), "config.yaml")
		if _, err := os.Stat(cfgPath); err == nil {
			return cfgPath
		}
	}

	return ""
}

// InitializeConfig находит и загружает конфигурацию.
//
// Без файла конфигурация собирается из дефолтов и XYLVIR_* переменных.
// Правило 2: все настройки в YAML с поддержкой ENV-переменных.
func InitializeConfig(finder ConfigPathFinder) (*config.AppConfig, string, error) {
	cfgPath := finder.FindConfigPath()

	if cfgPath == "" {
		cfg, err := config.Parse(nil)
		if err != nil {
			return nil, "", fmt.Errorf("failed to build default config: %w", err)
		}
		utils.Info("No config file found, using defaults")
		return cfg, "", nil
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config from %s: %w", cfgPath, err)
	}
	return cfg, cfgPath, nil
}

// NewAnalyzer создаёт анализатор Icon Sense из секций models,
// image_processing и app.prompts_dir.
func NewAnalyzer(cfg *config.AppConfig) (*sense.Analyzer, error) {
	vision, chat, err := factory.NewSenseModels(cfg)
	if err != nil {
		return nil, err
	}
	return sense.NewAnalyzer(vision, chat, sense.AnalyzerConfig{
		PromptsDir: cfg.App.PromptsDir,
		RenderSize: cfg.ImageProcessing.RenderSize,
		MaxWidth:   cfg.ImageProcessing.MaxWidth,
	})
}

// NewSenseClient создаёт клиента Icon Sense по sense.mode.
//
// Клиент создаётся, даже если Icon Sense выключен в features:
// фичи переключаются на лету, а клиент ничего не делает, пока его не вызвали.
func NewSenseClient(cfg *config.AppConfig) (sense.Client, error) {
	switch cfg.Sense.Mode {
	case config.SenseModeHTTP:
		c, err := sense.NewHTTPClient(cfg.Sense)
		if err != nil {
			return nil, err
		}
		return c, nil

	case config.SenseModeLLM:
		a, err := NewAnalyzer(cfg)
		if err != nil {
			return nil, err
		}
		return sense.NewLLMClient(a, cfg.Sense), nil

	default:
		return nil, fmt.Errorf("unknown sense mode: %s", cfg.Sense.Mode)
	}
}

// Initialize создаёт и связывает все компоненты конвейера.
//
// emitter получает предупреждения по иконкам; может быть nil.
func Initialize(cfg *config.AppConfig, emitter events.Emitter) (*Components, error) {
	utils.Info("Initializing components", "sense_mode", cfg.Sense.Mode, "s3", cfg.S3.Enabled())

	client, err := NewSenseClient(cfg)
	if err != nil {
		utils.Error("Sense client creation failed", "error", err)
		return nil, fmt.Errorf("failed to create sense client: %w", err)
	}

	var store s3storage.Store
	if cfg.S3.Enabled() {
		s3Client, err := s3storage.New(cfg.S3)
		if err != nil {
			utils.Error("S3 client creation failed", "error", err)
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		utils.Info("S3 client initialized", "bucket", cfg.S3.Bucket)
		store = s3Client
	}

	var opts []enrich.Option
	if emitter != nil {
		opts = append(opts, enrich.WithEmitter(emitter))
	}

	return &Components{
		Config:   cfg,
		Sense:    client,
		Enricher: enrich.New(client, opts...),
		Store:    store,
	}, nil
}

// resolveAbsPath преобразует путь в абсолютный (если это не уже абсолютный путь).
func resolveAbsPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
