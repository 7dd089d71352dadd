package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/features"
)

// AppConfig - корневая структура конфигурации.
// Она зеркалит структуру config.yaml.
type AppConfig struct {
	Models          ModelsConfig      `yaml:"models"`
	Sense           SenseConfig       `yaml:"sense"`
	Batch           BatchConfig       `yaml:"batch"`
	Features        features.Features `yaml:"features"`
	ImageProcessing ImageProcConfig   `yaml:"image_processing"`
	S3              S3Config          `yaml:"s3"`
	Export          ExportConfig      `yaml:"export"`
	App             AppSpecific       `yaml:"app"`
}

// ModelsConfig - настройки AI моделей.
type ModelsConfig struct {
	DefaultVision string              `yaml:"default_vision"` // Алиас для визуального анализа
	DefaultChat   string              `yaml:"default_chat"`   // Алиас для тегирования по имени
	Definitions   map[string]ModelDef `yaml:"definitions"`    // Словарь определений моделей
}

// ModelDef - параметры конкретной модели.
type ModelDef struct {
	Provider    string        `yaml:"provider"`   // "openai", "openrouter", "zai"
	ModelName   string        `yaml:"model_name"` // Реальное имя в API
	APIKey      string        `yaml:"api_key"`    // Поддерживает ${VAR}
	BaseURL     string        `yaml:"base_url"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"` // "60s", "1m"
}

// SenseConfig - настройки клиента Icon Sense.
type SenseConfig struct {
	Mode      string        `yaml:"mode"`       // "http" (удалённый сервис) или "llm" (прямой вызов модели)
	BaseURL   string        `yaml:"base_url"`   // Базовый URL сервиса для mode=http
	Timeout   time.Duration `yaml:"timeout"`    // Timeout одного запроса
	RateLimit int           `yaml:"rate_limit"` // Запросов в минуту
	Burst     int           `yaml:"burst"`      // Burst для rate limiter
}

const (
	SenseModeHTTP = "http"
	SenseModeLLM  = "llm"
)

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *SenseConfig) GetDefaults() SenseConfig {
	result := *c

	if result.Mode == "" {
		result.Mode = SenseModeHTTP
	}
	if result.BaseURL == "" {
		result.BaseURL = "http://localhost:3000"
	}
	if result.Timeout == 0 {
		result.Timeout = 60 * time.Second
	}
	if result.RateLimit == 0 {
		result.RateLimit = 60 // совпадает с визуальной политикой батчей
	}
	if result.Burst == 0 {
		result.Burst = 5
	}

	return result
}

// PolicyConfig - размер батча и пауза между батчами.
type PolicyConfig struct {
	Size  int           `yaml:"size"`
	Delay time.Duration `yaml:"delay"`
}

// BatchConfig - политики батчей для трёх режимов Icon Sense.
type BatchConfig struct {
	Visual PolicyConfig `yaml:"visual"` // визуальный анализ (имя + теги или только имя)
	Text   PolicyConfig `yaml:"text"`   // только теги по имени
	Plain  PolicyConfig `yaml:"plain"`  // без inference
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
//
// Нулевая пауза считается незаданной. Отрицательная означает "без паузы".
func (c *BatchConfig) GetDefaults() BatchConfig {
	result := *c

	result.Visual = result.Visual.withDefaults(60, 60*time.Second)
	result.Text = result.Text.withDefaults(200, 2*time.Second)
	result.Plain = result.Plain.withDefaults(500, time.Second)

	return result
}

func (p PolicyConfig) withDefaults(size int, delay time.Duration) PolicyConfig {
	if p.Size <= 0 {
		p.Size = size
	}
	if p.Delay == 0 {
		p.Delay = delay
	}
	if p.Delay < 0 {
		p.Delay = 0
	}
	return p
}

// ImageProcConfig - растеризация SVG перед визуальным анализом.
type ImageProcConfig struct {
	RenderSize int `yaml:"render_size"` // Сторона квадрата рендера
	MaxWidth   int `yaml:"max_width"`   // Даунскейл перед отправкой в модель
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *ImageProcConfig) GetDefaults() ImageProcConfig {
	result := *c
	if result.RenderSize == 0 {
		result.RenderSize = 400
	}
	if result.MaxWidth == 0 {
		result.MaxWidth = 400
	}
	return result
}

// S3Config - настройки объектного хранилища.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"` // Поддерживает ${VAR}
	SecretKey string `yaml:"secret_key"` // Поддерживает ${VAR}
	UseSSL    bool   `yaml:"use_ssl"`
	Prefix    string `yaml:"prefix"` // Префикс ключей с иконками
}

// Enabled сообщает, настроено ли хранилище.
func (c S3Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// ExportConfig - состав экспортируемого архива.
type ExportConfig struct {
	IncludeJSON       bool `yaml:"include_json"`
	IncludeTypeScript bool `yaml:"include_typescript"`
	FlatOutput        bool `yaml:"flat_output"`
	IncludeTags       bool `yaml:"include_tags"`
	Sprite            bool `yaml:"sprite"` // icons-sprite.svg из <symbol> элементов
}

// AppSpecific - общие настройки приложения.
type AppSpecific struct {
	Debug       bool   `yaml:"debug"`
	PromptsDir  string `yaml:"prompts_dir"`
	Concurrency int    `yaml:"concurrency"` // Параллельных иконок внутри батча
	LogPrefix   string `yaml:"log_prefix"`
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *AppSpecific) GetDefaults() AppSpecific {
	result := *c
	if result.Concurrency <= 0 {
		result.Concurrency = 8
	}
	if result.LogPrefix == "" {
		result.LogPrefix = "xylvir"
	}
	return result
}

// Default возвращает конфигурацию без файла: только дефолты.
func Default() *AppConfig {
	cfg := base()
	cfg.applyDefaults()
	return &cfg
}

// base - значения до парсинга YAML: отсутствующие в файле ключи их сохраняют.
func base() AppConfig {
	return AppConfig{
		Features: features.Defaults(),
		Export: ExportConfig{
			IncludeJSON:       true,
			IncludeTypeScript: true,
			IncludeTags:       true,
		},
	}
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(rawBytes)
}

// Parse разбирает YAML из памяти. Load = ReadFile + Parse.
func Parse(raw []byte) (*AppConfig, error) {
	// 1. Подставляем переменные окружения.
	// os.ExpandEnv заменяет ${VAR} или $VAR на значение из системы.
	contentWithEnv := os.ExpandEnv(string(raw))

	// 2. Парсим YAML поверх базовых значений
	cfg := base()
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	// 3. XYLVIR_* переопределяют файл
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	// 4. Валидируем критические настройки
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	c.Sense = c.Sense.GetDefaults()
	c.Batch = c.Batch.GetDefaults()
	c.ImageProcessing = c.ImageProcessing.GetDefaults()
	c.App = c.App.GetDefaults()
	c.Features = features.Normalize(c.Features)
}

// validate проверяет обязательные поля.
func (c *AppConfig) validate() error {
	switch c.Sense.Mode {
	case SenseModeHTTP:
		if c.Sense.BaseURL == "" {
			return fmt.Errorf("sense.base_url is required for mode %q", SenseModeHTTP)
		}
	case SenseModeLLM:
		if _, ok := c.GetVisionModel(""); !ok {
			return fmt.Errorf("sense mode %q requires models.default_vision to be defined", SenseModeLLM)
		}
	default:
		return fmt.Errorf("unknown sense.mode %q (expected %q or %q)", c.Sense.Mode, SenseModeHTTP, SenseModeLLM)
	}

	if c.Models.DefaultVision != "" {
		if _, ok := c.Models.Definitions[c.Models.DefaultVision]; !ok {
			return fmt.Errorf("default_vision model '%s' is not defined in definitions", c.Models.DefaultVision)
		}
	}
	if c.Models.DefaultChat != "" {
		if _, ok := c.Models.Definitions[c.Models.DefaultChat]; !ok {
			return fmt.Errorf("default_chat model '%s' is not defined in definitions", c.Models.DefaultChat)
		}
	}

	if c.S3.Bucket != "" && c.S3.Endpoint == "" {
		return fmt.Errorf("s3.endpoint is required when s3.bucket is set")
	}
	return nil
}

// Helper методы для удобства доступа

// GetVisionModel возвращает модель визуального анализа по умолчанию или по имени.
func (c *AppConfig) GetVisionModel(name string) (ModelDef, bool) {
	if name == "" {
		name = c.Models.DefaultVision
	}
	m, ok := c.Models.Definitions[name]
	return m, ok
}

// GetChatModel возвращает текстовую модель. Без default_chat
// используется визуальная модель.
func (c *AppConfig) GetChatModel(name string) (ModelDef, bool) {
	if name == "" {
		name = c.Models.DefaultChat
	}
	if name == "" {
		return c.GetVisionModel("")
	}
	m, ok := c.Models.Definitions[name]
	return m, ok
}
