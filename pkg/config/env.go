package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envOverrides - переменные окружения, переопределяющие файл.
// Незаданные переменные оставляют значения из YAML.
type envOverrides struct {
	SenseMode      string        `env:"XYLVIR_SENSE_MODE"`
	SenseBaseURL   string        `env:"XYLVIR_SENSE_BASE_URL"`
	SenseTimeout   time.Duration `env:"XYLVIR_SENSE_TIMEOUT"`
	SenseRateLimit int           `env:"XYLVIR_SENSE_RATE_LIMIT"`

	S3Endpoint  string `env:"XYLVIR_S3_ENDPOINT"`
	S3Bucket    string `env:"XYLVIR_S3_BUCKET"`
	S3AccessKey string `env:"XYLVIR_S3_ACCESS_KEY"`
	S3SecretKey string `env:"XYLVIR_S3_SECRET_KEY"`
	S3Prefix    string `env:"XYLVIR_S3_PREFIX"`

	Debug       *bool  `env:"XYLVIR_DEBUG"`
	Concurrency int    `env:"XYLVIR_CONCURRENCY"`
	PromptsDir  string `env:"XYLVIR_PROMPTS_DIR"`
}

// ApplyEnv применяет XYLVIR_* переменные поверх текущих значений.
func (c *AppConfig) ApplyEnv() error {
	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	setString(&c.Sense.Mode, raw.SenseMode)
	setString(&c.Sense.BaseURL, raw.SenseBaseURL)
	if raw.SenseTimeout > 0 {
		c.Sense.Timeout = raw.SenseTimeout
	}
	if raw.SenseRateLimit > 0 {
		c.Sense.RateLimit = raw.SenseRateLimit
	}

	setString(&c.S3.Endpoint, raw.S3Endpoint)
	setString(&c.S3.Bucket, raw.S3Bucket)
	setString(&c.S3.AccessKey, raw.S3AccessKey)
	setString(&c.S3.SecretKey, raw.S3SecretKey)
	setString(&c.S3.Prefix, raw.S3Prefix)

	if raw.Debug != nil {
		c.App.Debug = *raw.Debug
	}
	if raw.Concurrency > 0 {
		c.App.Concurrency = raw.Concurrency
	}
	setString(&c.App.PromptsDir, raw.PromptsDir)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
