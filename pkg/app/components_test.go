package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/config"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/sense"
)

type fixedFinder string

func (f fixedFinder) FindConfigPath() string { return string(f) }

func TestInitializeConfig_NoFileUsesDefaults(t *testing.T) {
	cfg, path, err := InitializeConfig(fixedFinder(""))
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, config.SenseModeHTTP, cfg.Sense.Mode)
	assert.Equal(t, 60, cfg.Batch.Visual.Size)
}

func TestInitializeConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch:\n  text:\n    size: 50\n"), 0o644))

	cfg, got, err := InitializeConfig(&DefaultConfigPathFinder{ConfigFlag: path})
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, 50, cfg.Batch.Text.Size)
}

func TestInitializeConfig_MissingFlagFile(t *testing.T) {
	_, _, err := InitializeConfig(&DefaultConfigPathFinder{ConfigFlag: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestInitialize_HTTPMode(t *testing.T) {
	cfg := config.Default()

	comps, err := Initialize(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &sense.HTTPClient{}, comps.Sense)
	assert.NotNil(t, comps.Enricher)
	assert.Nil(t, comps.Store)
}

func TestInitialize_LLMMode(t *testing.T) {
	cfg := config.Default()
	cfg.Sense.Mode = config.SenseModeLLM
	cfg.Models = config.ModelsConfig{
		DefaultVision: "vision",
		Definitions: map[string]config.ModelDef{
			"vision": {Provider: "openai", ModelName: "gpt-4o-mini", APIKey: "test"},
		},
	}

	comps, err := Initialize(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &sense.LLMClient{}, comps.Sense)
}

func TestInitialize_UnknownProvider(t *testing.T) {
	cfg := config.Default()
	cfg.Sense.Mode = config.SenseModeLLM
	cfg.Models = config.ModelsConfig{
		DefaultVision: "vision",
		Definitions: map[string]config.ModelDef{
			"vision": {Provider: "carrier-pigeon", ModelName: "coo"},
		},
	}

	_, err := Initialize(cfg, nil)
	assert.ErrorContains(t, err, "unknown provider type")
}

func TestInitialize_S3Store(t *testing.T) {
	cfg := config.Default()
	cfg.S3 = config.S3Config{Endpoint: "localhost:9000", Bucket: "icons"}

	comps, err := Initialize(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, comps.Store)
}
