package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	base := GenerateOptions{Model: "base", Temperature: 0.5, MaxTokens: 100}

	got := Apply(base, WithModel("override"), WithFormat(FormatJSON), nil)

	assert.Equal(t, "override", got.Model)
	assert.Equal(t, 0.5, got.Temperature)
	assert.Equal(t, 100, got.MaxTokens)
	assert.Equal(t, FormatJSON, got.Format)

	// base не меняется
	assert.Equal(t, "base", base.Model)
}

func TestApply_LastWins(t *testing.T) {
	got := Apply(GenerateOptions{}, WithTemperature(0.1), WithTemperature(0.9), WithMaxTokens(42))
	assert.Equal(t, 0.9, got.Temperature)
	assert.Equal(t, 42, got.MaxTokens)
}
