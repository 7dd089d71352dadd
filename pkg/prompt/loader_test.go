package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/llm"
)

func TestDefault_IconSense(t *testing.T) {
	pf, err := Default(IconSense)
	require.NoError(t, err)
	assert.Equal(t, llm.FormatJSON, pf.Config.Format)

	msgs, err := pf.RenderMessages(SenseData{Name: "menu icon", Tags: []string{"nav", "ui"}})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Contains(t, msgs[1].Content, `Consider the provided name "menu icon"`)
	assert.Contains(t, msgs[1].Content, `"nav, ui"`)
}

func TestDefault_IconSenseWithoutHints(t *testing.T) {
	pf, err := Default(IconSense)
	require.NoError(t, err)

	msgs, err := pf.RenderMessages(SenseData{})
	require.NoError(t, err)
	assert.NotContains(t, msgs[1].Content, "Consider the provided name")
	assert.NotContains(t, msgs[1].Content, "Consider the provided tags")
}

func TestDefault_TagSense(t *testing.T) {
	pf, err := Default(TagSense)
	require.NoError(t, err)

	msgs, err := pf.RenderMessages(SenseData{Name: "ic_home"})
	require.NoError(t, err)
	assert.Contains(t, msgs[1].Content, `named "ic_home"`)
}

func TestDefault_Unknown(t *testing.T) {
	_, err := Default("nope")
	assert.Error(t, err)
}

func TestLoadOrDefault_PrefersFile(t *testing.T) {
	dir := t.TempDir()
	custom := "config: {format: json_object, model: custom}\nmessages:\n  - role: user\n    content: \"custom {{.Name}}\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, TagSense+".yaml"), []byte(custom), 0644))

	pf, err := LoadOrDefault(dir, TagSense)
	require.NoError(t, err)
	msgs, err := pf.RenderMessages(SenseData{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, "custom x", msgs[0].Content)

	// Файла нет - встроенный
	pf, err = LoadOrDefault(dir, IconSense)
	require.NoError(t, err)
	assert.Len(t, pf.Messages, 2)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("messages: []"))
	assert.Error(t, err)

	_, err = Parse([]byte(":::"))
	assert.Error(t, err)
}

func TestRenderMessages_BadTemplate(t *testing.T) {
	pf := &PromptFile{Messages: []Message{{Role: "user", Content: "{{.Name"}}}
	_, err := pf.RenderMessages(SenseData{})
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	pf := &PromptFile{Config: PromptConfig{Temperature: 0.3, Format: llm.FormatJSON}}
	got := llm.Apply(llm.GenerateOptions{Model: "m", MaxTokens: 10}, pf.Options()...)

	assert.Equal(t, "m", got.Model)
	assert.Equal(t, 10, got.MaxTokens)
	assert.Equal(t, 0.3, got.Temperature)
	assert.Equal(t, llm.FormatJSON, got.Format)
}

func TestToLLM_AttachesImagesToLastUser(t *testing.T) {
	msgs := []Message{{Role: "system", Content: "s"}, {Role: "user", Content: "u"}}
	out := ToLLM(msgs, "data:image/png;base64,AA==")

	require.Len(t, out, 2)
	assert.Empty(t, out[0].Images)
	assert.Equal(t, llm.RoleUser, out[1].Role)
	assert.Equal(t, []string{"data:image/png;base64,AA=="}, out[1].Images)
}
