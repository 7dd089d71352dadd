// Загрузка и Рендер - чтение файла и text/template.

package prompt

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/llm"
)

var funcs = template.FuncMap{
	"join": strings.Join,
}

// Load загружает и парсит YAML файл промпта
func Load(path string) (*PromptFile, error) {
	// 1. Проверяем наличие
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("prompt file not found: %s", path)
	}

	// 2. Читаем байты
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	return Parse(data)
}

// Parse парсит YAML промпта из памяти.
func Parse(data []byte) (*PromptFile, error) {
	var pf PromptFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("yaml parse error: %w", err)
	}
	if len(pf.Messages) == 0 {
		return nil, fmt.Errorf("prompt has no messages")
	}
	return &pf, nil
}

// LoadOrDefault ищет <dir>/<name>.yaml и при отсутствии файла
// возвращает встроенный промпт. Пустой dir сразу дает встроенный.
func LoadOrDefault(dir, name string) (*PromptFile, error) {
	if dir != "" {
		path := filepath.Join(dir, name+".yaml")
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(name)
}

// RenderMessages принимает данные (struct или map) и возвращает готовые сообщения
// где все {{.Field}} заменены на значения.
func (pf *PromptFile) RenderMessages(data interface{}) ([]Message, error) {
	rendered := make([]Message, len(pf.Messages))

	for i, msg := range pf.Messages {
		tmpl, err := template.New("msg").Funcs(funcs).Parse(msg.Content)
		if err != nil {
			return nil, fmt.Errorf("template parse error in message #%d (%s): %w", i, msg.Role, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("template execute error in message #%d: %w", i, err)
		}

		rendered[i] = Message{
			Role:    msg.Role,
			Content: buf.String(),
		}
	}

	return rendered, nil
}

// Options переводит config промпта в опции генерации.
// Незаданные поля не попадают в результат.
func (pf *PromptFile) Options() []llm.GenerateOption {
	var opts []llm.GenerateOption
	if pf.Config.Model != "" {
		opts = append(opts, llm.WithModel(pf.Config.Model))
	}
	if pf.Config.Temperature > 0 {
		opts = append(opts, llm.WithTemperature(pf.Config.Temperature))
	}
	if pf.Config.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(pf.Config.MaxTokens))
	}
	if pf.Config.Format != "" {
		opts = append(opts, llm.WithFormat(pf.Config.Format))
	}
	return opts
}

// ToLLM конвертирует отрендеренные сообщения в llm.Message.
// images прикрепляются к последнему user-сообщению.
func ToLLM(msgs []Message, images ...string) []llm.Message {
	out := make([]llm.Message, len(msgs))
	lastUser := -1
	for i, m := range msgs {
		out[i] = llm.Message{Role: llm.Role(m.Role), Content: m.Content}
		if out[i].Role == llm.RoleUser {
			lastUser = i
		}
	}
	if len(images) > 0 && lastUser >= 0 {
		out[lastUser].Images = images
	}
	return out
}
