package prompt

import (
	"embed"
	"fmt"
)

// Имена встроенных промптов.
const (
	IconSense = "icon_sense" // визуальный анализ: имя + теги по картинке
	TagSense  = "tag_sense"  // теги и имя только по текущему имени
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Default возвращает встроенный промпт по имени.
func Default(name string) (*PromptFile, error) {
	data, err := defaultsFS.ReadFile("defaults/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown prompt %q", name)
	}
	return Parse(data)
}
