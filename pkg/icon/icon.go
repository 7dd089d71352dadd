// Package icon описывает запись об SVG иконке и операции над коллекцией.
//
// Icon - единица работы конвейера обработки. Коллекция принадлежит вызывающему
// коду: конвейер получает снимок и возвращает новый снимок той же длины и
// в том же порядке.
package icon

import (
	"path/filepath"
	"strings"
)

// Icon - одна SVG иконка с метаданными, тегами и флагом выбора.
type Icon struct {
	Name       string   `json:"name" yaml:"name"`             // Имя файла с расширением
	Folder     string   `json:"folder" yaml:"folder"`         // Логическая группа (не меняется конвейером)
	Size       string   `json:"size" yaml:"size"`             // "1.2KB", описательное поле
	Dimensions string   `json:"dimensions" yaml:"dimensions"` // "24x24", описательное поле
	Path       string   `json:"path" yaml:"path"`             // Folder + Name
	Content    string   `json:"content" yaml:"content"`       // Сырой SVG, может быть пустым
	Selected   bool     `json:"selected" yaml:"selected"`     // Только выбранные иконки обрабатываются
	Tags       []string `json:"tags" yaml:"tags"`             // Семантически множество
}

// New создаёт иконку с путём, собранным из папки и имени.
func New(folder, name, content string) Icon {
	return Icon{
		Name:       name,
		Folder:     folder,
		Path:       JoinPath(folder, name),
		Content:    content,
		Size:       FormatFileSize(float64(len(content))),
		Dimensions: EstimateDimensions(content),
		Tags:       []string{},
	}
}

// Clone возвращает глубокую копию иконки (слайс тегов копируется).
//
// Используется для copy-on-write: исходная запись вызывающего не меняется.
func (ic Icon) Clone() Icon {
	out := ic
	if ic.Tags != nil {
		out.Tags = make([]string, len(ic.Tags))
		copy(out.Tags, ic.Tags)
	}
	return out
}

// Rename меняет имя и синхронно последний сегмент пути.
//
// Пара Name/Path никогда не должна расходиться.
func (ic *Icon) Rename(name string) {
	ic.Name = name
	if ic.Path == "" {
		ic.Path = JoinPath(ic.Folder, name)
		return
	}
	idx := strings.LastIndex(ic.Path, "/")
	if idx < 0 {
		ic.Path = name
		return
	}
	ic.Path = ic.Path[:idx+1] + name
}

// JoinPath собирает путь иконки из папки и имени через "/".
// Ведущий "/" папки сохраняется: "/icons" + "a.svg" → "/icons/a.svg".
func JoinPath(folder, name string) string {
	folder = filepath.ToSlash(folder)
	root := ""
	if strings.HasPrefix(folder, "/") {
		root = "/"
	}
	folder = strings.Trim(folder, "/")
	if folder == "" || folder == "." {
		return root + name
	}
	return root + folder + "/" + name
}

// CountSelected возвращает число выбранных иконок.
func CountSelected(icons []Icon) int {
	n := 0
	for _, ic := range icons {
		if ic.Selected {
			n++
		}
	}
	return n
}

// SelectAll возвращает копию коллекции, где выбраны все иконки.
func SelectAll(icons []Icon) []Icon {
	return mapSelection(icons, func(Icon) bool { return true })
}

// ClearSelection возвращает копию коллекции без выбранных иконок.
func ClearSelection(icons []Icon) []Icon {
	return mapSelection(icons, func(Icon) bool { return false })
}

// SelectMatching выбирает иконки, чей путь или имя совпадает с glob-паттерном.
//
// Сравнение регистронезависимое, как в классификаторе файлов.
// Невалидный паттерн возвращает filepath.ErrBadPattern.
func SelectMatching(icons []Icon, pattern string) ([]Icon, error) {
	pattern = strings.ToLower(pattern)
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, err
	}
	return mapSelection(icons, func(ic Icon) bool {
		if ok, _ := filepath.Match(pattern, strings.ToLower(ic.Name)); ok {
			return true
		}
		ok, _ := filepath.Match(pattern, strings.ToLower(ic.Path))
		return ok
	}), nil
}

func mapSelection(icons []Icon, pick func(Icon) bool) []Icon {
	out := make([]Icon, len(icons))
	for i, ic := range icons {
		c := ic.Clone()
		c.Selected = pick(ic)
		out[i] = c
	}
	return out
}
