package icon

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// DefaultFolder - логическая папка, в которую собираются все иконки.
const DefaultFolder = "icons"

// File - сырой файл, найденный источником (локальная папка, S3).
type File struct {
	RelPath string // Путь относительно корня сканирования, через "/"
	Content []byte
}

// LogEntry - строка журнала сканирования.
type LogEntry struct {
	Type    string // "success", "warning", "error"
	Message string
	Details string
}

// Stats - сводка сбора коллекции.
type Stats struct {
	TotalFiles   int
	TotalFolders int
	Duplicates   int
	Errors       int
	UniqueTags   int
}

// Collection - результат сбора: иконки в порядке обхода, статистика и журнал.
type Collection struct {
	Icons []Icon
	Stats Stats
	Log   []LogEntry
}

// Collect собирает иконки из списка файлов.
//
// Правила:
//   - дубликаты по имени файла пропускаются (остаётся первый);
//   - файл без "<svg" или "</svg>" считается ошибкой;
//   - теги берутся из сегментов папки файла;
//   - все иконки попадают в DefaultFolder и не выбраны.
func Collect(files []File) Collection {
	var out Collection
	folders := make(map[string]struct{})
	seen := make(map[string]string)
	allTags := make(map[string]struct{})

	for _, f := range files {
		rel := strings.TrimPrefix(path.Clean("/"+f.RelPath), "/")
		name := path.Base(rel)
		dir := path.Dir(rel)
		if dir == "." {
			dir = ""
		}
		folder := "/" + dir
		folders[folder] = struct{}{}

		if prev, ok := seen[name]; ok {
			out.Stats.Duplicates++
			out.Log = append(out.Log, LogEntry{
				Type:    "warning",
				Message: "Duplicate: " + name,
				Details: fmt.Sprintf("Already exists at %s, new location: %s", prev, folder),
			})
			continue
		}
		seen[name] = folder

		content := string(f.Content)
		if !strings.Contains(content, "<svg") || !strings.Contains(content, "</svg>") {
			out.Stats.Errors++
			out.Log = append(out.Log, LogEntry{
				Type:    "error",
				Message: "Error: " + name,
				Details: "Invalid SVG format",
			})
			continue
		}

		tags := folderTags(folder)
		for _, t := range tags {
			allTags[t] = struct{}{}
		}

		ic := New(DefaultFolder, name, content)
		ic.Path = "/" + DefaultFolder + "/" + name
		ic.Tags = tags
		out.Icons = append(out.Icons, ic)

		details := "individual file"
		if len(tags) > 0 {
			details = "with tags: " + strings.Join(tags, ", ")
		}
		out.Log = append(out.Log, LogEntry{Type: "success", Message: "Collected: " + name, Details: details})
	}

	out.Stats.TotalFiles = len(out.Icons)
	out.Stats.TotalFolders = len(folders)
	out.Stats.UniqueTags = len(allTags)
	return out
}

// CollectFS обходит файловую систему и собирает все *.svg файлы.
//
// Порядок обхода лексикографический (fs.WalkDir), поэтому результат детерминирован.
func CollectFS(fsys fs.FS) (Collection, error) {
	var files []File
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(path.Ext(p), ".svg") {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		files = append(files, File{RelPath: p, Content: data})
		return nil
	})
	if err != nil {
		return Collection{}, fmt.Errorf("walk icons: %w", err)
	}
	return Collect(files), nil
}

func folderTags(folder string) []string {
	tags := []string{}
	for _, part := range strings.Split(strings.TrimPrefix(folder, "/"), "/") {
		if strings.TrimSpace(part) != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

// UniqueTags возвращает отсортированный список всех тегов коллекции.
func UniqueTags(icons []Icon) []string {
	set := make(map[string]struct{})
	for _, ic := range icons {
		for _, t := range ic.Tags {
			set[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
