// Package transform содержит чистые текстовые преобразования иконок:
// нормализацию имён в kebab-case, префиксы и подстановку цветов в SVG.
//
// Все функции детерминированы, не имеют побочных эффектов и работают
// с текстом, а не с разобранной разметкой.
package transform

import (
	"regexp"
	"strings"
)

var (
	camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	// Пробельные символы в том же объёме, что и \s в JS (включая Unicode).
	spaceRun    = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}_]+`)
	notKebab    = regexp.MustCompile(`[^a-zA-Z0-9-]`)
	hyphenRun   = regexp.MustCompile(`-+`)
	edgeHyphen  = regexp.MustCompile(`^-|-$`)
	cleanStrip  = regexp.MustCompile(`[^a-z0-9\s\v\p{Z}\x{FEFF}-]`)
	cleanSpaces = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
)

// Kebabify нормализует основу имени файла (без расширения) в kebab-case.
//
// Порядок шагов фиксирован:
//  1. "fooBar" → "foo-Bar";
//  2. пробелы и "_" → "-";
//  3. удаление всего вне [a-zA-Z0-9-];
//  4. нижний регистр;
//  5. схлопывание "--" → "-";
//  6. обрезка "-" по краям;
//  7. удаление точек.
//
// Kebabify(Kebabify(s)) == Kebabify(s).
func Kebabify(stem string) string {
	s := camelBoundary.ReplaceAllString(stem, "${1}-${2}")
	s = spaceRun.ReplaceAllString(s, "-")
	s = notKebab.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	s = hyphenRun.ReplaceAllString(s, "-")
	s = edgeHyphen.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, ".", "")
}

// ApplyPrefix добавляет префикс, если основа им ещё не начинается.
func ApplyPrefix(stem, prefix string) string {
	if strings.HasPrefix(stem, prefix) {
		return stem
	}
	return prefix + stem
}

// CleanKebabCase нормализует имя, пришедшее от сервиса распознавания:
// нижний регистр, только [a-z0-9-], пробелы → "-", без повторных и краевых "-".
func CleanKebabCase(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = cleanStrip.ReplaceAllString(s, "")
	s = cleanSpaces.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	return edgeHyphen.ReplaceAllString(s, "")
}

// CleanTags убирает пустые теги и приводит остальные к нижнему регистру.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, strings.ToLower(t))
	}
	return out
}

// SplitName делит имя файла по последней точке на основу и расширение.
//
// Имя без точки целиком считается основой: "menu" → ("menu", "").
func SplitName(name string) (stem, ext string) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name, ""
	}
	return name[:idx], name[idx+1:]
}

// JoinName собирает имя файла обратно.
func JoinName(stem, ext string) string {
	if ext == "" {
		return stem
	}
	return stem + "." + ext
}
