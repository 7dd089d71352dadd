package transform

import (
	"regexp"
	"strings"
)

// RecolorOptions - подфлаги раскраски.
type RecolorOptions struct {
	ReplaceBlack  bool
	RemoveWhiteBg bool
	AddRootFill   bool
}

const currentColor = "currentColor"

var (
	// Порядок замен значим и совпадает с порядком применения.
	blackTokens = []string{
		`fill="#000000"`, `stroke="#000000"`,
		`fill="#000"`, `stroke="#000"`,
		`fill="black"`, `stroke="black"`,
	}
	whiteFillTokens = []string{`fill="#ffffff"`, `fill="#fff"`, `fill="white"`}

	rootTag = regexp.MustCompile(`<svg([^>]*)>`)
)

// Recolor применяет цепочку текстовых замен к SVG разметке.
//
//  1. ReplaceBlack: чёрные fill/stroke → currentColor; иначе обратная замена
//     currentColor → black.
//  2. RemoveWhiteBg: белые fill → none; иначе fill="none" → fill="white".
//  3. AddRootFill: если нигде нет "fill=", корневой <svg> получает
//     fill="currentColor".
//
// Выключенный флаг не пропускает шаг, а откатывает его действие.
func Recolor(content string, opts RecolorOptions) string {
	if opts.ReplaceBlack {
		for _, tok := range blackTokens {
			attr := tok[:strings.Index(tok, "=")]
			content = strings.ReplaceAll(content, tok, attr+`="`+currentColor+`"`)
		}
	} else {
		content = strings.ReplaceAll(content, `fill="currentColor"`, `fill="black"`)
		content = strings.ReplaceAll(content, `stroke="currentColor"`, `stroke="black"`)
	}

	if opts.RemoveWhiteBg {
		for _, tok := range whiteFillTokens {
			content = strings.ReplaceAll(content, tok, `fill="none"`)
		}
	} else {
		content = strings.ReplaceAll(content, `fill="none"`, `fill="white"`)
	}

	if opts.AddRootFill && !strings.Contains(content, "fill=") && strings.Contains(content, "<svg") {
		content = addRootFill(content)
	}

	return content
}

// addRootFill вставляет fill в первый открывающий тег <svg>.
func addRootFill(content string) string {
	loc := rootTag.FindStringSubmatchIndex(content)
	if loc == nil {
		return content
	}
	attrs := content[loc[2]:loc[3]]
	return content[:loc[0]] + "<svg" + attrs + ` fill="currentColor">` + content[loc[1]:]
}
