package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/icon"
)

// Manifest - содержимое icon-manifest.json.
type Manifest struct {
	Icons map[string]ManifestEntry `json:"icons"`
}

// ManifestEntry - одна иконка манифеста.
type ManifestEntry struct {
	Path   string   `json:"path"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Tags   []string `json:"tags,omitempty"`
}

// BuildManifest строит манифест для выбранных иконок.
func BuildManifest(icons []icon.Icon, opts Options) Manifest {
	return buildManifest(plan(icons, opts), opts)
}

func buildManifest(entries []entry, opts Options) Manifest {
	m := Manifest{Icons: make(map[string]ManifestEntry, len(entries))}
	for _, e := range entries {
		w, h := icon.ParseDimensions(e.icon.Dimensions)
		me := ManifestEntry{Path: "/" + e.file, Width: w, Height: h}
		if opts.IncludeTags && len(e.icon.Tags) > 0 {
			me.Tags = append([]string(nil), e.icon.Tags...)
		}
		m.Icons[e.key] = me
	}
	return m
}

var (
	hyphenLower = regexp.MustCompile(`-([a-z])`)
	identifier  = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// maxTagsPerIcon - сколько тегов иконки попадает в IconTags.
const maxTagsPerIcon = 5

// TypeScript возвращает содержимое icon-types.ts.
func TypeScript(icons []icon.Icon, opts Options) string {
	return typeScript(plan(icons, opts), opts)
}

func typeScript(entries []entry, opts Options) string {
	var b strings.Builder

	b.WriteString("export const IconNames = {\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "  %s: %q,\n", tsKey(e.key), e.key)
	}
	b.WriteString("} as const;\n\n")
	b.WriteString("export type IconName = keyof typeof IconNames;\n")

	if !opts.IncludeTags {
		return b.String()
	}

	seen := make(map[string]bool)
	var tags []string
	for _, e := range entries {
		for i, t := range e.icon.Tags {
			if i >= maxTagsPerIcon {
				break
			}
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}

	b.WriteString("\n// Tags are also exported as constants and types\n")
	b.WriteString("export const IconTags = {\n")
	for _, t := range tags {
		fmt.Fprintf(&b, "  %s: %q,\n", tsKey(t), t)
	}
	b.WriteString("} as const;\n\n")
	b.WriteString("export type IconTag = keyof typeof IconTags;\n")
	return b.String()
}

// tsKey превращает kebab-case в camelCase; не-идентификатор берётся в кавычки.
func tsKey(s string) string {
	key := hyphenLower.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[1:])
	})
	if identifier.MatchString(key) {
		return key
	}
	return fmt.Sprintf("%q", key)
}

var (
	xmlDecl = regexp.MustCompile(`<\?xml.*?\?>`)
	svgOpen = regexp.MustCompile(`<svg[^>]*>`)
	viewBox = regexp.MustCompile(`viewBox="[^"]*"`)
)

// sprite собирает все иконки в один SVG из <symbol> элементов.
// viewBox исходной иконки переносится в symbol.
func sprite(entries []entry) string {
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" style="display:none">` + "\n")
	for _, e := range entries {
		content := xmlDecl.ReplaceAllString(e.icon.Content, "")
		open := svgOpen.FindString(content)
		if open == "" {
			continue
		}
		symbol := fmt.Sprintf(`<symbol id="%s"`, e.key)
		if vb := viewBox.FindString(open); vb != "" {
			symbol += " " + vb
		}
		symbol += ">"

		content = strings.Replace(content, open, symbol, 1)
		if idx := strings.LastIndex(content, "</svg>"); idx >= 0 {
			content = content[:idx] + "</symbol>" + content[idx+len("</svg>"):]
		}
		b.WriteString("  " + strings.TrimSpace(content) + "\n")
	}
	b.WriteString("</svg>\n")
	return b.String()
}
