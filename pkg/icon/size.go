package icon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FormatFileSize форматирует размер в байтах: "512B", "1.5KB", "2.0MB".
func FormatFileSize(bytes float64) string {
	switch {
	case bytes < 1024:
		return strconv.FormatFloat(bytes, 'f', -1, 64) + "B"
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1fKB", bytes/1024)
	default:
		return fmt.Sprintf("%.1fMB", bytes/(1024*1024))
	}
}

// ParseFileSize разбирает строку размера обратно в байты.
//
// "1.5KB" → 1536, "2MB" → 2097152, "300B" и "300" → 300.
// Нечисловое значение даёт 0: размер - оценка, а не инвариант.
func ParseFileSize(s string) float64 {
	s = strings.TrimSpace(s)
	num := leadingNumber.FindString(s)
	if num == "" {
		return 0
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	switch {
	case strings.Contains(s, "KB"):
		return v * 1024
	case strings.Contains(s, "MB"):
		return v * 1024 * 1024
	}
	return v
}

var (
	leadingNumber = regexp.MustCompile(`^[0-9]*\.?[0-9]+`)
	widthAttr     = regexp.MustCompile(`width=["'](\d+)`)
	heightAttr    = regexp.MustCompile(`height=["'](\d+)`)
)

// EstimateDimensions достаёт width/height из разметки, по умолчанию 24x24.
func EstimateDimensions(content string) string {
	width, height := "24", "24"
	if m := widthAttr.FindStringSubmatch(content); m != nil {
		width = m[1]
	}
	if m := heightAttr.FindStringSubmatch(content); m != nil {
		height = m[1]
	}
	return width + "x" + height
}

// ParseDimensions разбирает "WxH" в числа; ошибочные части дают 0.
func ParseDimensions(d string) (width, height int) {
	parts := strings.SplitN(d, "x", 2)
	width, _ = strconv.Atoi(parts[0])
	if len(parts) == 2 {
		height, _ = strconv.Atoi(parts[1])
	}
	return width, height
}
