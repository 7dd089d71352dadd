package tui

import "github.com/charmbracelet/lipgloss"

// ColorScheme определяет цвета элементов прогресс-экрана.
// Каждое поле - это lipgloss.Color (hex, ANSI или named color).
type ColorScheme struct {
	Title   lipgloss.Color
	Status  lipgloss.Color // Строка "Batch N/M"
	Info    lipgloss.Color // Системные сообщения (серый)
	Warning lipgloss.Color
	Error   lipgloss.Color
	Success lipgloss.Color
	Border  lipgloss.Color
}

// ColorSchemes предоставляет предустановленные цветовые схемы.
var ColorSchemes = map[string]ColorScheme{
	"default": {
		Title:   lipgloss.Color("86"),
		Status:  lipgloss.Color("252"),
		Info:    lipgloss.Color("242"),
		Warning: lipgloss.Color("214"),
		Error:   lipgloss.Color("196"),
		Success: lipgloss.Color("42"),
		Border:  lipgloss.Color("240"),
	},
	"dark": {
		Title:   lipgloss.Color("14"),
		Status:  lipgloss.Color("15"),
		Info:    lipgloss.Color("8"),
		Warning: lipgloss.Color("11"),
		Error:   lipgloss.Color("9"),
		Success: lipgloss.Color("10"),
		Border:  lipgloss.Color("4"),
	},
	"light": {
		Title:   lipgloss.Color("31"),
		Status:  lipgloss.Color("0"),
		Info:    lipgloss.Color("8"),
		Warning: lipgloss.Color("130"),
		Error:   lipgloss.Color("1"),
		Success: lipgloss.Color("28"),
		Border:  lipgloss.Color("8"),
	},
	"dracula": {
		Title:   lipgloss.Color("#8be9fd"),
		Status:  lipgloss.Color("#f8f8f2"),
		Info:    lipgloss.Color("#6272a4"),
		Warning: lipgloss.Color("#f1fa8c"),
		Error:   lipgloss.Color("#ff5555"),
		Success: lipgloss.Color("#50fa7b"),
		Border:  lipgloss.Color("#44475a"),
	},
}

// DefaultColorScheme возвращает схему по умолчанию.
func DefaultColorScheme() ColorScheme {
	return ColorSchemes["default"]
}

// GetColorScheme возвращает цветовую схему по имени.
//
// Если схема не найдена, возвращает default.
func GetColorScheme(name string) ColorScheme {
	if scheme, ok := ColorSchemes[name]; ok {
		return scheme
	}
	return DefaultColorScheme()
}

// styles - готовые lipgloss стили схемы.
type styles struct {
	title   lipgloss.Style
	status  lipgloss.Style
	info    lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	success lipgloss.Style
	panel   lipgloss.Style
}

func newStyles(c ColorScheme) styles {
	return styles{
		title:   lipgloss.NewStyle().Foreground(c.Title).Bold(true),
		status:  lipgloss.NewStyle().Foreground(c.Status),
		info:    lipgloss.NewStyle().Foreground(c.Info),
		warning: lipgloss.NewStyle().Foreground(c.Warning),
		err:     lipgloss.NewStyle().Foreground(c.Error).Bold(true),
		success: lipgloss.NewStyle().Foreground(c.Success).Bold(true),
		panel:   lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(c.Border).Padding(0, 1),
	}
}
