package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeLLMJSON разбирает JSON-объект из ответа модели в dest.
//
// Модели часто оборачивают JSON в ```json блоки или добавляют пояснения
// вокруг него, поэтому сначала снимается markdown-обёртка, затем
// вырезается первый сбалансированный {...}.
func DecodeLLMJSON(raw string, dest any) error {
	obj := extractObject(stripFence(raw))
	if obj == "" {
		return fmt.Errorf("no JSON object in model output")
	}
	if err := json.Unmarshal([]byte(obj), dest); err != nil {
		return fmt.Errorf("decode model output: %w", err)
	}
	return nil
}

// stripFence удаляет ```json ... ``` вокруг текста.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Язык блока: json, JSON, Json
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractObject возвращает первый сбалансированный JSON-объект.
// Скобки внутри строковых литералов не учитываются.
func extractObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
