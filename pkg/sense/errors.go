package sense

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

var (
	// ErrMalformedSuggestion - ответ не разобран или пуст.
	ErrMalformedSuggestion = errors.New("malformed suggestion")

	// ErrEmptyContent - визуальный анализ без SVG разметки.
	ErrEmptyContent = errors.New("icon content is empty")

	// ErrEmptyName - текстовый анализ без имени.
	ErrEmptyName = errors.New("icon name is empty")
)

// StatusError - не-2xx ответ сервиса.
type StatusError struct {
	StatusCode int
	Message    string // поле error из тела ответа
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("sense service error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("sense service error: status %d: %s", e.StatusCode, e.Message)
}

// ErrorType представляет тип ошибки при работе с Icon Sense.
type ErrorType int

const (
	ErrUnknown ErrorType = iota
	ErrAuthFailed
	ErrTimeout
	ErrNetwork
	ErrRateLimit
	ErrBadRequest
	ErrServer
	ErrMalformed
)

// String возвращает строковое представление типа ошибки.
func (e ErrorType) String() string {
	switch e {
	case ErrAuthFailed:
		return "authentication_failed"
	case ErrTimeout:
		return "timeout"
	case ErrNetwork:
		return "network_error"
	case ErrRateLimit:
		return "rate_limit"
	case ErrBadRequest:
		return "bad_request"
	case ErrServer:
		return "server_error"
	case ErrMalformed:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// HumanMessage возвращает человекочитаемое сообщение для типа ошибки.
func (e ErrorType) HumanMessage() string {
	switch e {
	case ErrAuthFailed:
		return "API ключ недействителен или отсутствует. Проверьте ключ модели в конфигурации."
	case ErrTimeout:
		return "Превышено время ожидания. Сервис Icon Sense не отвечает."
	case ErrNetwork:
		return "Сервис Icon Sense недоступен. Проверьте sense.base_url и сеть."
	case ErrRateLimit:
		return "Превышен лимит запросов. Уменьшите sense.rate_limit или размер батча."
	case ErrBadRequest:
		return "Сервис отклонил запрос: у иконки нет имени или SVG разметки."
	case ErrServer:
		return "Ошибка на стороне сервиса или модели."
	case ErrMalformed:
		return "Модель вернула ответ в неожиданном формате."
	default:
		return "Неизвестная ошибка Icon Sense."
	}
}

// ClassifyError классифицирует ошибку по типу для лучшей диагностики.
//
//   - StatusError: по HTTP статусу
//   - ErrMalformedSuggestion, ErrEmptyContent, ErrEmptyName
//   - timeout, deadline exceeded
//   - connection refused, no such host
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrUnknown
	}

	var se *StatusError
	if errors.As(err, &se) {
		switch {
		case se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden:
			return ErrAuthFailed
		case se.StatusCode == http.StatusTooManyRequests:
			return ErrRateLimit
		case se.StatusCode >= 400 && se.StatusCode < 500:
			return ErrBadRequest
		case se.StatusCode >= 500:
			return ErrServer
		}
	}

	switch {
	case errors.Is(err, ErrMalformedSuggestion):
		return ErrMalformed
	case errors.Is(err, ErrEmptyContent), errors.Is(err, ErrEmptyName):
		return ErrBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}

	errMsg := err.Error()
	errMsgLower := strings.ToLower(errMsg)

	if strings.Contains(errMsgLower, "timeout") {
		return ErrTimeout
	}
	if strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no such host") {
		return ErrNetwork
	}
	if strings.Contains(errMsg, "401") || strings.Contains(errMsgLower, "unauthorized") {
		return ErrAuthFailed
	}
	if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "Too Many Requests") {
		return ErrRateLimit
	}

	return ErrUnknown
}
