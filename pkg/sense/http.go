package sense

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/config"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/icon"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/utils"
)

// maxResponseBytes ограничивает чтение ответа сервиса.
const maxResponseBytes = 1 << 20

// Doer интерфейс для выполнения HTTP запросов.
//
// Позволяет мокировать HTTP клиент в тестах (Rule 9).
// Стандартный *http.Client реализует этот интерфейс.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClient - клиент удалённого сервиса Icon Sense.
//
// Запросы проходят через rate limiter. Ретраев нет: пайплайн
// делает ровно один вызов на иконку и считает ошибку предупреждением.
type HTTPClient struct {
	baseURL string
	doer    Doer
	limiter *rate.Limiter
}

var _ Client = (*HTTPClient)(nil)

// HTTPOption настраивает HTTPClient.
type HTTPOption func(*HTTPClient)

// WithDoer подменяет HTTP клиент.
func WithDoer(d Doer) HTTPOption {
	return func(c *HTTPClient) {
		c.doer = d
	}
}

// NewHTTPClient создает клиент из конфигурации.
// Поля с нулевыми значениями используют дефолты через GetDefaults().
func NewHTTPClient(cfg config.SenseConfig, opts ...HTTPOption) (*HTTPClient, error) {
	cfg = cfg.GetDefaults()
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("sense.base_url is required")
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		doer:    &http.Client{Timeout: cfg.Timeout},
		limiter: newLimiter(cfg.RateLimit, cfg.Burst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Suggest отправляет иконку в сервис и нормализует ответ.
func (c *HTTPClient) Suggest(ctx context.Context, ic icon.Icon, visual bool) (Suggestion, error) {
	if visual && strings.TrimSpace(ic.Content) == "" {
		return Suggestion{}, ErrEmptyContent
	}
	path, req := RequestFor(ic, visual)

	// 1. Ждем разрешения от лимитера
	if err := c.limiter.Wait(ctx); err != nil {
		return Suggestion{}, fmt.Errorf("rate limiter wait: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Suggestion{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return Suggestion{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return Suggestion{}, fmt.Errorf("sense request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Suggestion{}, fmt.Errorf("read response: %w", err)
	}

	utils.Debug("Sense response",
		"path", path,
		"icon", ic.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	// 2. Не-2xx: тело {error, name:"", tags:[]}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var failure struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &failure)
		return Suggestion{}, &StatusError{StatusCode: resp.StatusCode, Message: failure.Error}
	}

	var s Suggestion
	if err := json.Unmarshal(raw, &s); err != nil {
		return Suggestion{}, fmt.Errorf("%w: %v", ErrMalformedSuggestion, err)
	}

	s = s.Normalize()
	if err := s.Validate(); err != nil {
		return Suggestion{}, err
	}
	return s, nil
}
