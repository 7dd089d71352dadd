package sense

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/config"
	"github.com/roastedbeans/xylvir-assets-manager/pkg/icon"
)

// LLMClient вызывает модель напрямую, без промежуточного сервиса.
type LLMClient struct {
	analyzer *Analyzer
	limiter  *rate.Limiter
}

var _ Client = (*LLMClient)(nil)

// NewLLMClient оборачивает Analyzer в Client с rate limiter из sense секции.
func NewLLMClient(a *Analyzer, cfg config.SenseConfig) *LLMClient {
	cfg = cfg.GetDefaults()
	return &LLMClient{
		analyzer: a,
		limiter:  newLimiter(cfg.RateLimit, cfg.Burst),
	}
}

// Suggest анализирует иконку моделью.
func (c *LLMClient) Suggest(ctx context.Context, ic icon.Icon, visual bool) (Suggestion, error) {
	_, req := RequestFor(ic, visual)

	if err := c.limiter.Wait(ctx); err != nil {
		return Suggestion{}, fmt.Errorf("rate limiter wait: %w", err)
	}

	s, err := c.analyzer.Analyze(ctx, req, visual)
	if err != nil {
		return Suggestion{}, err
	}
	if err := s.Validate(); err != nil {
		return Suggestion{}, err
	}
	return s, nil
}
