package sense

import "golang.org/x/time/rate"

// newLimiter переводит лимит в запросах/минуту в rate.Limiter.
// rateLimit <= 0 отключает ограничение.
func newLimiter(rateLimit, burst int) *rate.Limiter {
	if rateLimit <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	if burst <= 0 {
		burst = 1
	}
	ratePerSec := float64(rateLimit) / 60.0
	return rate.NewLimiter(rate.Limit(ratePerSec), burst)
}
