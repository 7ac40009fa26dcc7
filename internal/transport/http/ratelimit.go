package http

import "golang.org/x/time/rate"

// rateLimiter throttles the frames of a single connection. A nil limiter
// allows everything.
type rateLimiter struct {
	lim *rate.Limiter
}

func newRateLimiter(perSecond float64, burst int) *rateLimiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{lim: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (r *rateLimiter) allow() bool {
	if r == nil {
		return true
	}
	return r.lim.Allow()
}
