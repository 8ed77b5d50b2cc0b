package webhook

import "github.com/vasptech/vaspx-actions/internal/ratelimit"

// HandlerOption is a functional option for configuring Handler.
type HandlerOption func(*Handler)

// WithActionToken requires callers to pass token as the token query parameter.
// An empty token leaves the endpoint open.
func WithActionToken(token string) HandlerOption {
	return func(h *Handler) {
		h.token = token
	}
}

// WithSenderLimiter limits calls per conversation sender.
func WithSenderLimiter(limiter *ratelimit.KeyedLimiter) HandlerOption {
	return func(h *Handler) {
		h.limiter = limiter
	}
}
