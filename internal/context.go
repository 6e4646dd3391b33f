package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextCheckoutKey ctxKey = "checkoutID"

func CheckoutIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if checkoutID, ok := ctx.Value(ContextCheckoutKey).(string); ok {
		return checkoutID
	}
	return ""
}

func ContextWithCheckoutID(ctx context.Context, checkoutID string) context.Context {
	return context.WithValue(ctx, ContextCheckoutKey, checkoutID)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
