// Package net carries request-scoped identifiers between transport and logging
package net

import (
	"context"

	"doomscroll/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequest stores the request id where both chi and the logger can see it
func WithRequest(ctx context.Context, reqID, userID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return logger.WithRequest(ctx, reqID, userID)
}

// RequestID prefers chi's id and falls back to the logger's
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return logger.RequestID(ctx)
}
