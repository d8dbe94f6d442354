package service

import (
	"context"
	"io"

	"github.com/purposeful/purposeful-backend/internal/websocket"
)

// ReactionCounter caches per-idea reaction totals
type ReactionCounter interface {
	Increment(ctx context.Context, ideaID string) error
	Decrement(ctx context.Context, ideaID string) error
	Get(ctx context.Context, ideaID string) (count int64, ok bool, err error)
	Set(ctx context.Context, ideaID string, count int64) error
	Delete(ctx context.Context, ideaID string) error
}

// Notifier pushes a message to an account's open connections
type Notifier interface {
	Notify(userID string, msgType websocket.MessageType, payload interface{})
}

// ImageStore persists uploaded images and returns their public URL
type ImageStore interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

// Integrations are the optional backends a deployment may configure. Any
// nil field disables the feature it serves.
type Integrations struct {
	Counter  ReactionCounter
	Notifier Notifier
	Images   ImageStore
}
