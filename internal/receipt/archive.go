package receipt

import (
	"context"
	"fmt"
	"path"
	"strings"

	"group-order-client/internal/backend"

	"go.uber.org/zap"
)

const keyTimeLayout = "20060102T150405Z"

// Putter is the upload half of an object store.
type Putter interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// Archiver stores rendered receipts and reports where they can be fetched.
type Archiver struct {
	store  Putter
	prefix string
	logger *zap.Logger
}

func NewArchiver(store Putter, prefix string, logger *zap.Logger) *Archiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archiver{store: store, prefix: strings.Trim(prefix, "/"), logger: logger}
}

// Key is <prefix>/<pin>/<timestamp>.pdf with the timestamp in UTC.
func (a *Archiver) Key(r backend.Receipt) string {
	pin := strings.TrimSpace(r.OrderPIN)
	if pin == "" {
		pin = "unknown"
	}
	name := r.Timestamp.UTC().Format(keyTimeLayout) + ".pdf"
	if a.prefix == "" {
		return path.Join(pin, name)
	}
	return path.Join(a.prefix, pin, name)
}

// Archive renders the receipt and uploads it, returning the public URL.
func (a *Archiver) Archive(ctx context.Context, r backend.Receipt) (string, error) {
	body, err := RenderPDF(r)
	if err != nil {
		return "", err
	}
	key := a.Key(r)
	url, err := a.store.PutObject(ctx, key, body, "application/pdf")
	if err != nil {
		a.logger.Warn("receipt archive failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("archive receipt: %w", err)
	}
	a.logger.Info("receipt archived", zap.String("key", key), zap.String("orderPin", r.OrderPIN), zap.Int("bytes", len(body)))
	return url, nil
}
