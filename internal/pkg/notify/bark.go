package notify

import (
	"context"

	"github.com/bettyshin1213/hbd-public/internal/pkg/bark"
	"go.uber.org/zap"
)

// Bark pushes events to a Bark device.
type Bark struct {
	client *bark.Client
	logger *zap.Logger
}

func NewBark(client *bark.Client, logger *zap.Logger) *Bark {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bark{client: client, logger: logger}
}

func (b *Bark) Notify(e Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()
		if err := b.client.Push(ctx, e.Title, e.Body); err != nil {
			b.logger.Warn("bark notify failed", zap.Error(err))
		}
	}()
}
