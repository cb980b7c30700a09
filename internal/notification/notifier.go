package notification

import (
	"context"

	"github.com/rxtech-lab/argo-quant/internal/logger"
	"go.uber.org/zap"
)

// Notifier delivers a text message to an external channel.
// Callers treat delivery as fire-and-forget: a returned error is logged, never fatal to a run.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// LogNotifier writes messages to the logger instead of delivering them.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &LogNotifier{logger: log}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(_ context.Context, message string) error {
	n.logger.Info("Notification", zap.String("message", message))

	return nil
}

// NotifyQuietly sends message through notifier and logs a failed delivery at warn level.
// A nil notifier is ignored.
func NotifyQuietly(ctx context.Context, notifier Notifier, log *logger.Logger, message string) {
	if notifier == nil {
		return
	}

	if err := notifier.Notify(ctx, message); err != nil && log != nil {
		log.Warn("Failed to deliver notification", zap.Error(err))
	}
}
