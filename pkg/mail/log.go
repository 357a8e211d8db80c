package mail

import (
	"context"

	"registrar/pkg/logger"

	"go.uber.org/zap"
)

// LogSender writes messages to the log instead of delivering them.
type LogSender struct{}

var _ Sender = LogSender{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	logger.Info(ctx, "email",
		zap.Strings("to", msg.To),
		zap.Strings("cc", msg.CC),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)

	return nil
}
