package notification

import (
	"context"
	"time"

	"github.com/tripdesk/tripdesk/internal/application/port"
	"github.com/tripdesk/tripdesk/internal/domain/entity"
	"go.uber.org/zap"
)

// Transport delivers one rendered notification. Kind distinguishes emails
// from to-do tasks; implementations may route them to different backends.
type Transport interface {
	Send(ctx context.Context, recipient, kind, subject, body string) error
}

// Messenger implements port.Notifier. Every notification is rendered from the
// locale bundle, recorded in the outbox, and handed to the transport. The
// outbox row is written whether or not delivery succeeds.
type Messenger struct {
	bundle    *Bundle
	transport Transport
	records   port.NotificationRepository
	logger    *zap.Logger
}

// NewMessenger creates a new Messenger
func NewMessenger(bundle *Bundle, transport Transport, records port.NotificationRepository, logger *zap.Logger) *Messenger {
	return &Messenger{
		bundle:    bundle,
		transport: transport,
		records:   records,
		logger:    logger,
	}
}

// Notify renders and delivers one notification
func (m *Messenger) Notify(ctx context.Context, msg *entity.NotificationMessage) error {
	subject, body := m.bundle.Render(msg.Template, msg.Data)

	record := &entity.NotificationRecord{
		RequestID: msg.RequestID,
		Recipient: msg.Recipient,
		Kind:      msg.Kind,
		Template:  msg.Template,
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now(),
	}

	sendErr := m.transport.Send(ctx, msg.Recipient, msg.Kind, subject, body)
	if sendErr != nil {
		record.Status = entity.NotificationStatusFailed
		record.ErrorMessage = sendErr.Error()
	} else {
		record.Status = entity.NotificationStatusSent
		now := time.Now()
		record.SentAt = &now
	}

	if err := m.records.Create(ctx, record); err != nil {
		m.logger.Error("Failed to record notification",
			zap.Int64("request_id", msg.RequestID),
			zap.String("recipient", msg.Recipient),
			zap.Error(err))
	}

	return sendErr
}

// LogTransport is the default transport for deployments without a mail or
// task backend; it writes deliveries to the log.
type LogTransport struct {
	logger *zap.Logger
}

// NewLogTransport creates a new LogTransport
func NewLogTransport(logger *zap.Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

// Send logs the rendered notification
func (t *LogTransport) Send(ctx context.Context, recipient, kind, subject, body string) error {
	t.logger.Info("Notification delivered",
		zap.String("recipient", recipient),
		zap.String("kind", kind),
		zap.String("subject", subject))
	return nil
}

// Verify interface compliance
var (
	_ port.Notifier = (*Messenger)(nil)
	_ Transport     = (*LogTransport)(nil)
)
