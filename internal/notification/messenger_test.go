package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripdesk/tripdesk/internal/domain/entity"
)

type fakeTransport struct {
	sendFunc func(ctx context.Context, recipient, kind, subject, body string) error
	sent     []string
}

func (t *fakeTransport) Send(ctx context.Context, recipient, kind, subject, body string) error {
	t.sent = append(t.sent, subject)
	if t.sendFunc != nil {
		return t.sendFunc(ctx, recipient, kind, subject, body)
	}
	return nil
}

type fakeRecords struct {
	records []*entity.NotificationRecord
}

func (r *fakeRecords) Create(ctx context.Context, n *entity.NotificationRecord) error {
	r.records = append(r.records, n)
	return nil
}

func (r *fakeRecords) GetByRequestID(ctx context.Context, requestID int64) ([]*entity.NotificationRecord, error) {
	return r.records, nil
}

func testMessage() *entity.NotificationMessage {
	return &entity.NotificationMessage{
		RequestID: 1,
		Recipient: "mgr-001",
		Kind:      entity.NotificationKindEmail,
		Template:  "request.submitted",
		Data: map[string]string{
			"Reference": "TR00001",
			"Employee":  "Alice Martin",
			"Purpose":   "Client workshop",
		},
	}
}

func TestBundleRender(t *testing.T) {
	t.Run("renders French templates", func(t *testing.T) {
		bundle, err := NewBundle("fr")
		require.NoError(t, err)

		subject, body := bundle.Render("request.refused", map[string]string{
			"Reference": "TR00042",
			"Purpose":   "Salon",
			"Reason":    "budget dépassé",
		})
		assert.Contains(t, subject, "TR00042")
		assert.Contains(t, subject, "refusée")
		assert.Contains(t, body, "budget dépassé")
	})

	t.Run("renders English templates", func(t *testing.T) {
		bundle, err := NewBundle("en")
		require.NoError(t, err)

		subject, _ := bundle.Render("request.approved", map[string]string{"Reference": "TR00042"})
		assert.Contains(t, subject, "approved")
	})

	t.Run("unknown keys fall back to the message ID", func(t *testing.T) {
		bundle, err := NewBundle("fr")
		require.NoError(t, err)

		subject, _ := bundle.Render("request.unknown", nil)
		assert.True(t, strings.HasPrefix(subject, "request.unknown"))
	})
}

func TestMessengerNotify(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	bundle, err := NewBundle("fr")
	require.NoError(t, err)

	t.Run("delivers and records a sent notification", func(t *testing.T) {
		transport := &fakeTransport{}
		records := &fakeRecords{}
		m := NewMessenger(bundle, transport, records, logger)

		require.NoError(t, m.Notify(context.Background(), testMessage()))

		require.Len(t, records.records, 1)
		record := records.records[0]
		assert.Equal(t, entity.NotificationStatusSent, record.Status)
		assert.NotNil(t, record.SentAt)
		assert.Contains(t, record.Subject, "TR00001")
		assert.Len(t, transport.sent, 1)
	})

	t.Run("records a failed delivery and returns the error", func(t *testing.T) {
		transport := &fakeTransport{
			sendFunc: func(ctx context.Context, recipient, kind, subject, body string) error {
				return errors.New("smtp connection refused")
			},
		}
		records := &fakeRecords{}
		m := NewMessenger(bundle, transport, records, logger)

		err := m.Notify(context.Background(), testMessage())
		require.Error(t, err)

		require.Len(t, records.records, 1)
		record := records.records[0]
		assert.Equal(t, entity.NotificationStatusFailed, record.Status)
		assert.Equal(t, "smtp connection refused", record.ErrorMessage)
		assert.Nil(t, record.SentAt)
	})
}
