package port

import (
	"context"

	"github.com/tripdesk/tripdesk/internal/domain/entity"
)

// SequenceAllocator hands out reference codes from a monotonically increasing
// per-namespace counter. Allocation must be atomic under concurrent creates;
// the sequence is gapless only across successful allocations.
type SequenceAllocator interface {
	Next(ctx context.Context, namespace string) (string, error)
}

// Notifier delivers a workflow notification to one recipient. Delivery
// failures are returned to the caller, which records them as a non-fatal
// annotation; they never roll back the transition that produced them.
type Notifier interface {
	Notify(ctx context.Context, msg *entity.NotificationMessage) error
}

// AttachmentStore persists mission-order documents and addresses them by an
// opaque handle.
type AttachmentStore interface {
	Save(ctx context.Context, filename string, content []byte) (handle string, err error)
	Read(ctx context.Context, handle string) ([]byte, error)
	Delete(ctx context.Context, handle string) error
}

// Directory resolves an employee's organizational hierarchy.
type Directory interface {
	// ManagerOf returns the employee's direct superior, or "" when the
	// employee has none.
	ManagerOf(ctx context.Context, employeeID string) (string, error)
}
