package directory

import (
	"context"

	"github.com/tripdesk/tripdesk/internal/application/port"
	"go.uber.org/zap"
)

// StaticDirectory implements port.Directory from a configured employee to
// manager map. Companies with an HR system plug in their own implementation;
// this one covers standalone deployments.
type StaticDirectory struct {
	managers map[string]string
	logger   *zap.Logger
}

// NewStaticDirectory creates a directory from a configured manager map
func NewStaticDirectory(managers map[string]string, logger *zap.Logger) port.Directory {
	if managers == nil {
		managers = map[string]string{}
	}
	return &StaticDirectory{
		managers: managers,
		logger:   logger,
	}
}

// ManagerOf returns the configured manager, or "" when the employee has none
func (d *StaticDirectory) ManagerOf(ctx context.Context, employeeID string) (string, error) {
	manager, ok := d.managers[employeeID]
	if !ok {
		d.logger.Debug("No manager configured for employee", zap.String("employee_id", employeeID))
		return "", nil
	}
	return manager, nil
}

// Verify interface compliance
var _ port.Directory = (*StaticDirectory)(nil)
