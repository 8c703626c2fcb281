// Package audit defines the contract for recording who changed what.
// The persistent implementation lives in infrastructure/storage/postgres.
package audit

import (
	"context"

	"github.com/mhammadjaber00/almasasuite/internal/core/id"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionIntake   Action = "gold_intake"
	ActionPayment  Action = "vendor_payment"
	ActionWriteOff Action = "liability_writeoff"
	ActionSale     Action = "sale"
	ActionRefund   Action = "sale_refund"
)

// Recorder records audit entries. Implementations must be safe to call
// inside the business transaction so the entry commits with the change.
type Recorder interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]any) error
}

// Noop discards all entries. Used in tests.
type Noop struct{}

// LogChange implements Recorder.
func (Noop) LogChange(context.Context, string, id.ID, Action, map[string]any) error {
	return nil
}
