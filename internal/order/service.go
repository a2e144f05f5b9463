package order

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrIllegalTransition = errors.New("illegal status transition")

// StatusSetter is the remote operation that changes an order's status and
// returns the authoritative order.
type StatusSetter interface {
	SetOrderStatus(ctx context.Context, orderID string, target Status, credential string) (*Order, error)
}

type Service struct {
	remote StatusSetter
	now    func() time.Time
}

func NewService(remote StatusSetter) *Service {
	return &Service{remote: remote, now: time.Now}
}

// RequestTransition moves o to target. Illegal transitions are refused before
// the remote call. The local order is only updated after the service confirms
// the change; on any error it is left exactly as it was.
func (s *Service) RequestTransition(ctx context.Context, o *Order, target Status, credential string) error {
	if !o.Status.CanTransitionTo(target) {
		return fmt.Errorf("order %s: %s -> %s: %w", o.ID, o.Status, target, ErrIllegalTransition)
	}

	updated, err := s.remote.SetOrderStatus(ctx, o.ID, target, credential)
	if err != nil {
		return fmt.Errorf("order %s: set status %s: %w", o.ID, target, err)
	}

	s.reconcile(o, updated, target)
	return nil
}

// reconcile copies the service's view of the status onto the local order.
// A response without a status or timestamp falls back to what was requested.
func (s *Service) reconcile(o, updated *Order, requested Status) {
	o.Status = requested
	o.RawStatus = requested.External()
	o.UpdatedAt = s.now().UTC()

	if updated == nil {
		return
	}
	if updated.RawStatus != "" {
		o.Status = updated.Status
		o.RawStatus = updated.RawStatus
	}
	if !updated.UpdatedAt.IsZero() {
		o.UpdatedAt = updated.UpdatedAt
	}
}
