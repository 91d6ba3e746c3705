package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/sharezin/internal/invite"
	"github.com/mmynk/sharezin/internal/plan"
	"github.com/mmynk/sharezin/internal/receipt"
	"github.com/mmynk/sharezin/internal/storage"
)

// toConnectError maps domain and storage errors onto Connect codes.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}

	switch receipt.KindOf(err) {
	case receipt.KindValidation:
		return connect.NewError(connect.CodeInvalidArgument, err)
	case receipt.KindForbidden:
		return connect.NewError(connect.CodePermissionDenied, err)
	case receipt.KindConflict:
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case receipt.KindNotFound:
		return connect.NewError(connect.CodeNotFound, err)
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrStaleReceipt):
		return connect.NewError(connect.CodeAborted, err)
	case errors.Is(err, plan.ErrReceiptLimit),
		errors.Is(err, plan.ErrParticipantLimit):
		return connect.NewError(connect.CodeResourceExhausted, err)
	case errors.Is(err, invite.ErrExhausted):
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// outcome labels a transition result for metrics.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := receipt.KindOf(err); kind != 0 {
		return kind.String()
	}
	switch {
	case errors.Is(err, storage.ErrStaleReceipt):
		return "stale"
	case errors.Is(err, plan.ErrParticipantLimit), errors.Is(err, plan.ErrReceiptLimit):
		return "plan_limit"
	default:
		return "error"
	}
}
