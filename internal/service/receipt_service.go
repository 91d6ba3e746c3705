package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/sharezin/internal/calculator"
	"github.com/mmynk/sharezin/internal/invite"
	"github.com/mmynk/sharezin/internal/metrics"
	"github.com/mmynk/sharezin/internal/middleware"
	"github.com/mmynk/sharezin/internal/models"
	"github.com/mmynk/sharezin/internal/notify"
	"github.com/mmynk/sharezin/internal/plan"
	"github.com/mmynk/sharezin/internal/receipt"
	"github.com/mmynk/sharezin/internal/storage"
	"github.com/mmynk/sharezin/pkg/api"
)

// maxSaveAttempts bounds how often a transition is replayed after losing a
// version race.
const maxSaveAttempts = 3

// ReceiptConfig tunes a ReceiptService.
type ReceiptConfig struct {
	Limits             plan.Limits
	InviteCodeLength   int
	InviteCodeAttempts int
	Metrics            *metrics.Metrics
	// Workflow defaults to receipt.New().
	Workflow *receipt.Workflow
}

// ReceiptService implements the Connect ReceiptService.
type ReceiptService struct {
	store        storage.Store
	notifier     notify.Notifier
	workflow     *receipt.Workflow
	codes        *invite.Generator
	codeAttempts int
	limits       plan.Limits
	metrics      *metrics.Metrics
}

// NewReceiptService creates a ReceiptService on the given storage backend.
func NewReceiptService(store storage.Store, notifier notify.Notifier, cfg ReceiptConfig) *ReceiptService {
	wf := cfg.Workflow
	if wf == nil {
		wf = receipt.New()
	}
	return &ReceiptService{
		store:        store,
		notifier:     notifier,
		workflow:     wf,
		codes:        invite.NewGenerator(cfg.InviteCodeLength),
		codeAttempts: cfg.InviteCodeAttempts,
		limits:       cfg.Limits,
		metrics:      cfg.Metrics,
	}
}

func actorFrom(ctx context.Context) receipt.Actor {
	name := middleware.GetUserName(ctx)
	if name == "" {
		name = middleware.GetEmail(ctx)
	}
	return receipt.Actor{UserID: middleware.GetUserID(ctx), Name: name}
}

// CreateReceipt opens a new receipt with the caller as creator and first participant.
func (s *ReceiptService) CreateReceipt(ctx context.Context, req *connect.Request[api.CreateReceiptRequest]) (*connect.Response[api.ReceiptResponse], error) {
	actor := actorFrom(ctx)
	slog.Info("CreateReceipt request received", "user_id", actor.UserID, "title", req.Msg.Title)

	count, err := s.store.CountOpenReceiptsByCreator(ctx, actor.UserID)
	if err != nil {
		slog.Error("CreateReceipt failed to count receipts", "user_id", actor.UserID, "error", err)
		return nil, toConnectError(err)
	}
	if !s.limits.CanCreateReceipt(count) {
		s.metrics.Transition("create_receipt", outcome(plan.ErrReceiptLimit))
		return nil, toConnectError(plan.ErrReceiptLimit)
	}

	draft := receipt.Draft{
		Title:                req.Msg.Title,
		ServiceChargePercent: req.Msg.ServiceChargePercent,
		Cover:                req.Msg.Cover,
	}
	if req.Msg.Date != 0 {
		draft.Date = time.Unix(req.Msg.Date, 0)
	}

	r, err := s.workflow.Create(draft, actor, "")
	if err != nil {
		s.metrics.Transition("create_receipt", outcome(err))
		return nil, toConnectError(err)
	}

	_, err = s.codes.Assign(s.codeAttempts,
		func(code string) error {
			r.InviteCode = code
			return s.store.CreateReceipt(ctx, r)
		},
		func(err error) bool {
			if errors.Is(err, storage.ErrInviteCodeTaken) {
				slog.Debug("Invite code collision, retrying", "code", r.InviteCode)
				return true
			}
			return false
		},
	)
	if err != nil {
		slog.Error("CreateReceipt failed", "user_id", actor.UserID, "error", err)
		s.metrics.Transition("create_receipt", outcome(err))
		return nil, toConnectError(err)
	}

	s.metrics.Transition("create_receipt", "ok")
	slog.Info("Receipt created", "receipt_id", r.ID, "user_id", actor.UserID, "invite_code", r.InviteCode)
	return connect.NewResponse(&api.ReceiptResponse{Receipt: toAPIReceipt(r)}), nil
}

// GetReceipt returns a receipt to its creator and participants.
func (s *ReceiptService) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.ReceiptResponse], error) {
	r, err := s.memberReceipt(ctx, req.Msg.ReceiptID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ReceiptResponse{Receipt: toAPIReceipt(r)}), nil
}

// GetReceiptByInviteCode returns a preview that lets a user decide whether to join.
func (s *ReceiptService) GetReceiptByInviteCode(ctx context.Context, req *connect.Request[api.GetReceiptByInviteCodeRequest]) (*connect.Response[api.GetReceiptByInviteCodeResponse], error) {
	code := invite.Normalize(req.Msg.InviteCode)
	if code == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invite code required"))
	}

	r, err := s.store.GetReceiptByInviteCode(ctx, code)
	if err != nil {
		slog.Warn("GetReceiptByInviteCode failed", "code", code, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetReceiptByInviteCodeResponse{Receipt: toAPIPreview(r)}), nil
}

// ListReceipts returns the caller's receipts, newest first. Closed receipts
// beyond the plan's history limit are left out.
func (s *ReceiptService) ListReceipts(ctx context.Context, req *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error) {
	userID := middleware.GetUserID(ctx)

	receipts, err := s.store.ListReceiptsForUser(ctx, userID)
	if err != nil {
		slog.Error("ListReceipts failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	history := 0
	for _, r := range receipts {
		if r.IsClosed {
			history++
		}
	}

	resp := &api.ListReceiptsResponse{Receipts: make([]*api.Receipt, 0, len(receipts))}
	visibleHistory := history
	if !s.limits.CanViewHistory(history) {
		visibleHistory = s.limits.MaxHistoryReceipts
		resp.HistoryTruncated = true
		slog.Info("History truncated by plan", "user_id", userID, "history", history, "limit", visibleHistory)
	}
	for _, r := range receipts {
		if r.IsClosed {
			if visibleHistory == 0 {
				continue
			}
			visibleHistory--
		}
		resp.Receipts = append(resp.Receipts, toAPIReceipt(r))
	}
	return connect.NewResponse(resp), nil
}

// GetSummary returns each participant's rounded share.
func (s *ReceiptService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	r, err := s.memberReceipt(ctx, req.Msg.ReceiptID)
	if err != nil {
		return nil, err
	}
	summary := calculator.Summarize(r)
	return connect.NewResponse(&api.GetSummaryResponse{Summary: toAPISummary(r.ID, summary)}), nil
}

func (s *ReceiptService) memberReceipt(ctx context.Context, receiptID string) (*models.Receipt, error) {
	userID := middleware.GetUserID(ctx)
	r, err := s.store.GetReceipt(ctx, receiptID)
	if err != nil {
		slog.Warn("Receipt lookup failed", "receipt_id", receiptID, "error", err)
		return nil, toConnectError(err)
	}
	if !r.HasMember(userID) {
		return nil, toConnectError(receipt.ErrNotParticipant)
	}
	return r, nil
}

// AddItem adds a line item for the caller, or for any participant when the caller is the creator.
func (s *ReceiptService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.ReceiptResponse], error) {
	actor := actorFrom(ctx)
	draft := receipt.ItemDraft{
		Name:          req.Msg.Name,
		Quantity:      req.Msg.Quantity,
		Price:         req.Msg.Price,
		ParticipantID: req.Msg.ParticipantID,
	}
	return s.respond(s.mutate(ctx, "add_item", req.Msg.ReceiptID, func(r *models.Receipt) (*receipt.Result, error) {
		return s.workflow.AddItem(r, actor, draft)
	}))
}

// DeleteItem removes an item directly. Creator only.
func (s *ReceiptService) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.ReceiptResponse], error) {
	actor := actorFrom(ctx)
	return s.respond(s.mutate(ctx, "delete_item", req.Msg.ReceiptID, func(r *models.Receipt) (*receipt.Result, error) {
		return s.workflow.DeleteItem(r, actor, req.Msg.ItemID)
	}))
}

// CloseReceipt closes the receipt for everyone.
func (s *ReceiptService) CloseReceipt(ctx context.Context, req *connect.Request[api.CloseReceiptRequest]) (*connect.Response[api.ReceiptResponse], error) {
	actor := actorFrom(ctx)
	r, err := s.mutate(ctx, "close_receipt", req.Msg.ReceiptID, func(r *models.Receipt) (*receipt.Result, error) {
		return s.workflow.Close(r, actor)
	})
	if err == nil {
		s.metrics.ReceiptClosed(r.Total)
	}
	return s.respond(r, err)
}

// CloseParticipant marks one participant as done adding items.
func (s *ReceiptService) CloseParticipant(ctx context.Context, req *connect.Request[api.ParticipantRequest]) (*connect.Response[api.ReceiptResponse], error) {
	actor := actorFrom(ctx)
	return s.respond(s.mutate(ctx, "close_participant", req.Msg.ReceiptID, func(r *models.Receipt) (*receipt.Result, error) {
		return s.workflow.CloseParticipant(r, actor, req.Msg.ParticipantID)
	}))
}

// RemoveParticipant removes a participant and their items.
func (s *ReceiptService) RemoveParticipant(ctx context.Context, req *connect.Request[api.ParticipantRequest]) (*connect.Response[api.ReceiptResponse], error) {
	actor := actorFrom(ctx)
	return s.respond(s.mutate(ctx, "remove_participant", req.Msg.ReceiptID, func(r *models.Receipt) (*receipt.Result, error) {
		return s.workflow.RemoveParticipant(r, actor, req.Msg.ParticipantID)
	}))
}

// AddParticipant adds a named participant, optionally linked to an account.
func (s *ReceiptService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.ReceiptResponse], error) {
	actor := actorFrom(ctx)
	p := receipt.NewParticipant{Name: strings.TrimSpace(req.Msg.Name), UserID: req.Msg.UserID}
	if p.UserID != "" {
		user, err := s.store.GetUserByID(ctx, p.UserID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown user %s", p.UserID))
		}
		if err != nil {
			slog.Error("AddParticipant failed to resolve user", "user_id", p.UserID, "error", err)
			return nil, toConnectError(err)
		}
		if p.Name == "" {
			p.Name = user.DisplayName
		}
	}
	return s.respond(s.mutate(ctx, "add_participant", req.Msg.ReceiptID, func(r *models.Receipt) (*receipt.Result, error) {
		return s.checkParticipantLimit(r)(s.workflow.AddParticipant(r, actor, p))
	}))
}

// ApplyGroup adds the members of one of the caller's groups.
func (s *ReceiptService) ApplyGroup(ctx context.Context, req *connect.Request[api.ApplyGroupRequest]) (*connect.Response[api.ReceiptResponse], error) {
	actor := actorFrom(ctx)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Warn("ApplyGroup failed to load group", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}
	if group.OwnerID != actor.UserID {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("group %s: %w", group.ID, storage.ErrNotFound))
	}

	return s.respond(s.mutate(ctx, "apply_group", req.Msg.ReceiptID, func(r *models.Receipt) (*receipt.Result, error) {
		return s.checkParticipantLimit(r)(s.workflow.ApplyGroup(r, actor, group))
	}))
}

// TransferCreator hands the receipt over to another participant.
func (s *ReceiptService) TransferCreator(ctx context.Context, req *connect.Request[api.ParticipantRequest]) (*connect.Response[api.ReceiptResponse], error) {
	actor := actorFrom(ctx)
	return s.respond(s.mutate(ctx, "transfer_creator", req.Msg.ReceiptID, func(r *models.Receipt) (*receipt.Result, error) {
		return s.workflow.TransferCreator(r, actor, req.Msg.ParticipantID)
	}))
}

// RequestDeletion asks the creator to remove one of the caller's items.
func (s *ReceiptService) RequestDeletion(ctx context.Context, req *connect.Request[api.RequestDeletionRequest]) (*connect.Response[api.ReceiptResponse], error) {
	actor := actorFrom(ctx)
	return s.respond(s.mutate(ctx, "request_deletion", req.Msg.ReceiptID, func(r *models.Receipt) (*receipt.Result, error) {
		return s.workflow.RequestDeletion(r, actor, req.Msg.ItemID)
	}))
}

// ApproveDeletion deletes the requested item.
func (s *ReceiptService) ApproveDeletion(ctx context.Context, req *connect.Request[api.DecisionRequest]) (*connect.Response[api.ReceiptResponse], error) {
	actor := actorFrom(ctx)
	return s.respond(s.mutate(ctx, "approve_deletion", req.Msg.ReceiptID, func(r *models.Receipt) (*receipt.Result, error) {
		return s.workflow.ApproveDeletion(r, actor, req.Msg.RequestID)
	}))
}

// RejectDeletion drops the request and keeps the item.
func (s *ReceiptService) RejectDeletion(ctx context.Context, req *connect.Request[api.DecisionRequest]) (*connect.Response[api.ReceiptResponse], error) {
	actor := actorFrom(ctx)
	return s.respond(s.mutate(ctx, "reject_deletion", req.Msg.ReceiptID, func(r *models.Receipt) (*receipt.Result, error) {
		return s.workflow.RejectDeletion(r, actor, req.Msg.RequestID)
	}))
}

// JoinReceipt files a join request for the receipt behind an invite code.
func (s *ReceiptService) JoinReceipt(ctx context.Context, req *connect.Request[api.JoinReceiptRequest]) (*connect.Response[api.ReceiptResponse], error) {
	actor := actorFrom(ctx)
	code := invite.Normalize(req.Msg.InviteCode)
	if code == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invite code required"))
	}

	target, err := s.store.GetReceiptByInviteCode(ctx, code)
	if err != nil {
		slog.Warn("JoinReceipt failed", "code", code, "user_id", actor.UserID, "error", err)
		return nil, toConnectError(err)
	}

	r, err := s.mutate(ctx, "request_join", target.ID, func(r *models.Receipt) (*receipt.Result, error) {
		return s.workflow.RequestJoin(r, actor)
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	// The requester is not a member yet.
	return connect.NewResponse(&api.ReceiptResponse{Receipt: &api.Receipt{
		ID:       r.ID,
		Title:    r.Title,
		Date:     r.Date,
		IsClosed: r.IsClosed,
	}}), nil
}

// ApproveJoin admits a pending user as a participant.
func (s *ReceiptService) ApproveJoin(ctx context.Context, req *connect.Request[api.DecisionRequest]) (*connect.Response[api.ReceiptResponse], error) {
	actor := actorFrom(ctx)
	return s.respond(s.mutate(ctx, "approve_join", req.Msg.ReceiptID, func(r *models.Receipt) (*receipt.Result, error) {
		return s.checkParticipantLimit(r)(s.workflow.ApproveJoin(r, actor, req.Msg.RequestID))
	}))
}

// RejectJoin discards a pending join request.
func (s *ReceiptService) RejectJoin(ctx context.Context, req *connect.Request[api.DecisionRequest]) (*connect.Response[api.ReceiptResponse], error) {
	actor := actorFrom(ctx)
	return s.respond(s.mutate(ctx, "reject_join", req.Msg.ReceiptID, func(r *models.Receipt) (*receipt.Result, error) {
		return s.workflow.RejectJoin(r, actor, req.Msg.RequestID)
	}))
}

// mutate loads the receipt, applies a transition and saves it, replaying the
// transition on a fresh snapshot when another writer got there first.
// Notifications go out only after a successful save.
func (s *ReceiptService) mutate(ctx context.Context, name, receiptID string, apply func(*models.Receipt) (*receipt.Result, error)) (*models.Receipt, error) {
	userID := middleware.GetUserID(ctx)

	for attempt := 1; ; attempt++ {
		snapshot, err := s.store.GetReceipt(ctx, receiptID)
		if err != nil {
			slog.Warn("Transition failed to load receipt", "transition", name, "receipt_id", receiptID, "error", err)
			return nil, err
		}

		result, err := apply(snapshot)
		if err != nil {
			s.metrics.Transition(name, outcome(err))
			slog.Info("Transition refused",
				"transition", name,
				"receipt_id", receiptID,
				"user_id", userID,
				"reason", err,
			)
			return nil, err
		}

		err = s.store.SaveReceipt(ctx, result.Receipt)
		if errors.Is(err, storage.ErrStaleReceipt) && attempt < maxSaveAttempts {
			slog.Debug("Receipt changed underneath, retrying", "transition", name, "receipt_id", receiptID, "attempt", attempt)
			continue
		}
		if err != nil {
			s.metrics.Transition(name, outcome(err))
			slog.Error("Transition failed to save receipt", "transition", name, "receipt_id", receiptID, "error", err)
			return nil, err
		}

		s.metrics.Transition(name, "ok")
		slog.Info("Transition applied",
			"transition", name,
			"receipt_id", receiptID,
			"user_id", userID,
			"version", result.Receipt.Version,
		)
		notify.DispatchAll(ctx, s.notifier, s.metrics, result.Notifications)
		return result.Receipt, nil
	}
}

// checkParticipantLimit rejects a result that grew the receipt past the plan limit.
func (s *ReceiptService) checkParticipantLimit(before *models.Receipt) func(*receipt.Result, error) (*receipt.Result, error) {
	return func(result *receipt.Result, err error) (*receipt.Result, error) {
		if err != nil {
			return nil, err
		}
		after := len(result.Receipt.Participants)
		if after > len(before.Participants) && !s.limits.CanAddParticipant(after-1) {
			return nil, plan.ErrParticipantLimit
		}
		return result, nil
	}
}

func (s *ReceiptService) respond(r *models.Receipt, err error) (*connect.Response[api.ReceiptResponse], error) {
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ReceiptResponse{Receipt: toAPIReceipt(r)}), nil
}
